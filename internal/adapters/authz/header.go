// Package authz implements the authorizer port from gateway-supplied
// identity headers. The gateway (API gateway, Envoy) validates credentials
// upstream and passes the verified identity via headers; this adapter only
// maps those headers to a user and an authority level.
package authz

import (
	"context"
	"net/http"
	"strings"

	"github.com/jsamuelsen/stackable/internal/domain"
	"github.com/jsamuelsen/stackable/internal/platform/config"
)

// Default header names if not configured.
const (
	defaultSubjectHeader = "X-User-ID"
	defaultNameHeader    = "X-User-Name"
	defaultRolesHeader   = "X-User-Roles"
)

// HeaderAuthorizer reads identity headers from an *http.Request and checks
// the mapped authority against the requirement.
type HeaderAuthorizer struct {
	subjectHeader string
	nameHeader    string
	rolesHeader   string
}

// New creates a header authorizer with header names from cfg, falling back
// to the defaults for any name left empty.
func New(cfg *config.AuthConfig) *HeaderAuthorizer {
	a := &HeaderAuthorizer{
		subjectHeader: defaultSubjectHeader,
		nameHeader:    defaultNameHeader,
		rolesHeader:   defaultRolesHeader,
	}

	if cfg != nil {
		if cfg.SubjectHeader != "" {
			a.subjectHeader = cfg.SubjectHeader
		}

		if cfg.NameHeader != "" {
			a.nameHeader = cfg.NameHeader
		}

		if cfg.RolesHeader != "" {
			a.rolesHeader = cfg.RolesHeader
		}
	}

	return a
}

// Authorize implements ports.Authorizer for *http.Request raw requests.
func (a *HeaderAuthorizer) Authorize(_ context.Context, required domain.Authority, req any) (*domain.User, error) {
	httpReq, ok := req.(*http.Request)
	if !ok {
		return nil, domain.NewUnauthorizedError("request carries no identity")
	}

	subject := httpReq.Header.Get(a.subjectHeader)
	if subject == "" {
		if required == domain.AuthorityGuest {
			return &domain.User{Authority: domain.AuthorityGuest}, nil
		}

		return nil, domain.NewUnauthorizedError("missing identity header")
	}

	user := &domain.User{
		ID:        subject,
		Name:      httpReq.Header.Get(a.nameHeader),
		Authority: authorityFromRoles(parseCommaSeparated(httpReq.Header.Get(a.rolesHeader))),
	}

	if !user.Authority.Satisfies(required) {
		return nil, domain.NewForbiddenError(required, user.Authority)
	}

	return user, nil
}

// authorityFromRoles maps gateway roles to the highest authority they grant.
// A subject with no recognized role is still a signed-in user.
func authorityFromRoles(roles []string) domain.Authority {
	authority := domain.AuthorityNormal

	for _, role := range roles {
		if strings.EqualFold(role, "admin") {
			authority = domain.AuthorityAdmin
		}
	}

	return authority
}

// parseCommaSeparated splits a comma-separated string into trimmed values.
func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")

	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

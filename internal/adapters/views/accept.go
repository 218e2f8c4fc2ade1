// Package views implements the template selector port from request headers.
package views

import (
	"net/http"
	"strings"

	"github.com/jsamuelsen/stackable/internal/domain"
)

// AcceptSelector picks the response template from the Accept header. It is
// a pure function of the request: no state, no side effects.
type AcceptSelector struct{}

// New creates an Accept-header template selector.
func New() *AcceptSelector {
	return &AcceptSelector{}
}

// Select implements ports.TemplateSelector. Anything that is not an
// explicit text/plain preference renders as JSON.
func (*AcceptSelector) Select(req any) domain.Template {
	httpReq, ok := req.(*http.Request)
	if !ok {
		return domain.TemplateJSON
	}

	accept := httpReq.Header.Get("Accept")
	if strings.HasPrefix(strings.TrimSpace(accept), "text/plain") {
		return domain.TemplateText
	}

	return domain.TemplateJSON
}

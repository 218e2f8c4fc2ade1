package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackable/internal/adapters/http/dto"
	"github.com/jsamuelsen/stackable/internal/domain"
	"github.com/jsamuelsen/stackable/internal/ports"
	"github.com/jsamuelsen/stackable/internal/stack"
	"github.com/jsamuelsen/stackable/internal/stack/elements"
)

// MotdKey is the attribute under which the enrichment element publishes the
// message of the day.
var MotdKey = stack.NewKey[string]("greeting.motd")

// motdFlag is the feature flag holding the message of the day.
const motdFlag = "greeting.motd"

// NewMotdSource creates the enrichment source that fetches the message of
// the day from the flag provider. Absence is an error so the element's
// failure policy decides whether the greeting degrades or the request fails.
func NewMotdSource(flags ports.FeatureFlags) elements.Source {
	return elements.NewSource("motd", MotdKey, func(ctx context.Context) (string, error) {
		motd := flags.GetString(ctx, motdFlag, "")
		if motd == "" {
			return "", domain.NewNotFoundError("motd", "")
		}

		return motd, nil
	})
}

// GreetingHandler handles the public greeting endpoint. Its chain enriches
// the request with the message of the day before the body runs.
type GreetingHandler struct {
	action *stack.Action
}

// NewGreetingHandler creates a new greeting handler around the given action.
func NewGreetingHandler(action *stack.Action) *GreetingHandler {
	return &GreetingHandler{action: action}
}

// GreetingResponse is the HTTP response structure for a greeting.
type GreetingResponse struct {
	Message   string `json:"message"`
	Motd      string `json:"motd,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// String renders the greeting for the plain text template.
func (g GreetingResponse) String() string {
	s := g.Message
	if g.Motd != "" {
		s += "\n" + g.Motd
	}

	return s
}

// Greet handles GET /api/v1/greeting
// Open to unauthenticated callers; signed-in users are greeted by name.
func (h *GreetingHandler) Greet(c *gin.Context) {
	seeds := []stack.Seed{
		stack.SeedValue(elements.RequiredAuthorityKey, domain.AuthorityGuest),
	}

	out, err := h.action.Run(c.Request.Context(), c.Request, seeds, func(sc stack.Context) (any, error) {
		name := "there"
		if user, ok := stack.Lookup(sc, elements.UserKey); ok && user.Name != "" {
			name = user.Name
		}

		resp := GreetingResponse{Message: "hello, " + name}

		if motd, ok := stack.Lookup(sc, MotdKey); ok {
			resp.Motd = motd
		}

		if id, ok := stack.Lookup(sc, elements.RequestIDKey); ok {
			resp.RequestID = id
		}

		return render(sc, resp), nil
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	respond(c, http.StatusOK, out)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackable/internal/domain"
	"github.com/jsamuelsen/stackable/internal/stack"
	"github.com/jsamuelsen/stackable/internal/stack/elements"
)

// Rendered pairs an action result with the response template selected for
// the request. Bodies produce it so the handler knows how to write the
// result without re-reading the request.
type Rendered struct {
	Template domain.Template
	Value    any
}

// render wraps a body result with the template published on the context,
// defaulting to JSON when no selection element ran.
func render(c stack.Context, value any) Rendered {
	tmpl, ok := stack.Lookup(c, elements.TemplateKey)
	if !ok {
		tmpl = domain.TemplateJSON
	}

	return Rendered{Template: tmpl, Value: value}
}

// respond writes an action outcome using the template it was rendered for.
// Outcomes that are not Rendered are written as JSON.
func respond(c *gin.Context, status int, out stack.Outcome) {
	rendered, ok := out.Value.(Rendered)
	if !ok {
		c.JSON(status, out.Value)
		return
	}

	switch rendered.Template {
	case domain.TemplateText:
		c.String(status, "%v", rendered.Value)
	default:
		c.JSON(status, rendered.Value)
	}
}

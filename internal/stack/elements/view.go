package elements

import (
	"github.com/jsamuelsen/stackable/internal/domain"
	"github.com/jsamuelsen/stackable/internal/ports"
	"github.com/jsamuelsen/stackable/internal/stack"
)

// TemplateKey is the attribute under which the selected response template
// is published.
var TemplateKey = stack.NewKey[domain.Template]("view.template")

// TemplateSelect publishes the response template for the request before the
// business logic runs, so inner elements and the body can shape their
// results for it.
type TemplateSelect struct {
	stack.Base

	selector ports.TemplateSelector
}

// NewTemplateSelect creates the template selection element.
func NewTemplateSelect(selector ports.TemplateSelector) *TemplateSelect {
	return &TemplateSelect{selector: selector}
}

// Name identifies the element.
func (e *TemplateSelect) Name() string {
	return "template-select"
}

// Proceed publishes the selected template and delegates inward.
func (e *TemplateSelect) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	return next(stack.With(c, TemplateKey, e.selector.Select(c.Request())))
}

//go:build integration

package integration

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/stackable/internal/adapters/authz"
	"github.com/jsamuelsen/stackable/internal/adapters/flags"
	httpadapter "github.com/jsamuelsen/stackable/internal/adapters/http"
	"github.com/jsamuelsen/stackable/internal/adapters/http/handlers"
	"github.com/jsamuelsen/stackable/internal/adapters/sqlite"
	"github.com/jsamuelsen/stackable/internal/adapters/views"
	"github.com/jsamuelsen/stackable/internal/ports"
	"github.com/jsamuelsen/stackable/internal/stack"
	"github.com/jsamuelsen/stackable/internal/stack/elements"
)

// newTestService wires the full service in-process over a throwaway
// database and returns its base URL.
func newTestService(t *testing.T) string {
	t.Helper()

	gin.SetMode(gin.TestMode)

	provider, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(provider))

	authorizer := authz.New(nil)
	selector := views.New()
	flagProvider := flags.New(map[string]string{"greeting.motd": "integration motd"})

	notesChain := stack.NewChain(
		elements.NewRequestID(),
		elements.NewAuthorize(authorizer, nil),
		elements.NewTemplateSelect(selector),
		elements.NewDBSession(provider, nil),
	)

	greetingChain := stack.NewChain(
		elements.NewRequestID(),
		elements.NewAuthorize(authorizer, nil),
		elements.NewTemplateSelect(selector),
		elements.NewEnrich(elements.EnrichConfig{
			Sources: []elements.Source{handlers.NewMotdSource(flagProvider)},
			Policy:  elements.FailurePolicyFallback,
			Flags:   flagProvider,
		}),
	)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		HealthHandler:   handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
		NotesHandler:    handlers.NewNotesHandler(stack.NewAction(notesChain, nil)),
		GreetingHandler: handlers.NewGreetingHandler(stack.NewAction(greetingChain, nil)),
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return server.URL
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/stackable/internal/adapters/authz"
	"github.com/jsamuelsen/stackable/internal/adapters/flags"
	"github.com/jsamuelsen/stackable/internal/adapters/views"
	"github.com/jsamuelsen/stackable/internal/stack"
	"github.com/jsamuelsen/stackable/internal/stack/elements"
)

// newGreetingEngine wires the greeting handler with an enriching chain over
// the given flag values.
func newGreetingEngine(t *testing.T, flagValues map[string]string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	flagProvider := flags.New(flagValues)

	chain := stack.NewChain(
		elements.NewRequestID(),
		elements.NewAuthorize(authz.New(nil), nil),
		elements.NewTemplateSelect(views.New()),
		elements.NewEnrich(elements.EnrichConfig{
			Sources: []elements.Source{NewMotdSource(flagProvider)},
			Policy:  elements.FailurePolicyFallback,
			Flags:   flagProvider,
		}),
	)

	handler := NewGreetingHandler(stack.NewAction(chain, nil))

	engine := gin.New()
	engine.GET("/api/v1/greeting", handler.Greet)

	return engine
}

func doGet(t *testing.T, engine *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/greeting", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

// TestGreetingHandler_AnonymousCaller verifies guests are greeted and the
// enrichment and request ID both land in the response.
func TestGreetingHandler_AnonymousCaller(t *testing.T) {
	engine := newGreetingEngine(t, map[string]string{"greeting.motd": "ship it"})

	w := doGet(t, engine, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GreetingResponse

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello, there", resp.Message)
	assert.Equal(t, "ship it", resp.Motd)

	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err, "request ID must be a UUID")
}

// TestGreetingHandler_SignedInCaller verifies identified callers are greeted
// by name.
func TestGreetingHandler_SignedInCaller(t *testing.T) {
	engine := newGreetingEngine(t, map[string]string{"greeting.motd": "ship it"})

	w := doGet(t, engine, map[string]string{"X-User-ID": "u1", "X-User-Name": "Ada"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GreetingResponse

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello, Ada", resp.Message)
}

// TestGreetingHandler_MissingMotdDegrades verifies the fallback policy keeps
// the greeting alive when the enrichment source has nothing.
func TestGreetingHandler_MissingMotdDegrades(t *testing.T) {
	engine := newGreetingEngine(t, nil)

	w := doGet(t, engine, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp GreetingResponse

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hello, there", resp.Message)
	assert.Empty(t, resp.Motd)
}

// TestGreetingHandler_TextTemplate verifies the Accept header switches the
// rendering without touching the chain or the body.
func TestGreetingHandler_TextTemplate(t *testing.T) {
	engine := newGreetingEngine(t, map[string]string{"greeting.motd": "ship it"})

	w := doGet(t, engine, map[string]string{"Accept": "text/plain"})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "hello, there")
	assert.Contains(t, body, "ship it")
	assert.NotContains(t, body, "{", "text template must not render JSON")
}

package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackable/internal/adapters/http/handlers"
)

// RouterConfig contains the handlers the router wires up.
//
// Cross-cutting behavior (request IDs, logging, authorization, sessions,
// timeouts) is not configured here: it lives in the element chains the
// handlers run, so the router stays a plain route table.
type RouterConfig struct {
	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// NotesHandler handles the note persistence endpoints.
	NotesHandler *handlers.NotesHandler

	// GreetingHandler handles the public greeting endpoint.
	GreetingHandler *handlers.GreetingHandler
}

// SetupRouter configures all routes on the Gin engine.
//
// Route groups:
//   - /-/ (internal): Health endpoints, no auth required
//   - /api/v1/ (public API): Business endpoints, guarded by their chains
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	// Register health endpoints (no chain, probes must stay cheap)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")

	if cfg.NotesHandler != nil {
		apiV1.POST("/notes", cfg.NotesHandler.Create)
		apiV1.GET("/notes", cfg.NotesHandler.List)
	}

	if cfg.GreetingHandler != nil {
		apiV1.GET("/greeting", cfg.GreetingHandler.Greet)
	}
}

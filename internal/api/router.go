package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/seoscout/internal/seo"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// longtail is the default longtail count for analyse requests.
func NewRouter(svc *seo.Service, authEnabled bool, token string, sseHandler http.Handler, longtail int) chi.Router {
	h := NewHandler(svc, longtail)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Analysis.
	r.Get("/classify", h.Classify)
	r.Post("/analyze", h.Analyze)
	r.Post("/outline", h.Outline)
	r.Post("/batch", h.Batch)
	r.Get("/related", h.Related)

	// Stored results.
	r.Get("/keywords", h.ListKeywords)
	r.Get("/plans", h.ListPlans)
	r.Get("/history", h.History)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

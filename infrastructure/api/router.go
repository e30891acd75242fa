// Package api exposes the chat server over HTTP: the websocket endpoint, the
// operational probes and the operator endpoints under /admin.
package api

import (
	"log/slog"
	"mood-chat/auth"
	"mood-chat/contract"
	"mood-chat/observability"
	"mood-chat/services"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// KeywordReloader swaps the phrase list used by the content gate.
type KeywordReloader interface {
	Reload(phrases []string) error
}

type Dependencies struct {
	Log       *slog.Logger
	WS        http.Handler
	Chat      contract.IChatService
	Monitor   *observability.Monitor
	Metrics   *observability.Metrics
	Auth      services.IAuthService
	Issuer    *auth.TokenIssuer
	Incidents contract.IIncidentSearcher
	Keywords  contract.IKeywordRepository
	Gate      KeywordReloader
}

type router struct {
	Dependencies
}

func NewRouter(deps Dependencies) http.Handler {
	r := &router{Dependencies: deps}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID, middleware.RealIP, r.logRequests, middleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Get("/stats", r.handleStats)
	mux.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("/ws", deps.WS)

	mux.Route("/admin", func(admin chi.Router) {
		admin.Post("/token", r.handleToken)
		admin.Group(func(guarded chi.Router) {
			guarded.Use(auth.RequireRole(deps.Issuer, auth.RoleAdmin))
			guarded.Get("/incidents", r.handleIncidents)
			guarded.Get("/keywords", r.handleListKeywords)
			guarded.Post("/keywords", r.handleAddKeywords)
			guarded.Delete("/keywords/{phrase}", r.handleRemoveKeyword)
		})
	})
	return mux
}

// logRequests skips /ws: its duration is the whole conversation.
func (r *router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/ws" {
			next.ServeHTTP(w, req)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		r.Log.Debug("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(req.Context()))
	})
}

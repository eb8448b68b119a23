// Package http provides the loopback JSON API that a desktop front-end
// uses to drive a keeper session.
package http

import (
	"net/http"

	"github.com/atinyakov/AccountKeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the keeper
// API under /api.
//
// Routes:
//
//	GET  /api/accounts                 → accounts.List
//	GET  /api/accounts/active          → accounts.Active
//	POST /api/accounts/import          → accounts.Import
//	POST /api/accounts/export          → accounts.Export
//	POST /api/accounts/delete          → accounts.Delete
//	PUT  /api/accounts/{id}/note       → accounts.SetNote
//	POST /api/accounts/{id}/activate   → accounts.Activate
//	GET  /api/mcp, /api/rules          → List
//	POST /api/{mcp,rules}/open         → Open
//	POST /api/{mcp,rules}/save         → Save
//	POST /api/{mcp,rules}/backup       → Backup
//	PUT  /api/{mcp,rules}              → Put
//	POST /api/{mcp,rules}/delete       → Delete
//	GET  /api/remote/{user,usage}      → integrations
//	POST /api/machine-code/{op}        → integrations.MachineCode
//
// Middleware chain (applied in order):
//  1. Recoverer                          turns panics into 500s
//  2. AllowContentType("application/json") rejects non-JSON bodies
//  3. WithRequestLogging(logger)         logs every request
func NewRouter(
	accounts *AccountHandler,
	servers *MCPHandler,
	rules *RuleHandler,
	integrations *IntegrationHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accounts.List)
			r.Get("/active", accounts.Active)
			r.Post("/import", accounts.Import)
			r.Post("/export", accounts.Export)
			r.Post("/delete", accounts.Delete)
			r.Put("/{id}/note", accounts.SetNote)
			r.Post("/{id}/activate", accounts.Activate)
		})

		r.Route("/mcp", func(r chi.Router) {
			r.Get("/", servers.List)
			r.Put("/", servers.Put)
			r.Post("/open", servers.Open)
			r.Post("/save", servers.Save)
			r.Post("/backup", servers.Backup)
			r.Post("/delete", servers.Delete)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", rules.List)
			r.Put("/", rules.Put)
			r.Post("/open", rules.Open)
			r.Post("/save", rules.Save)
			r.Post("/backup", rules.Backup)
			r.Post("/delete", rules.Delete)
		})

		r.Get("/remote/user", integrations.CurrentUser)
		r.Get("/remote/usage", integrations.CurrentUsage)
		r.Post("/machine-code/{op}", integrations.MachineCode)
	})

	return r
}

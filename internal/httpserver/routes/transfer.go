package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/acronyms/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/acronyms/internal/httpserver/mw"
)

func init() { Register(registerTransfer) }

func registerTransfer(r chi.Router, d deps.Deps) {
	guard := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)

	r.Get("/api/export", handlers.Export(d))
	r.With(guard).Post("/api/import", handlers.Import(d))
	r.With(guard).Post("/api/backup", handlers.Backup(d))
}

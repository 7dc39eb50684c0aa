package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
	"github.com/MrSnakeDoc/acronyms/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/acronyms/internal/httpserver/mw"
)

func init() { Register(registerAcronyms) }

func registerAcronyms(r chi.Router, d deps.Deps) {
	guard := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)

	r.Route("/api/acronyms", func(r chi.Router) {
		r.Get("/", handlers.ListAcronyms(d))
		r.With(guard).Post("/", handlers.CreateAcronym(d))
		r.Get("/{id}", handlers.GetAcronym(d))
		r.With(guard).Put("/{id}", handlers.UpdateAcronym(d))
		r.With(guard).Delete("/{id}", handlers.DeleteAcronym(d))
	})
}

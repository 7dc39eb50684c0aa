package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/acronyms/internal/httpserver/deps"
)

// Registrar mounts one route group. Guards that need deps are applied
// inside the group with r.With.
type Registrar func(r chi.Router, d deps.Deps)

var registry []Registrar

// Register adds a route group. Called from init.
func Register(reg Registrar) {
	registry = append(registry, reg)
}

// RegisterAll mounts every registered route group on r. Called once per
// router from httpserver.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registry {
		reg(r, d)
	}
}

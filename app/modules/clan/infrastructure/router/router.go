package clanrouter

import (
	clanhandlers "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the clan and user routes on r.
func Register(r chi.Router, h clanhandlers.Handlers) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.HandleSyncUser)
		r.Get("/{userID}/context", h.HandleGetUserContext)
	})

	r.Post("/api/clans", h.HandleCreateClan)
	r.Route("/api/clans/{clanID}/settings", func(r chi.Router) {
		r.Get("/", h.HandleGetSettings)
		r.Put("/", h.HandleUpdateSettings)
	})
}

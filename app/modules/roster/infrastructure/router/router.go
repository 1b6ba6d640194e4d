package rosterrouter

import (
	rosterhandlers "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the roster routes on r.
func Register(r chi.Router, h rosterhandlers.Handlers) {
	r.Route("/api/clans/{clanID}", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.HandleListMembers)
			r.Post("/", h.HandleAddMember)
			r.Get("/export.xlsx", h.HandleExportRoster)
			r.Delete("/{memberID}", h.HandleRemoveMember)
			r.Put("/{memberID}/party", h.HandleAssignMemberParty)
		})

		r.Route("/cps", func(r chi.Router) {
			r.Get("/", h.HandleListParties)
			r.Post("/", h.HandleCreateParty)
			r.Put("/{cpID}/needs", h.HandleUpdatePartyNeeds)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.HandleListEvents)
			r.Post("/", h.HandleCreateEvent)
			r.Put("/{eventID}/attendance/{memberID}", h.HandleMarkAttendance)
			r.Delete("/{eventID}/attendance/{memberID}", h.HandleClearAttendance)
		})

		r.Get("/stats", h.HandleGetStats)
	})
}

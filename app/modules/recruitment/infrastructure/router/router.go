package recruitmentrouter

import (
	"net/http"

	recruitmenthandlers "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the application routes on r. submitLimit, when set, guards
// the public submission endpoint.
func Register(r chi.Router, h recruitmenthandlers.Handlers, submitLimit func(http.Handler) http.Handler) {
	r.Route("/api/clans/{clanID}/applications", func(r chi.Router) {
		r.Get("/", h.HandleListApplications)
		if submitLimit != nil {
			r.With(submitLimit).Post("/", h.HandleSubmitApplication)
		} else {
			r.Post("/", h.HandleSubmitApplication)
		}
		r.Put("/{appID}/status", h.HandleUpdateApplicationStatus)
	})
}

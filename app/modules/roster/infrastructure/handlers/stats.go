package rosterhandlers

import (
	"net/http"

	"github.com/Black-And-White-Club/clan-roster/app/shared/httpjson"
)

func (h *RosterHandlers) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleGetStats")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	stats, err := h.service.GetDashboardStats(ctx, clanID)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, stats)
}

package rosterhandlers

import (
	"context"
	"net/http"

	rosterservice "github.com/Black-And-White-Club/clan-roster/app/modules/roster/application"
	"github.com/Black-And-White-Club/clan-roster/app/shared/httpjson"
	"github.com/google/uuid"
)

func (h *RosterHandlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleListEvents")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	events, err := h.service.ListEvents(ctx, clanID)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, events)
}

func (h *RosterHandlers) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleCreateEvent")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	var req rosterservice.CreateEventRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	event, err := h.service.CreateEvent(ctx, clanID, req)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, event)
}

func (h *RosterHandlers) HandleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	h.handleAttendance(w, r, "RosterHandlers.HandleMarkAttendance", h.service.MarkAttendance)
}

func (h *RosterHandlers) HandleClearAttendance(w http.ResponseWriter, r *http.Request) {
	h.handleAttendance(w, r, "RosterHandlers.HandleClearAttendance", h.service.ClearAttendance)
}

func (h *RosterHandlers) handleAttendance(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	op func(ctx context.Context, clanID, eventID, memberID uuid.UUID) error,
) {
	ctx, span := h.tracer.Start(r.Context(), spanName)
	defer span.End()

	ids := make([]uuid.UUID, 0, 3)
	for _, name := range []string{"clanID", "eventID", "memberID"} {
		id, err := httpjson.PathUUID(r, name)
		if err != nil {
			httpjson.Error(w, r, h.logger, err)
			return
		}
		ids = append(ids, id)
	}

	if err := op(ctx, ids[0], ids[1], ids[2]); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.Success{Success: true})
}

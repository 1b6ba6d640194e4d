package rosterhandlers

import (
	"net/http"

	rosterservice "github.com/Black-And-White-Club/clan-roster/app/modules/roster/application"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/Black-And-White-Club/clan-roster/app/shared/httpjson"
)

func (h *RosterHandlers) HandleListParties(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleListParties")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	parties, err := h.service.ListEnrichedParties(ctx, clanID)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, parties)
}

func (h *RosterHandlers) HandleCreateParty(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleCreateParty")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	var req rosterservice.CreatePartyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	party, err := h.service.CreateParty(ctx, clanID, req)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, party)
}

type updateNeedsRequest struct {
	RecruitingClasses *rosterdb.RecruitingClasses `json:"recruiting_classes"`
}

// HandleUpdatePartyNeeds overwrites the party's recruiting list. The body
// accepts the comma-joined string or an array.
func (h *RosterHandlers) HandleUpdatePartyNeeds(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleUpdatePartyNeeds")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	partyID, err := httpjson.PathUUID(r, "cpID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	var req updateNeedsRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	if req.RecruitingClasses == nil {
		httpjson.Error(w, r, h.logger, domainerrors.Required("recruiting_classes"))
		return
	}

	if err := h.service.UpdatePartyNeeds(ctx, clanID, partyID, *req.RecruitingClasses); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.Success{Success: true})
}

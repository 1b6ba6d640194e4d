package rosterhandlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	rosterservice "github.com/Black-And-White-Club/clan-roster/app/modules/roster/application"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/Black-And-White-Club/clan-roster/app/shared/httpjson"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseListQuery reads the filter and sort query parameters.
func parseListQuery(r *http.Request) (rosterservice.MemberFilter, rosterservice.SortState, error) {
	q := r.URL.Query()
	filter := rosterservice.MemberFilter{
		Query:      q.Get("q"),
		ClassGroup: q.Get("class_group"),
		Party:      q.Get("party"),
	}

	sort := rosterservice.DefaultSort()
	if key := q.Get("sort"); key != "" {
		if !rosterservice.ValidSortKey(key) {
			return filter, sort, domainerrors.Invalid("sort", fmt.Sprintf("unknown key %q", key))
		}
		sort.Key = key
	}
	switch dir := rosterservice.Direction(strings.ToLower(q.Get("dir"))); dir {
	case "":
	case rosterservice.Asc, rosterservice.Desc:
		sort.Direction = dir
	default:
		return filter, sort, domainerrors.Invalid("dir", "must be asc or desc")
	}
	return filter, sort, nil
}

// HandleListMembers returns the enriched roster, filtered and sorted by the
// query parameters.
func (h *RosterHandlers) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleListMembers")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	filter, sort, err := parseListQuery(r)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	members, err := h.service.ListEnrichedMembers(ctx, clanID)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	members = filter.Apply(members)
	sort.Sort(members)
	httpjson.Write(w, http.StatusOK, members)
}

func (h *RosterHandlers) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleAddMember")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	var req rosterservice.AddMemberRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	member, err := h.service.AddMember(ctx, clanID, req)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, member)
}

// HandleExportRoster streams the roster workbook. The workbook is built in
// memory first so a failure still yields a JSON error.
func (h *RosterHandlers) HandleExportRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleExportRoster")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportRoster(ctx, clanID, &buf); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="roster.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(ctx, "Roster export interrupted", slog.String("error", err.Error()))
	}
}

func (h *RosterHandlers) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleRemoveMember")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	memberID, err := httpjson.PathUUID(r, "memberID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	if err := h.service.RemoveMember(ctx, clanID, memberID); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.Success{Success: true})
}

type assignPartyRequest struct {
	PartyID *uuid.UUID `json:"party_id"`
}

// HandleAssignMemberParty moves a member into a party, or out of one when
// party_id is null.
func (h *RosterHandlers) HandleAssignMemberParty(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RosterHandlers.HandleAssignMemberParty")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	memberID, err := httpjson.PathUUID(r, "memberID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	var req assignPartyRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	if err := h.service.AssignMemberParty(ctx, clanID, memberID, req.PartyID); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.Success{Success: true})
}

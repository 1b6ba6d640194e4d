package rosterhandlers

import "net/http"

// Handlers defines the HTTP handlers for roster routes.
type Handlers interface {
	HandleListMembers(w http.ResponseWriter, r *http.Request)
	HandleAddMember(w http.ResponseWriter, r *http.Request)
	HandleExportRoster(w http.ResponseWriter, r *http.Request)
	HandleRemoveMember(w http.ResponseWriter, r *http.Request)
	HandleAssignMemberParty(w http.ResponseWriter, r *http.Request)

	HandleListParties(w http.ResponseWriter, r *http.Request)
	HandleCreateParty(w http.ResponseWriter, r *http.Request)
	HandleUpdatePartyNeeds(w http.ResponseWriter, r *http.Request)

	HandleListEvents(w http.ResponseWriter, r *http.Request)
	HandleCreateEvent(w http.ResponseWriter, r *http.Request)
	HandleMarkAttendance(w http.ResponseWriter, r *http.Request)
	HandleClearAttendance(w http.ResponseWriter, r *http.Request)

	HandleGetStats(w http.ResponseWriter, r *http.Request)
}

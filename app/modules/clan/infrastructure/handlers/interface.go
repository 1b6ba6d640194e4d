package clanhandlers

import "net/http"

// Handlers defines the HTTP handlers for clan and identity routes.
type Handlers interface {
	HandleSyncUser(w http.ResponseWriter, r *http.Request)
	HandleGetUserContext(w http.ResponseWriter, r *http.Request)
	HandleCreateClan(w http.ResponseWriter, r *http.Request)
	HandleGetSettings(w http.ResponseWriter, r *http.Request)
	HandleUpdateSettings(w http.ResponseWriter, r *http.Request)
}

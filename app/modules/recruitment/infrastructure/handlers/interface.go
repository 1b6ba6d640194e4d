package recruitmenthandlers

import "net/http"

// Handlers defines the HTTP handlers for the recruitment workflow.
type Handlers interface {
	HandleSubmitApplication(w http.ResponseWriter, r *http.Request)
	HandleListApplications(w http.ResponseWriter, r *http.Request)
	HandleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request)
}

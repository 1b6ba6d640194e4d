package recruitmenthandlers

import (
	"log/slog"
	"net/http"

	recruitmentservice "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/application"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/shared/httpjson"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// RecruitmentHandlers implements the Handlers interface.
type RecruitmentHandlers struct {
	service recruitmentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewRecruitmentHandlers(
	service recruitmentservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &RecruitmentHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type submitResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

// HandleSubmitApplication is the public application form endpoint. It answers
// as soon as the application is stored.
func (h *RecruitmentHandlers) HandleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RecruitmentHandlers.HandleSubmitApplication")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	var req recruitmentservice.SubmitApplicationRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	app, err := h.service.SubmitApplication(ctx, clanID, req)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, submitResponse{Success: true, ID: app.ID})
}

func (h *RecruitmentHandlers) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RecruitmentHandlers.HandleListApplications")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	status := recruitmentdb.ApplicationStatus(r.URL.Query().Get("status"))
	if status == "all" {
		status = ""
	}

	apps, err := h.service.ListApplications(ctx, clanID, status)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, apps)
}

func (h *RecruitmentHandlers) HandleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RecruitmentHandlers.HandleUpdateApplicationStatus")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	appID, err := httpjson.PathUUID(r, "appID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	var req recruitmentservice.UpdateStatusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	if _, err := h.service.UpdateApplicationStatus(ctx, clanID, appID, req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.Success{Success: true})
}

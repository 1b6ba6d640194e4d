package clanhandlers

import (
	"log/slog"
	"net/http"

	clanservice "github.com/Black-And-White-Club/clan-roster/app/modules/clan/application"
	"github.com/Black-And-White-Club/clan-roster/app/shared/httpjson"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ClanHandlers implements the Handlers interface.
type ClanHandlers struct {
	service clanservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewClanHandlers creates a new ClanHandlers instance.
func NewClanHandlers(
	service clanservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ClanHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleSyncUser upserts the identity provider's user record.
func (h *ClanHandlers) HandleSyncUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClanHandlers.HandleSyncUser")
	defer span.End()

	var req clanservice.SyncUserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	if _, err := h.service.SyncUser(ctx, req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.Success{Success: true})
}

func (h *ClanHandlers) HandleGetUserContext(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClanHandlers.HandleGetUserContext")
	defer span.End()

	userID, err := httpjson.PathUUID(r, "userID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	uc, err := h.service.GetUserContext(ctx, userID)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, uc)
}

type createClanResponse struct {
	Success bool      `json:"success"`
	ClanID  uuid.UUID `json:"clanId"`
}

// HandleCreateClan founds a clan with the caller as leader.
func (h *ClanHandlers) HandleCreateClan(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClanHandlers.HandleCreateClan")
	defer span.End()

	var req clanservice.CreateClanRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	clan, err := h.service.CreateClan(ctx, req)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "Clan created",
		slog.String("clan_id", clan.ID.String()),
		slog.String("clan_name", clan.Name),
	)
	httpjson.Write(w, http.StatusCreated, createClanResponse{Success: true, ClanID: clan.ID})
}

func (h *ClanHandlers) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClanHandlers.HandleGetSettings")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	settings, err := h.service.GetSettings(ctx, clanID)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, settings)
}

func (h *ClanHandlers) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClanHandlers.HandleUpdateSettings")
	defer span.End()

	clanID, err := httpjson.PathUUID(r, "clanID")
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	var body clanservice.Settings
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}

	settings, err := h.service.UpdateSettings(ctx, clanID, body.DiscordWebhookURL)
	if err != nil {
		httpjson.Error(w, r, h.logger, err)
		return
	}
	httpjson.Write(w, http.StatusOK, settings)
}

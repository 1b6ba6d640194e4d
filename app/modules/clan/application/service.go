package clanservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ClanService implements the Service interface.
type ClanService struct {
	repo      clandb.Repository
	members   rosterdb.Repository
	tx        database.Transactor
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time
}

// NewClanService creates a new ClanService.
func NewClanService(
	repo clandb.Repository,
	members rosterdb.Repository,
	tx database.Transactor,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *ClanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClanService{
		repo:    repo,
		members: members,
		tx:      tx,
		logger:  logger,
		telemetry: observability.Telemetry{
			Service: "ClanService",
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateClan inserts the clan and its leader member in one transaction.
func (s *ClanService) CreateClan(ctx context.Context, req CreateClanRequest) (*clandb.Clan, error) {
	return observability.Run(ctx, s.telemetry, "CreateClan", req.LeaderID.String(), func(ctx context.Context) (*clandb.Clan, error) {
		if err := validateCreateClan(&req); err != nil {
			return nil, err
		}
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (*clandb.Clan, error) {
			return s.createClanLogic(ctx, db, req)
		})
	})
}

func (s *ClanService) createClanLogic(ctx context.Context, db bun.IDB, req CreateClanRequest) (*clandb.Clan, error) {
	if _, err := s.members.GetMemberByUserID(ctx, db, req.LeaderID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, rosterdb.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if _, err := s.repo.GetClanByLeader(ctx, db, req.LeaderID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, clandb.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing clan: %w", err)
	}

	now := s.now()
	clan := &clandb.Clan{
		ID:        uuid.New(),
		Name:      req.Name,
		Server:    req.Server,
		LeaderID:  req.LeaderID,
		CreatedAt: now,
	}
	if err := s.repo.InsertClan(ctx, db, clan); err != nil {
		return nil, err
	}

	leader := &rosterdb.Member{
		ID:         uuid.New(),
		ClanID:     clan.ID,
		UserID:     req.LeaderID,
		InGameName: req.InGameName,
		Class:      req.Class,
		ClassGroup: req.ClassGroup,
		Role:       rosterdb.RoleLeader,
		Level:      1,
		JoinDate:   now,
		Status:     rosterdb.MemberStatusActive,
	}
	if err := s.members.InsertMember(ctx, db, leader); err != nil {
		if errors.Is(err, rosterdb.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "Clan founded",
		slog.String("clan_id", clan.ID.String()),
		slog.String("leader_member_id", leader.ID.String()),
	)
	return clan, nil
}

func validateCreateClan(req *CreateClanRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Server = strings.TrimSpace(req.Server)
	req.InGameName = strings.TrimSpace(req.InGameName)
	req.Class = strings.TrimSpace(req.Class)
	req.ClassGroup = strings.TrimSpace(req.ClassGroup)

	switch {
	case req.Name == "":
		return domainerrors.Required("name")
	case req.Server == "":
		return domainerrors.Required("server")
	case req.LeaderID == uuid.Nil:
		return domainerrors.Required("leader_id")
	case req.InGameName == "":
		return domainerrors.Required("in_game_name")
	case req.Class == "":
		return domainerrors.Required("class")
	case req.ClassGroup == "":
		return domainerrors.Required("class_group")
	}
	return nil
}

// GetSettings returns the clan's settings; an unknown clan has empty settings.
func (s *ClanService) GetSettings(ctx context.Context, clanID uuid.UUID) (*Settings, error) {
	return observability.Run(ctx, s.telemetry, "GetSettings", clanID.String(), func(ctx context.Context) (*Settings, error) {
		clan, err := s.repo.GetClan(ctx, nil, clanID)
		if err != nil {
			if errors.Is(err, clandb.ErrNotFound) {
				return &Settings{}, nil
			}
			return nil, err
		}
		return &Settings{DiscordWebhookURL: clan.DiscordWebhookURL}, nil
	})
}

// UpdateSettings replaces the webhook URL. An empty URL clears it.
func (s *ClanService) UpdateSettings(ctx context.Context, clanID uuid.UUID, webhookURL string) (*Settings, error) {
	return observability.Run(ctx, s.telemetry, "UpdateSettings", clanID.String(), func(ctx context.Context) (*Settings, error) {
		webhookURL = strings.TrimSpace(webhookURL)
		if err := validateWebhookURL(webhookURL); err != nil {
			return nil, err
		}
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (*Settings, error) {
			if err := s.repo.UpdateWebhookURL(ctx, db, clanID, webhookURL); err != nil {
				if errors.Is(err, clandb.ErrNotFound) {
					return nil, ErrClanNotFound
				}
				return nil, err
			}
			return &Settings{DiscordWebhookURL: webhookURL}, nil
		})
	})
}

func validateWebhookURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return domainerrors.Invalid("discord_webhook_url", "must be an absolute http(s) URL")
	}
	return nil
}

// SyncUser creates or refreshes the identity record.
func (s *ClanService) SyncUser(ctx context.Context, req SyncUserRequest) (*clandb.User, error) {
	return observability.Run(ctx, s.telemetry, "SyncUser", req.ID.String(), func(ctx context.Context) (*clandb.User, error) {
		if req.ID == uuid.Nil {
			return nil, domainerrors.Required("id")
		}
		if strings.TrimSpace(req.Username) == "" {
			return nil, domainerrors.Required("username")
		}
		user := &clandb.User{
			ID:        req.ID,
			Email:     strings.TrimSpace(req.Email),
			Username:  strings.TrimSpace(req.Username),
			CreatedAt: s.now(),
		}
		if err := s.repo.UpsertUser(ctx, nil, user); err != nil {
			return nil, err
		}
		return user, nil
	})
}

// GetUserContext resolves the user's membership and clan. The clan comes from
// the membership or, failing that, from clans the user leads.
func (s *ClanService) GetUserContext(ctx context.Context, userID uuid.UUID) (*UserContext, error) {
	return observability.Run(ctx, s.telemetry, "GetUserContext", userID.String(), func(ctx context.Context) (*UserContext, error) {
		user, err := s.repo.GetUser(ctx, nil, userID)
		if err != nil {
			if errors.Is(err, clandb.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}

		out := &UserContext{User: user}

		member, err := s.members.GetMemberByUserID(ctx, nil, userID)
		switch {
		case err == nil:
			out.Member = member
		case !errors.Is(err, rosterdb.ErrNotFound):
			return nil, err
		}

		var clan *clandb.Clan
		if member != nil {
			clan, err = s.repo.GetClan(ctx, nil, member.ClanID)
		} else {
			clan, err = s.repo.GetClanByLeader(ctx, nil, userID)
		}
		switch {
		case err == nil:
			out.Clan = clan
		case !errors.Is(err, clandb.ErrNotFound):
			return nil, err
		}
		return out, nil
	})
}

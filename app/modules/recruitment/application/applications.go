package recruitmentservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	clandb "github.com/Black-And-White-Club/clan-roster/app/modules/clan/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/notifier"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (s *RecruitmentService) SubmitApplication(ctx context.Context, clanID uuid.UUID, req SubmitApplicationRequest) (*recruitmentdb.Application, error) {
	res, err := observability.Run(ctx, s.telemetry, "SubmitApplication", clanID.String(), func(ctx context.Context) (submitted, error) {
		if err := validateSubmit(&req); err != nil {
			return submitted{}, err
		}

		clan, err := s.clans.GetClan(ctx, nil, clanID)
		if err != nil {
			if errors.Is(err, clandb.ErrNotFound) {
				return submitted{}, ErrClanNotFound
			}
			return submitted{}, err
		}

		app := &recruitmentdb.Application{
			ID:          uuid.New(),
			ClanID:      clanID,
			Type:        req.Type,
			Name:        req.Name,
			Class:       req.Class,
			Level:       *req.Level,
			CombatPower: *req.CombatPower,
			Discord:     req.Discord,
			Playtime:    req.Playtime,
			Notes:       req.Notes,
			Status:      recruitmentdb.StatusPending,
			CreatedAt:   s.now(),
		}
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (submitted, error) {
			if err := s.repo.InsertApplication(ctx, db, app); err != nil {
				return submitted{}, err
			}
			return submitted{app: app, clan: clan}, nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, res.clan, res.app)
	return res.app, nil
}

type submitted struct {
	app  *recruitmentdb.Application
	clan *clandb.Clan
}

// notify hands the notification to the dispatcher. Failures are logged and
// counted only.
func (s *RecruitmentService) notify(ctx context.Context, clan *clandb.Clan, app *recruitmentdb.Application) {
	if s.dispatcher == nil || clan.DiscordWebhookURL == "" {
		s.metrics.RecordNotification(ctx, notifier.StageDispatch, notifier.OutcomeSkipped)
		return
	}

	// The request context ends with the response; delivery must outlive it.
	err := s.dispatcher.Dispatch(context.WithoutCancel(ctx), notifier.Notification{
		WebhookURL:  clan.DiscordWebhookURL,
		ClanName:    clan.Name,
		Application: app,
	})
	if err != nil {
		s.metrics.RecordNotification(ctx, notifier.StageDispatch, notifier.OutcomeFailure)
		s.logger.WarnContext(ctx, "Failed to dispatch recruitment notification",
			slog.String("application_id", app.ID.String()),
			slog.String("clan_id", clan.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	s.metrics.RecordNotification(ctx, notifier.StageDispatch, notifier.OutcomeSuccess)
}

func validateSubmit(req *SubmitApplicationRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Class = strings.TrimSpace(req.Class)
	req.Discord = strings.TrimSpace(req.Discord)
	req.Playtime = strings.TrimSpace(req.Playtime)
	req.Notes = strings.TrimSpace(req.Notes)

	switch {
	case req.Type == "":
		return domainerrors.Required("type")
	case req.Type != recruitmentdb.ApplicationTypeSolo && req.Type != recruitmentdb.ApplicationTypeCP:
		return domainerrors.Invalid("type", "must be solo or cp")
	case req.Name == "":
		return domainerrors.Required("name")
	case req.Class == "":
		return domainerrors.Required("class")
	case req.Level == nil:
		return domainerrors.Required("level")
	case *req.Level < 1:
		return domainerrors.Invalid("level", "must be positive")
	case req.CombatPower == nil:
		return domainerrors.Required("combat_power")
	case *req.CombatPower < 0:
		return domainerrors.Invalid("combat_power", "must not be negative")
	case req.Discord == "":
		return domainerrors.Required("discord")
	case req.Playtime == "":
		return domainerrors.Required("playtime")
	}
	return nil
}

func (s *RecruitmentService) ListApplications(ctx context.Context, clanID uuid.UUID, status recruitmentdb.ApplicationStatus) ([]*recruitmentdb.Application, error) {
	return observability.Run(ctx, s.telemetry, "ListApplications", clanID.String(), func(ctx context.Context) ([]*recruitmentdb.Application, error) {
		if status != "" && !status.Valid() {
			return nil, domainerrors.Invalid("status", "must be pending, accepted or rejected")
		}
		apps, err := s.repo.ListApplications(ctx, nil, clanID, status)
		if err != nil {
			return nil, err
		}
		if apps == nil {
			apps = []*recruitmentdb.Application{}
		}
		return apps, nil
	})
}

// CheckTransition reports whether an application in from may move to to.
// Repeating the current decision is allowed and changes nothing.
func CheckTransition(from, to recruitmentdb.ApplicationStatus, override bool) error {
	if !to.IsTerminal() {
		return domainerrors.Invalid("status", "must be accepted or rejected")
	}
	if from.IsTerminal() && from != to && !override {
		return ErrInvalidTransition
	}
	return nil
}

func (s *RecruitmentService) UpdateApplicationStatus(ctx context.Context, clanID, appID uuid.UUID, req UpdateStatusRequest) (*recruitmentdb.Application, error) {
	return observability.Run(ctx, s.telemetry, "UpdateApplicationStatus", appID.String(), func(ctx context.Context) (*recruitmentdb.Application, error) {
		if !req.Status.IsTerminal() {
			return nil, domainerrors.Invalid("status", "must be accepted or rejected")
		}
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (*recruitmentdb.Application, error) {
			app, err := s.repo.GetApplication(ctx, db, clanID, appID, true)
			if err != nil {
				if errors.Is(err, recruitmentdb.ErrNotFound) {
					return nil, ErrApplicationNotFound
				}
				return nil, err
			}

			if err := CheckTransition(app.Status, req.Status, req.Override); err != nil {
				return nil, err
			}
			if app.Status == req.Status {
				return app, nil
			}

			if err := s.repo.UpdateApplicationStatus(ctx, db, clanID, appID, req.Status); err != nil {
				if errors.Is(err, recruitmentdb.ErrNotFound) {
					return nil, ErrApplicationNotFound
				}
				return nil, err
			}
			if app.Status.IsTerminal() {
				s.logger.InfoContext(ctx, "Application decision overridden",
					slog.String("application_id", appID.String()),
					slog.String("from", string(app.Status)),
					slog.String("to", string(req.Status)),
				)
			}
			app.Status = req.Status
			return app, nil
		})
	})
}

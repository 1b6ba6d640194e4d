package rosterservice

import (
	"context"
	"errors"
	"strings"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ListEvents returns the clan's events, newest first.
func (s *RosterService) ListEvents(ctx context.Context, clanID uuid.UUID) ([]*rosterdb.Event, error) {
	return observability.Run(ctx, s.telemetry, "ListEvents", clanID.String(), func(ctx context.Context) ([]*rosterdb.Event, error) {
		events, err := s.repo.ListEvents(ctx, nil, clanID)
		if err != nil {
			return nil, err
		}
		if events == nil {
			events = []*rosterdb.Event{}
		}
		return events, nil
	})
}

// CreateEvent schedules an event.
func (s *RosterService) CreateEvent(ctx context.Context, clanID uuid.UUID, req CreateEventRequest) (*rosterdb.Event, error) {
	return observability.Run(ctx, s.telemetry, "CreateEvent", clanID.String(), func(ctx context.Context) (*rosterdb.Event, error) {
		req.Name = strings.TrimSpace(req.Name)
		req.Type = strings.TrimSpace(req.Type)
		switch {
		case req.Name == "":
			return nil, domainerrors.Required("name")
		case req.Type == "":
			return nil, domainerrors.Required("type")
		case strings.TrimSpace(req.Date) == "":
			return nil, domainerrors.Required("date")
		}

		now := s.now()
		date, err := s.dates.Parse(req.Date, req.Timezone, now)
		if err != nil {
			return nil, domainerrors.Invalid("date", err.Error())
		}

		event := &rosterdb.Event{
			ID:        uuid.New(),
			ClanID:    clanID,
			Name:      req.Name,
			Type:      req.Type,
			Date:      date,
			Mandatory: req.Mandatory,
			CreatedAt: now,
		}
		if err := s.repo.InsertEvent(ctx, nil, event); err != nil {
			return nil, err
		}
		return event, nil
	})
}

// MarkAttendance records that the member attended the event. Marking twice is
// a no-op.
func (s *RosterService) MarkAttendance(ctx context.Context, clanID, eventID, memberID uuid.UUID) error {
	_, err := observability.Run(ctx, s.telemetry, "MarkAttendance", eventID.String(), func(ctx context.Context) (struct{}, error) {
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			if err := s.checkAttendancePair(ctx, db, clanID, eventID, memberID); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, s.repo.InsertAttendance(ctx, db, &rosterdb.Attendance{EventID: eventID, MemberID: memberID})
		})
	})
	return err
}

// ClearAttendance removes the attendance record if present.
func (s *RosterService) ClearAttendance(ctx context.Context, clanID, eventID, memberID uuid.UUID) error {
	_, err := observability.Run(ctx, s.telemetry, "ClearAttendance", eventID.String(), func(ctx context.Context) (struct{}, error) {
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			if err := s.checkAttendancePair(ctx, db, clanID, eventID, memberID); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, s.repo.DeleteAttendance(ctx, db, eventID, memberID)
		})
	})
	return err
}

func (s *RosterService) checkAttendancePair(ctx context.Context, db bun.IDB, clanID, eventID, memberID uuid.UUID) error {
	if _, err := s.repo.GetEvent(ctx, db, clanID, eventID); err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if _, err := s.repo.GetMember(ctx, db, clanID, memberID); err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

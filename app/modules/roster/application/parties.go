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

// CreateParty creates the party and moves its leader into it.
func (s *RosterService) CreateParty(ctx context.Context, clanID uuid.UUID, req CreatePartyRequest) (*rosterdb.Party, error) {
	return observability.Run(ctx, s.telemetry, "CreateParty", clanID.String(), func(ctx context.Context) (*rosterdb.Party, error) {
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return nil, domainerrors.Required("name")
		}
		if req.LeaderID == uuid.Nil {
			return nil, domainerrors.Required("leader_id")
		}

		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (*rosterdb.Party, error) {
			if _, err := s.repo.GetMember(ctx, db, clanID, req.LeaderID); err != nil {
				if errors.Is(err, rosterdb.ErrNotFound) {
					return nil, ErrMemberNotFound
				}
				return nil, err
			}
			if _, err := s.repo.GetPartyByLeader(ctx, db, clanID, req.LeaderID); err == nil {
				return nil, ErrAlreadyLeader
			} else if !errors.Is(err, rosterdb.ErrNotFound) {
				return nil, err
			}

			party := &rosterdb.Party{
				ID:                uuid.New(),
				ClanID:            clanID,
				Name:              req.Name,
				LeaderID:          req.LeaderID,
				RecruitingClasses: req.RecruitingClasses.Normalize(),
				CreatedAt:         s.now(),
			}
			if err := s.repo.InsertParty(ctx, db, party); err != nil {
				return nil, err
			}
			if err := s.repo.SetMemberParty(ctx, db, clanID, req.LeaderID, &party.ID); err != nil {
				return nil, err
			}
			return party, nil
		})
	})
}

// UpdatePartyNeeds overwrites the party's recruiting list.
func (s *RosterService) UpdatePartyNeeds(ctx context.Context, clanID, partyID uuid.UUID, classes rosterdb.RecruitingClasses) error {
	_, err := observability.Run(ctx, s.telemetry, "UpdatePartyNeeds", partyID.String(), func(ctx context.Context) (struct{}, error) {
		if err := s.repo.UpdateRecruitingClasses(ctx, nil, clanID, partyID, classes.Normalize()); err != nil {
			if errors.Is(err, rosterdb.ErrNotFound) {
				return struct{}{}, ErrPartyNotFound
			}
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	return err
}

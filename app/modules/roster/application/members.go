package rosterservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/clan-roster/app/database"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AddMember inserts a new officer or member, optionally straight into a party.
func (s *RosterService) AddMember(ctx context.Context, clanID uuid.UUID, req AddMemberRequest) (*rosterdb.Member, error) {
	return observability.Run(ctx, s.telemetry, "AddMember", clanID.String(), func(ctx context.Context) (*rosterdb.Member, error) {
		if err := validateAddMember(&req); err != nil {
			return nil, err
		}
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (*rosterdb.Member, error) {
			if _, err := s.repo.GetMemberByUserID(ctx, db, req.UserID); err == nil {
				return nil, ErrAlreadyMember
			} else if !errors.Is(err, rosterdb.ErrNotFound) {
				return nil, fmt.Errorf("failed to check existing membership: %w", err)
			}

			if req.PartyID != nil {
				if err := s.reserveSeat(ctx, db, clanID, *req.PartyID); err != nil {
					return nil, err
				}
			}

			member := &rosterdb.Member{
				ID:          uuid.New(),
				ClanID:      clanID,
				UserID:      req.UserID,
				InGameName:  req.InGameName,
				Class:       req.Class,
				ClassGroup:  req.ClassGroup,
				Role:        req.Role,
				Level:       req.Level,
				CombatPower: req.CombatPower,
				JoinDate:    s.now(),
				PartyID:     req.PartyID,
				Status:      rosterdb.MemberStatusActive,
			}
			if err := s.repo.InsertMember(ctx, db, member); err != nil {
				if errors.Is(err, rosterdb.ErrDuplicate) {
					return nil, ErrAlreadyMember
				}
				return nil, err
			}
			return member, nil
		})
	})
}

func validateAddMember(req *AddMemberRequest) error {
	req.InGameName = strings.TrimSpace(req.InGameName)
	req.Class = strings.TrimSpace(req.Class)
	req.ClassGroup = strings.TrimSpace(req.ClassGroup)
	if req.Role == "" {
		req.Role = rosterdb.RoleMember
	}
	if req.Level == 0 {
		req.Level = 1
	}

	switch {
	case req.UserID == uuid.Nil:
		return domainerrors.Required("user_id")
	case req.InGameName == "":
		return domainerrors.Required("in_game_name")
	case req.Class == "":
		return domainerrors.Required("class")
	case req.ClassGroup == "":
		return domainerrors.Required("class_group")
	case req.Role != rosterdb.RoleOfficer && req.Role != rosterdb.RoleMember:
		return domainerrors.Invalid("role", "must be officer or member")
	case req.Level < 0:
		return domainerrors.Invalid("level", "must not be negative")
	case req.CombatPower < 0:
		return domainerrors.Invalid("combat_power", "must not be negative")
	}
	return nil
}

// reserveSeat locks the party row and fails if it is full. The lock is held
// until the surrounding transaction ends, so the caller's assignment cannot
// race another one into the same party.
func (s *RosterService) reserveSeat(ctx context.Context, db bun.IDB, clanID, partyID uuid.UUID) error {
	if _, err := s.repo.LockParty(ctx, db, clanID, partyID); err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return ErrPartyNotFound
		}
		return err
	}
	count, err := s.repo.CountPartyMembers(ctx, db, partyID)
	if err != nil {
		return fmt.Errorf("failed to count party members: %w", err)
	}
	if count >= rosterdb.PartyCapacity {
		return ErrCapacityExceeded
	}
	return nil
}

// RemoveMember deletes the member. A missing member is not an error. A member
// who leads a party cannot be removed while the party exists.
func (s *RosterService) RemoveMember(ctx context.Context, clanID, memberID uuid.UUID) error {
	_, err := observability.Run(ctx, s.telemetry, "RemoveMember", memberID.String(), func(ctx context.Context) (bool, error) {
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (bool, error) {
			if _, err := s.repo.GetPartyByLeader(ctx, db, clanID, memberID); err == nil {
				return false, ErrLeaderCannotLeave
			} else if !errors.Is(err, rosterdb.ErrNotFound) {
				return false, err
			}

			removed, err := s.repo.DeleteMember(ctx, db, clanID, memberID)
			if err != nil {
				return false, err
			}
			if !removed {
				s.logger.DebugContext(ctx, "Member already absent",
					slog.String("clan_id", clanID.String()),
					slog.String("member_id", memberID.String()),
				)
			}
			return removed, nil
		})
	})
	return err
}

// AssignMemberParty moves the member into partyID or, when nil, out of any
// party. The capacity check and the write share one transaction.
func (s *RosterService) AssignMemberParty(ctx context.Context, clanID, memberID uuid.UUID, partyID *uuid.UUID) error {
	_, err := observability.Run(ctx, s.telemetry, "AssignMemberParty", memberID.String(), func(ctx context.Context) (struct{}, error) {
		return database.RunInTx(ctx, s.tx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			return struct{}{}, s.assignLogic(ctx, db, clanID, memberID, partyID)
		})
	})
	return err
}

func (s *RosterService) assignLogic(ctx context.Context, db bun.IDB, clanID, memberID uuid.UUID, partyID *uuid.UUID) error {
	member, err := s.repo.GetMember(ctx, db, clanID, memberID)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if samePartyRef(member.PartyID, partyID) {
		return nil
	}

	if _, err := s.repo.GetPartyByLeader(ctx, db, clanID, memberID); err == nil {
		return ErrLeaderCannotLeave
	} else if !errors.Is(err, rosterdb.ErrNotFound) {
		return err
	}

	if partyID != nil {
		if err := s.reserveSeat(ctx, db, clanID, *partyID); err != nil {
			return err
		}
	}

	if err := s.repo.SetMemberParty(ctx, db, clanID, memberID, partyID); err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

func samePartyRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

package rosterservice

import (
	"fmt"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
)

var (
	// ErrCapacityExceeded is returned when an assignment would put more than
	// rosterdb.PartyCapacity members in a party.
	ErrCapacityExceeded = fmt.Errorf("%w: party is at capacity", domainerrors.ErrConflict)

	// ErrLeaderCannotLeave is returned when a party leader is moved out of the
	// party they lead.
	ErrLeaderCannotLeave = fmt.Errorf("%w: party leader cannot leave their party", domainerrors.ErrConflict)

	// ErrAlreadyLeader is returned when a member that leads a party is made the
	// leader of a new one.
	ErrAlreadyLeader = fmt.Errorf("%w: member already leads a party", domainerrors.ErrConflict)

	// ErrAlreadyMember is returned when the user already has a membership.
	ErrAlreadyMember = fmt.Errorf("%w: user already belongs to a clan", domainerrors.ErrConflict)

	ErrMemberNotFound = fmt.Errorf("member %w", domainerrors.ErrNotFound)
	ErrPartyNotFound  = fmt.Errorf("party %w", domainerrors.ErrNotFound)
	ErrEventNotFound  = fmt.Errorf("event %w", domainerrors.ErrNotFound)
)

package clanservice

import (
	"fmt"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
)

var (
	// ErrAlreadyMember is returned when a user that already holds a membership
	// tries to found a clan.
	ErrAlreadyMember = fmt.Errorf("%w: user already belongs to a clan", domainerrors.ErrConflict)

	// ErrUserNotFound is returned by GetUserContext for an unknown user.
	ErrUserNotFound = fmt.Errorf("user %w", domainerrors.ErrNotFound)

	// ErrClanNotFound is returned when settings are written for an unknown clan.
	ErrClanNotFound = fmt.Errorf("clan %w", domainerrors.ErrNotFound)
)

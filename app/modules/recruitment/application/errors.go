package recruitmentservice

import (
	"fmt"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
)

var (
	ErrApplicationNotFound = fmt.Errorf("application %w", domainerrors.ErrNotFound)
	ErrClanNotFound        = fmt.Errorf("clan %w", domainerrors.ErrNotFound)

	// ErrInvalidTransition is returned when a decided application is moved to
	// the other decision without override.
	ErrInvalidTransition = fmt.Errorf("%w: application already decided", domainerrors.ErrConflict)
)

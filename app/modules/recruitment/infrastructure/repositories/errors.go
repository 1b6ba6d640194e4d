package recruitmentdb

import (
	"fmt"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
)

// ErrNotFound indicates the application does not exist within the clan.
var ErrNotFound = fmt.Errorf("application %w", domainerrors.ErrNotFound)

package clandb

import (
	"fmt"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
)

// Sentinel errors for the clan repository layer.
var (
	// ErrNotFound indicates the requested clan or user row does not exist.
	ErrNotFound = fmt.Errorf("clan record %w", domainerrors.ErrNotFound)
)

package rosterdb

import (
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Sentinel errors for the roster repository layer.
var (
	// ErrNotFound indicates the requested member, party or event does not exist
	// within the clan.
	ErrNotFound = fmt.Errorf("roster record %w", domainerrors.ErrNotFound)

	// ErrDuplicate indicates a unique constraint rejected the write, such as a
	// second membership for the same user.
	ErrDuplicate = errors.New("roster record already exists")
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation
}

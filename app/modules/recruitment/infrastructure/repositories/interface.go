package recruitmentdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for application persistence.
type Repository interface {
	InsertApplication(ctx context.Context, db bun.IDB, app *Application) error

	// ListApplications returns the clan's applications newest first. An empty
	// status returns every status.
	ListApplications(ctx context.Context, db bun.IDB, clanID uuid.UUID, status ApplicationStatus) ([]*Application, error)

	// GetApplication reads the application; forUpdate locks the row for the
	// rest of the transaction.
	GetApplication(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, forUpdate bool) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, db bun.IDB, clanID, appID uuid.UUID, status ApplicationStatus) error
}

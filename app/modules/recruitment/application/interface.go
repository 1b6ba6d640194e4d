package recruitmentservice

import (
	"context"

	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service defines the recruitment workflow.
type Service interface {
	// SubmitApplication stores a pending application and hands the webhook
	// notification off without waiting on it.
	SubmitApplication(ctx context.Context, clanID uuid.UUID, req SubmitApplicationRequest) (*recruitmentdb.Application, error)

	// ListApplications returns applications newest first. An empty status
	// returns all of them.
	ListApplications(ctx context.Context, clanID uuid.UUID, status recruitmentdb.ApplicationStatus) ([]*recruitmentdb.Application, error)

	UpdateApplicationStatus(ctx context.Context, clanID, appID uuid.UUID, req UpdateStatusRequest) (*recruitmentdb.Application, error)
}

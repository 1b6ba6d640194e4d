package recruitmenthandlers

import (
	"context"

	recruitmentservice "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/application"
	recruitmentdb "github.com/Black-And-White-Club/clan-roster/app/modules/recruitment/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeRecruitmentService is a programmable recruitmentservice.Service.
type FakeRecruitmentService struct {
	trace []string

	SubmitApplicationFunc       func(ctx context.Context, clanID uuid.UUID, req recruitmentservice.SubmitApplicationRequest) (*recruitmentdb.Application, error)
	ListApplicationsFunc        func(ctx context.Context, clanID uuid.UUID, status recruitmentdb.ApplicationStatus) ([]*recruitmentdb.Application, error)
	UpdateApplicationStatusFunc func(ctx context.Context, clanID, appID uuid.UUID, req recruitmentservice.UpdateStatusRequest) (*recruitmentdb.Application, error)
}

func NewFakeRecruitmentService() *FakeRecruitmentService {
	return &FakeRecruitmentService{trace: []string{}}
}

func (f *FakeRecruitmentService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRecruitmentService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRecruitmentService) SubmitApplication(ctx context.Context, clanID uuid.UUID, req recruitmentservice.SubmitApplicationRequest) (*recruitmentdb.Application, error) {
	f.record("SubmitApplication")
	if f.SubmitApplicationFunc != nil {
		return f.SubmitApplicationFunc(ctx, clanID, req)
	}
	return &recruitmentdb.Application{ID: uuid.New(), ClanID: clanID, Status: recruitmentdb.StatusPending}, nil
}

func (f *FakeRecruitmentService) ListApplications(ctx context.Context, clanID uuid.UUID, status recruitmentdb.ApplicationStatus) ([]*recruitmentdb.Application, error) {
	f.record("ListApplications")
	if f.ListApplicationsFunc != nil {
		return f.ListApplicationsFunc(ctx, clanID, status)
	}
	return []*recruitmentdb.Application{}, nil
}

func (f *FakeRecruitmentService) UpdateApplicationStatus(ctx context.Context, clanID, appID uuid.UUID, req recruitmentservice.UpdateStatusRequest) (*recruitmentdb.Application, error) {
	f.record("UpdateApplicationStatus")
	if f.UpdateApplicationStatusFunc != nil {
		return f.UpdateApplicationStatusFunc(ctx, clanID, appID, req)
	}
	return &recruitmentdb.Application{ID: appID, ClanID: clanID, Status: req.Status}, nil
}

var _ recruitmentservice.Service = (*FakeRecruitmentService)(nil)

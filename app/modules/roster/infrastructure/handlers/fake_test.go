package rosterhandlers

import (
	"context"
	"io"

	rosterservice "github.com/Black-And-White-Club/clan-roster/app/modules/roster/application"
	rosterdb "github.com/Black-And-White-Club/clan-roster/app/modules/roster/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeRosterService is a programmable rosterservice.Service.
type FakeRosterService struct {
	trace []string

	ListEnrichedMembersFunc func(ctx context.Context, clanID uuid.UUID) ([]*rosterservice.EnrichedMember, error)
	ListEnrichedPartiesFunc func(ctx context.Context, clanID uuid.UUID) ([]*rosterservice.EnrichedParty, error)
	GetDashboardStatsFunc   func(ctx context.Context, clanID uuid.UUID) (*rosterservice.DashboardStats, error)
	ExportRosterFunc        func(ctx context.Context, clanID uuid.UUID, w io.Writer) error
	AddMemberFunc           func(ctx context.Context, clanID uuid.UUID, req rosterservice.AddMemberRequest) (*rosterdb.Member, error)
	RemoveMemberFunc        func(ctx context.Context, clanID, memberID uuid.UUID) error
	AssignMemberPartyFunc   func(ctx context.Context, clanID, memberID uuid.UUID, partyID *uuid.UUID) error
	CreatePartyFunc         func(ctx context.Context, clanID uuid.UUID, req rosterservice.CreatePartyRequest) (*rosterdb.Party, error)
	UpdatePartyNeedsFunc    func(ctx context.Context, clanID, partyID uuid.UUID, classes rosterdb.RecruitingClasses) error
	ListEventsFunc          func(ctx context.Context, clanID uuid.UUID) ([]*rosterdb.Event, error)
	CreateEventFunc         func(ctx context.Context, clanID uuid.UUID, req rosterservice.CreateEventRequest) (*rosterdb.Event, error)
	MarkAttendanceFunc      func(ctx context.Context, clanID, eventID, memberID uuid.UUID) error
	ClearAttendanceFunc     func(ctx context.Context, clanID, eventID, memberID uuid.UUID) error
}

func NewFakeRosterService() *FakeRosterService {
	return &FakeRosterService{trace: []string{}}
}

func (f *FakeRosterService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRosterService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRosterService) ListEnrichedMembers(ctx context.Context, clanID uuid.UUID) ([]*rosterservice.EnrichedMember, error) {
	f.record("ListEnrichedMembers")
	if f.ListEnrichedMembersFunc != nil {
		return f.ListEnrichedMembersFunc(ctx, clanID)
	}
	return []*rosterservice.EnrichedMember{}, nil
}

func (f *FakeRosterService) ListEnrichedParties(ctx context.Context, clanID uuid.UUID) ([]*rosterservice.EnrichedParty, error) {
	f.record("ListEnrichedParties")
	if f.ListEnrichedPartiesFunc != nil {
		return f.ListEnrichedPartiesFunc(ctx, clanID)
	}
	return []*rosterservice.EnrichedParty{}, nil
}

func (f *FakeRosterService) GetDashboardStats(ctx context.Context, clanID uuid.UUID) (*rosterservice.DashboardStats, error) {
	f.record("GetDashboardStats")
	if f.GetDashboardStatsFunc != nil {
		return f.GetDashboardStatsFunc(ctx, clanID)
	}
	return &rosterservice.DashboardStats{}, nil
}

func (f *FakeRosterService) ExportRoster(ctx context.Context, clanID uuid.UUID, w io.Writer) error {
	f.record("ExportRoster")
	if f.ExportRosterFunc != nil {
		return f.ExportRosterFunc(ctx, clanID, w)
	}
	return nil
}

func (f *FakeRosterService) AddMember(ctx context.Context, clanID uuid.UUID, req rosterservice.AddMemberRequest) (*rosterdb.Member, error) {
	f.record("AddMember")
	if f.AddMemberFunc != nil {
		return f.AddMemberFunc(ctx, clanID, req)
	}
	return &rosterdb.Member{ID: uuid.New(), ClanID: clanID}, nil
}

func (f *FakeRosterService) RemoveMember(ctx context.Context, clanID, memberID uuid.UUID) error {
	f.record("RemoveMember")
	if f.RemoveMemberFunc != nil {
		return f.RemoveMemberFunc(ctx, clanID, memberID)
	}
	return nil
}

func (f *FakeRosterService) AssignMemberParty(ctx context.Context, clanID, memberID uuid.UUID, partyID *uuid.UUID) error {
	f.record("AssignMemberParty")
	if f.AssignMemberPartyFunc != nil {
		return f.AssignMemberPartyFunc(ctx, clanID, memberID, partyID)
	}
	return nil
}

func (f *FakeRosterService) CreateParty(ctx context.Context, clanID uuid.UUID, req rosterservice.CreatePartyRequest) (*rosterdb.Party, error) {
	f.record("CreateParty")
	if f.CreatePartyFunc != nil {
		return f.CreatePartyFunc(ctx, clanID, req)
	}
	return &rosterdb.Party{ID: uuid.New(), ClanID: clanID, Name: req.Name}, nil
}

func (f *FakeRosterService) UpdatePartyNeeds(ctx context.Context, clanID, partyID uuid.UUID, classes rosterdb.RecruitingClasses) error {
	f.record("UpdatePartyNeeds")
	if f.UpdatePartyNeedsFunc != nil {
		return f.UpdatePartyNeedsFunc(ctx, clanID, partyID, classes)
	}
	return nil
}

func (f *FakeRosterService) ListEvents(ctx context.Context, clanID uuid.UUID) ([]*rosterdb.Event, error) {
	f.record("ListEvents")
	if f.ListEventsFunc != nil {
		return f.ListEventsFunc(ctx, clanID)
	}
	return []*rosterdb.Event{}, nil
}

func (f *FakeRosterService) CreateEvent(ctx context.Context, clanID uuid.UUID, req rosterservice.CreateEventRequest) (*rosterdb.Event, error) {
	f.record("CreateEvent")
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, clanID, req)
	}
	return &rosterdb.Event{ID: uuid.New(), ClanID: clanID, Name: req.Name}, nil
}

func (f *FakeRosterService) MarkAttendance(ctx context.Context, clanID, eventID, memberID uuid.UUID) error {
	f.record("MarkAttendance")
	if f.MarkAttendanceFunc != nil {
		return f.MarkAttendanceFunc(ctx, clanID, eventID, memberID)
	}
	return nil
}

func (f *FakeRosterService) ClearAttendance(ctx context.Context, clanID, eventID, memberID uuid.UUID) error {
	f.record("ClearAttendance")
	if f.ClearAttendanceFunc != nil {
		return f.ClearAttendanceFunc(ctx, clanID, eventID, memberID)
	}
	return nil
}

var _ rosterservice.Service = (*FakeRosterService)(nil)

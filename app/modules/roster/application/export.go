package rosterservice

import (
	"context"
	"fmt"
	"io"

	"github.com/Black-And-White-Club/clan-roster/app/observability"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	membersSheet = "Roster"
	partiesSheet = "Constant Parties"
)

var (
	memberHeader = []any{"In-Game Name", "Class", "Class Group", "Role", "Level", "Combat Power", "Constant Party", "Status", "Joined", "Attended", "Total Events", "Attendance %"}
	partyHeader  = []any{"Name", "Leader", "Members", "Total Power", "Avg Level", "Recruiting"}
)

// ExportRoster writes the enriched roster as an XLSX workbook, members in
// default sort order followed by a party summary sheet.
func (s *RosterService) ExportRoster(ctx context.Context, clanID uuid.UUID, w io.Writer) error {
	_, err := observability.Run(ctx, s.telemetry, "ExportRoster", clanID.String(), func(ctx context.Context) (struct{}, error) {
		members, err := s.enrichMembers(ctx, clanID)
		if err != nil {
			return struct{}{}, err
		}
		parties, err := s.enrichParties(ctx, clanID)
		if err != nil {
			return struct{}{}, err
		}
		DefaultSort().Sort(members)
		return struct{}{}, writeWorkbook(w, members, parties)
	})
	return err
}

func writeWorkbook(w io.Writer, members []*EnrichedMember, parties []*EnrichedParty) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), membersSheet); err != nil {
		return fmt.Errorf("failed to name roster sheet: %w", err)
	}
	if _, err := f.NewSheet(partiesSheet); err != nil {
		return fmt.Errorf("failed to add party sheet: %w", err)
	}

	rows := make([][]any, 0, len(members)+1)
	rows = append(rows, memberHeader)
	for _, m := range members {
		rows = append(rows, []any{
			m.InGameName,
			m.Class,
			m.ClassGroup,
			string(m.Role),
			m.Level,
			m.CombatPower,
			m.PartyName(),
			string(m.Status),
			m.JoinDate.Format("2006-01-02"),
			m.AttendedEvents,
			m.TotalEvents,
			int(m.AttendanceRate()*100 + 0.5),
		})
	}
	if err := writeRows(f, membersSheet, rows); err != nil {
		return err
	}

	rows = append(rows[:0], partyHeader)
	for _, p := range parties {
		rows = append(rows, []any{
			p.Name,
			p.LeaderName,
			len(p.Members),
			p.TotalPower(),
			p.AvgLevel(),
			p.RecruitingClasses.Display(),
		})
	}
	if err := writeRows(f, partiesSheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}

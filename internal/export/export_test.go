package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/planner"
	"github.com/julianstephens/studyweek/internal/scheduler"
)

func sampleData() Data {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	subjects := []models.Subject{
		{ID: "1", Name: "Algebra", TotalHours: 5, Priority: models.PriorityHigh, Deadline: "2025-06-05", Color: "#FF6B6B"},
		{ID: "2", Name: "Reading", TotalHours: 4, Priority: models.PriorityLow, Deadline: "2025-06-22", Color: "#4ECDC4"},
	}
	week := []models.Session{
		{ID: "a", SubjectID: "1", DayName: "Monday", Hours: 3, Status: models.SessionDone},
		{ID: "b", SubjectID: "1", DayName: "Monday", Hours: 2, Status: models.SessionPending},
		{ID: "c", SubjectID: "2", DayName: "Tuesday", Hours: 1.5, Status: models.SessionMissed},
	}

	days := make([]scheduler.DaySessions, planner.DaysPerWeek)
	for i, name := range planner.Days {
		days[i] = scheduler.DaySessions{Day: name}
	}
	for _, s := range week {
		i := planner.DayIndex(s.DayName)
		days[i].Sessions = append(days[i].Sessions, s)
	}

	byID := map[string]models.Subject{}
	for _, s := range subjects {
		byID[s.ID] = s
	}
	return Data{
		WeekStart: "2025-06-02",
		Timetable: days,
		Summary:   planner.WeeklySummary(week),
		Subjects:  byID,
		Report:    planner.ComputeProgress(subjects, week, week, monday),
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.xlsx")
	if err := WriteFile(path, sampleData()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != WeekSheet || sheets[1] != ProgressSheet {
		t.Fatalf("sheets = %v", sheets)
	}

	checks := []struct {
		sheet, ref, want string
	}{
		{WeekSheet, "A1", "Study week of 2025-06-02"},
		{WeekSheet, "A3", "Monday"},
		{WeekSheet, "B3", "5"},
		{WeekSheet, "C3", "1"},
		{WeekSheet, "F3", "Algebra 3.0h [done]"},
		{WeekSheet, "G3", "Algebra 2.0h [pending]"},
		{WeekSheet, "F4", "Reading 1.5h [missed]"},
		{WeekSheet, "A9", "Sunday"},
		{WeekSheet, "F2", "Block 1"},
		{ProgressSheet, "A1", "Subject"},
		{ProgressSheet, "A2", "Algebra"},
		{ProgressSheet, "B2", "high"},
		{ProgressSheet, "E2", "3"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.ref)
		if err != nil {
			t.Errorf("%s!%s: %v", c.sheet, c.ref, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.ref, got, c.want)
		}
	}

	rows, err := f.GetRows(ProgressSheet)
	if err != nil {
		t.Fatal(err)
	}
	var score string
	for _, r := range rows {
		if len(r) >= 2 && r[0] == "Productivity score" {
			score = r[1]
		}
	}
	// 3 of 9 hours done, one miss
	if score != "30" {
		t.Errorf("score cell = %q, want 30", score)
	}
}

func TestWrite_EmptyWeek(t *testing.T) {
	d := Data{WeekStart: "2025-06-02"}
	for _, name := range planner.Days {
		d.Timetable = append(d.Timetable, scheduler.DaySessions{Day: name})
	}
	d.Summary = planner.WeeklySummary(nil)

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue(WeekSheet, "A3"); v != "Monday" {
		t.Errorf("A3 = %q", v)
	}
}

func TestBlockLabel_UnknownSubject(t *testing.T) {
	got := BlockLabel(models.Session{SubjectID: "gone", Hours: 1.5, Status: models.SessionPending}, nil)
	if got != "gone 1.5h [pending]" {
		t.Errorf("BlockLabel = %q", got)
	}
}

// Package export writes the current week and progress to an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/studyweek/internal/models"
	"github.com/julianstephens/studyweek/internal/planner"
	"github.com/julianstephens/studyweek/internal/scheduler"
)

const (
	WeekSheet     = "Week"
	ProgressSheet = "Progress"
)

// fixed columns of the Week sheet before the blocks start
var weekHeader = []string{"Day", "Total (h)", "Done", "Missed", "Pending"}

var progressHeader = []string{
	"Subject", "Priority", "Deadline", "Total (h)", "Completed (h)",
	"Remaining (h)", "Days left", "Progress (%)", "Needed (h/day)",
}

// Data is everything one workbook shows.
type Data struct {
	WeekStart string
	Timetable []scheduler.DaySessions
	Summary   []planner.DaySummary
	Subjects  map[string]models.Subject
	Report    planner.Report
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// BlockLabel renders one session as it appears in a Week cell.
func BlockLabel(sess models.Session, subjects map[string]models.Subject) string {
	name := sess.SubjectID
	if sub, ok := subjects[sess.SubjectID]; ok && sub.Name != "" {
		name = sub.Name
	}
	return fmt.Sprintf("%s %.1fh [%s]", name, sess.Hours, sess.Status)
}

type builder struct {
	f      *excelize.File
	header int
	fills  map[string]int
}

func (b *builder) fill(color string) int {
	if color == "" {
		return 0
	}
	if id, ok := b.fills[color]; ok {
		return id
	}
	id, err := b.f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Border: []excelize.Border{{Type: "left", Color: "#FFFFFF", Style: 1}},
	})
	if err != nil {
		return 0
	}
	b.fills[color] = id
	return id
}

func (b *builder) headerRow(sheet string, row int, titles []string) {
	for i, t := range titles {
		b.f.SetCellValue(sheet, cell(colName(i), row), t)
	}
	b.f.SetCellStyle(sheet, cell("A", row), cell(colName(len(titles)-1), row), b.header)
}

func (b *builder) week(d Data) error {
	idx, err := b.f.NewSheet(WeekSheet)
	if err != nil {
		return err
	}
	b.f.SetActiveSheet(idx)

	maxBlocks := 0
	for _, day := range d.Timetable {
		maxBlocks = max(maxBlocks, len(day.Sessions))
	}
	lastCol := colName(len(weekHeader) + max(maxBlocks, 1) - 1)

	b.f.SetCellValue(WeekSheet, "A1", "Study week of "+d.WeekStart)
	b.f.MergeCell(WeekSheet, "A1", cell(lastCol, 1))
	b.f.SetCellStyle(WeekSheet, "A1", "A1", b.header)

	titles := append([]string{}, weekHeader...)
	for i := 0; i < maxBlocks; i++ {
		titles = append(titles, fmt.Sprintf("Block %d", i+1))
	}
	b.headerRow(WeekSheet, 2, titles)

	b.f.SetColWidth(WeekSheet, "A", "A", 12)
	b.f.SetColWidth(WeekSheet, "B", colName(len(weekHeader)-1), 10)
	if maxBlocks > 0 {
		b.f.SetColWidth(WeekSheet, colName(len(weekHeader)), lastCol, 26)
	}

	summary := make(map[string]planner.DaySummary, len(d.Summary))
	for _, s := range d.Summary {
		summary[s.Day] = s
	}

	for i, day := range d.Timetable {
		row := 3 + i
		s := summary[day.Day]
		b.f.SetCellValue(WeekSheet, cell("A", row), day.Day)
		b.f.SetCellValue(WeekSheet, cell("B", row), s.TotalHours)
		b.f.SetCellValue(WeekSheet, cell("C", row), s.Done)
		b.f.SetCellValue(WeekSheet, cell("D", row), s.Missed)
		b.f.SetCellValue(WeekSheet, cell("E", row), s.Pending)
		for j, sess := range day.Sessions {
			ref := cell(colName(len(weekHeader)+j), row)
			b.f.SetCellValue(WeekSheet, ref, BlockLabel(sess, d.Subjects))
			if style := b.fill(d.Subjects[sess.SubjectID].Color); style != 0 {
				b.f.SetCellStyle(WeekSheet, ref, ref, style)
			}
		}
	}
	return nil
}

func (b *builder) progress(d Data) error {
	if _, err := b.f.NewSheet(ProgressSheet); err != nil {
		return err
	}
	b.headerRow(ProgressSheet, 1, progressHeader)
	b.f.SetColWidth(ProgressSheet, "A", "A", 24)
	b.f.SetColWidth(ProgressSheet, "B", colName(len(progressHeader)-1), 14)

	row := 2
	for _, sp := range d.Report.Subjects {
		values := []any{
			sp.Subject.Name, sp.Subject.Priority.String(), sp.Subject.Deadline,
			sp.Subject.TotalHours, sp.CompletedHours, sp.RemainingHours,
			sp.DaysLeft, sp.Pct, sp.HoursPerDayNeeded,
		}
		for i, v := range values {
			b.f.SetCellValue(ProgressSheet, cell(colName(i), row), v)
		}
		if style := b.fill(sp.Subject.Color); style != 0 {
			b.f.SetCellStyle(ProgressSheet, cell("A", row), cell("A", row), style)
		}
		row++
	}

	row++
	totals := [][2]any{
		{"Productivity score", d.Report.Score},
		{"Total hours", d.Report.TotalHours},
		{"Completed hours", d.Report.CompletedHours},
		{"Done sessions", d.Report.DoneCount},
		{"Missed sessions", d.Report.MissedCount},
	}
	for _, kv := range totals {
		b.f.SetCellValue(ProgressSheet, cell("A", row), kv[0])
		b.f.SetCellValue(ProgressSheet, cell("B", row), kv[1])
		row++
	}

	names := make([]string, 0, len(d.Report.PriorityOrder))
	for _, id := range d.Report.PriorityOrder {
		if sub, ok := d.Subjects[id]; ok {
			names = append(names, sub.Name)
		} else {
			names = append(names, id)
		}
	}
	b.f.SetCellValue(ProgressSheet, cell("A", row), "Priority order")
	b.f.SetCellValue(ProgressSheet, cell("B", row), strings.Join(names, ", "))
	return nil
}

func build(d Data) (*excelize.File, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	b := &builder{f: f, header: header, fills: map[string]int{}}
	if err := b.week(d); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to build week sheet: %w", err)
	}
	if err := b.progress(d); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to build progress sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, d Data) error {
	f, err := build(d)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// WriteFile saves the workbook at path.
func WriteFile(path string, d Data) error {
	f, err := build(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"time"

	"intervyo-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	milestoneSheet = "Milestones"
	practiceSheet  = "Daily Practice"
	dateFormat     = "2006-01-02"
)

var milestoneHeaders = []string{"MILESTONE", "DESCRIPTION", "TARGET DATE", "STATUS", "COMPLETED AT"}
var practiceHeaders = []string{"DATE", "RECOMMENDATIONS", "STATUS", "PRACTICES DONE"}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9]+`)

func exportFilename(calendar *domain.PreparationCalendar, now time.Time, ext string) string {
	company := strings.Trim(unsafeFilename.ReplaceAllString(calendar.TargetCompany, "_"), "_")
	if company == "" {
		company = "interview"
	}
	return fmt.Sprintf("prep_plan_%s_%s.%s", strings.ToLower(company), now.Format("20060102_150405"), ext)
}

func milestoneRow(m domain.Milestone) []string {
	status, completedAt := "PENDING", ""
	if m.Completed {
		status = "DONE"
	}
	if m.CompletedAt != nil {
		completedAt = m.CompletedAt.Format(dateFormat)
	}
	return []string{m.Title, m.Description, m.TargetDate.Format(dateFormat), status, completedAt}
}

func practiceRow(p domain.DailyPractice) []string {
	status := "OPEN"
	if p.Completed {
		status = "DONE"
	}
	return []string{
		p.Date.Format(dateFormat),
		strings.Join(p.Recommendations, "\n"),
		status,
		strings.Join(p.PracticesDone, "\n"),
	}
}

// exportCalendarExcel writes milestones and daily practice on separate sheets
func exportCalendarExcel(calendar *domain.PreparationCalendar, now time.Time) (*domain.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", milestoneSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(practiceSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	// Header style - dark blue background with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	rows := make([][]string, 0, len(calendar.Milestones))
	for _, m := range calendar.Milestones {
		rows = append(rows, milestoneRow(m))
	}
	writeSheet(f, milestoneSheet, milestoneHeaders, rows, headerStyle, wrapStyle)

	rows = make([][]string, 0, len(calendar.DailyPractice))
	for _, p := range calendar.DailyPractice {
		rows = append(rows, practiceRow(p))
	}
	writeSheet(f, practiceSheet, practiceHeaders, rows, headerStyle, wrapStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return &domain.ExportFile{
		Filename:    exportFilename(calendar, now, domain.ExportXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, headerStyle, bodyStyle int) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
	if len(rows) > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		f.SetCellStyle(sheet, "A2", lastCell, bodyStyle)
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, colName, colName, 30)
	}
}

// exportCalendarCSV flattens the plan into one table with a section column
func exportCalendarCSV(calendar *domain.PreparationCalendar, now time.Time) (*domain.ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"SECTION", "TITLE", "DETAILS", "DATE", "STATUS", "NOTES"}}
	for _, m := range calendar.Milestones {
		r := milestoneRow(m)
		records = append(records, []string{"milestone", r[0], r[1], r[2], r[3], r[4]})
	}
	for _, p := range calendar.DailyPractice {
		r := practiceRow(p)
		records = append(records, []string{"practice", "Daily practice", strings.Join(p.Recommendations, "; "), r[0], r[2], strings.Join(p.PracticesDone, "; ")})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &domain.ExportFile{
		Filename:    exportFilename(calendar, now, domain.ExportCSV),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

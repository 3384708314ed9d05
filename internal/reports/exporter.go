package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// RosterExporter renders a roster in one of the export formats.
type RosterExporter interface {
	Export(format string, roster Roster) ([]byte, string, string, error)
}

type rosterExporter struct{}

func NewRosterExporter() RosterExporter {
	return &rosterExporter{}
}

var rosterHeaders = []string{"Name", "Email", "Status", "Organizer", "Wishlist", "Joined At"}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

func rosterFilename(r Roster, ext string) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(r.EventName), "_"), "_")
	if slug == "" {
		slug = "event"
	}
	return fmt.Sprintf("%s_roster.%s", slug, ext)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func (r RosterRow) record() []string {
	return []string{r.Name, r.Email, r.Status, yesNo(r.IsOrganizer), r.Wishlist, r.JoinedAt.Format("2006-01-02 15:04:05")}
}

func (e *rosterExporter) Export(format string, roster Roster) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportExcel(roster)
		return data, rosterFilename(roster, "xlsx"), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatPDF:
		data, err := e.exportPDF(roster)
		return data, rosterFilename(roster, "pdf"), "application/pdf", err
	case FormatCSV:
		data, err := e.exportCSV(roster)
		return data, rosterFilename(roster, "csv"), "text/csv", err
	default:
		return nil, "", "", ErrUnsupportedFormat
	}
}

func (e *rosterExporter) exportExcel(roster Roster) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for rIdx, r := range roster.Rows {
		for cIdx, v := range r.record() {
			cell, _ := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	f.SetColWidth(sheet, "A", "B", 28)
	f.SetColWidth(sheet, "E", "E", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *rosterExporter) exportPDF(roster Roster) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	// Core fonts are cp1252; translate so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(roster.EventName+" - Participants"))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Date: %s   Join code: %s   Drawn: %s", roster.EventDate, roster.JoinCode, yesNo(roster.IsDrawn))))
	pdf.Ln(10)

	widths := []float64{45, 60, 25, 25, 80, 40}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range rosterHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range roster.Rows {
		for i, v := range r.record() {
			align := "L"
			if i == 2 || i == 3 || i == 5 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, tr(truncate(v, 48)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *rosterExporter) exportCSV(roster Roster) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(rosterHeaders); err != nil {
		return nil, err
	}
	for _, r := range roster.Rows {
		if err := writer.Write(r.record()); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"fleetlog/internal/domain"
	"fleetlog/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders salary statements as PDF.
type DocsService struct {
	Salary    SalaryService
	RequestID string
	// Loader replaces the salary lookup in tests.
	Loader func(context.Context, SalaryQuery) (SalaryReport, error)
}

// SalaryStatement returns the PDF bytes and a download filename for q.
func (s DocsService) SalaryStatement(ctx context.Context, q SalaryQuery) ([]byte, string, error) {
	load := s.Loader
	if load == nil {
		load = s.Salary.Calculate
	}
	rep, err := load(ctx, q)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "salary_pdf", "salary statement generated")
	return buildSalaryPDF(rep, time.Now())
}

func buildSalaryPDF(rep SalaryReport, printed time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "SALARY STATEMENT")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Month   : %s", safe(MonthLabel(rep.Month), "-")),
		fmt.Sprintf("Period  : %s to %s", safe(rep.Start, "-"), safe(rep.End, "-")),
		fmt.Sprintf("Driver  : %s", safe(rep.Driver, "All drivers")),
		fmt.Sprintf("Printed : %s", printed.Format("2006-01-02 15:04")),
	}
	for _, l := range header {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Date", 24, "L"},
		{"Driver", 38, "L"},
		{"Route", 40, "L"},
		{"Type", 22, "L"},
		{"Km", 14, "R"},
		{"Plate", 26, "L"},
		{"Pay", 26, "R"},
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 230, 241)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range rep.Lines {
		values := []string{
			l.Date,
			clip(l.Driver, 22),
			clip(strings.TrimSpace(l.RouteCode+" "+l.RouteName), 24),
			l.Category.Label(),
			utils.FormatNumber(l.Distance),
			clip(l.Plates, 15),
			utils.FormatMoney(l.Pay),
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, 6, values[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(rep.Lines) == 0 {
		pdf.CellFormat(190, 6, "No trips recorded for this period.", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	if len(rep.Drivers) > 1 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Per driver")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		for _, d := range rep.Drivers {
			pdf.Cell(0, 6, fmt.Sprintf("%-24s %3d trips   %s", clip(d.Driver, 24), d.Trips, utils.FormatMoney(d.Total)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s pay      : %s", domain.CategoryStandard.Label(), utils.FormatMoney(rep.StandardTotal)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("%s pay : %s", domain.CategoryReinforcement.Label(), utils.FormatMoney(rep.ReinforcementTotal)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(rep.GrandTotal))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Standard routes pay the monthly rate divided by 30 per trip. Reinforcement routes pay 1,100 per km.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	name := "SALARY_" + utils.SafeFilenamePart(rep.Month)
	if rep.Driver != "" {
		name += "_" + utils.SafeFilenamePart(rep.Driver)
	}
	return buf.Bytes(), name + ".pdf", nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

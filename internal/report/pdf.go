package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/scheduler"
)

var pdfColumns = []struct {
	header string
	width  float64
}{
	{"Bid", 25},
	{"Project", 60},
	{"Detail", 105},
}

// WritePDF renders the daily action report as an A4 document with one table
// per non-empty section.
func WritePDF(w io.Writer, plan scheduler.DailyPlan) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetCreationDate(plan.GeneratedAt)
	pdf.SetTitle("Daily Action Report", false)
	pdf.SetCreator(constants.AppName+" "+constants.Version, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	title := "DAILY ACTION REPORT - " + plan.GeneratedAt.Format(constants.LongDateFormat)
	pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	if plan.Empty() {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, 8, "All clear - no actions due today.", "", 1, "C", false, 0, "")
	}

	for _, s := range Sections(plan) {
		if len(s.Items) == 0 {
			continue
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s (%d)", s.Title, len(s.Items)), "", 1, "", false, 0, "")

		pdf.SetFont("Arial", "B", 10)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 8, col.header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, item := range s.Items {
			cells := []string{"#" + item.Bid.ID, item.Bid.Project, item.Detail}
			for i, col := range pdfColumns {
				pdf.CellFormat(col.width, 7, tr(fit(pdf, cells[i], col.width)), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// fit truncates s so it stays inside a cell of the given width.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	const pad = 2
	if pdf.GetStringWidth(s) <= width-pad {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-pad {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

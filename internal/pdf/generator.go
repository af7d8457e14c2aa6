package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/checkbook-insights/internal/model"
)

const (
	fontName   = "Helvetica"
	pageWidth  = 180.0
	chartRatio = 0.6
	maxRows    = 10
)

type Generator struct {
	maxRows int
}

func NewGenerator() (*Generator, error) {
	return &Generator{maxRows: maxRows}, nil
}

// Generate renders the static report: a cover page with the headline figures
// and one page per business question with its chart and key figures.
func (g *Generator) Generate(doc model.ReportDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFillColor(230, 236, 245)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontName, "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(fontName, "B", 18)
	pdf.MultiCell(0, 10, tr(safeValue(doc.Title)), "", "C", false)
	pdf.SetFont(fontName, "", 12)
	pdf.MultiCell(0, 7, tr(safeValue(doc.Subtitle)), "", "C", false)
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated %s", formatDate(doc.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	addSummaryBlock(pdf, doc.Insights.Summary)
	pdf.Ln(6)
	addContents(pdf, tr)

	for _, view := range model.Views() {
		if !view.Report {
			continue
		}
		pdf.AddPage()
		pdf.SetFont(fontName, "B", 14)
		pdf.MultiCell(0, 8, tr(view.Title), "", "L", false)
		if view.Question != "" {
			pdf.SetFont(fontName, "I", 10)
			pdf.MultiCell(0, 6, tr(view.Question), "", "L", false)
		}
		pdf.Ln(2)

		if png, ok := doc.Charts[view.Name]; ok && len(png) > 0 {
			opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
			pdf.RegisterImageOptionsReader(view.Name, opts, bytes.NewReader(png))
			pdf.ImageOptions(view.Name, pdf.GetX(), pdf.GetY(), pageWidth, pageWidth*chartRatio, true, opts, 0, "")
			pdf.Ln(4)
		}

		table := keyFigures(view.Name, doc.Insights, g.maxRows)
		if len(table.rows) == 0 {
			pdf.SetFont(fontName, "", 10)
			pdf.CellFormat(0, 6, "No qualifying data.", "", 1, "L", false, 0, "")
			continue
		}
		pdf.SetFont(fontName, "B", 11)
		pdf.CellFormat(0, 7, "Key figures", "", 1, "L", false, 0, "")
		drawTableRow(pdf, table.headers, table.widths, true, tr)
		for _, row := range table.rows {
			drawTableRow(pdf, row, table.widths, false, tr)
		}
		if pdf.Err() {
			return nil, pdf.Error()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addSummaryBlock(pdf *gofpdf.Fpdf, s model.Summary) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Key figures", "", 1, "L", false, 0, "")
	rows := [][]string{
		{"Total vendors", fmt.Sprintf("%d", s.TotalVendors)},
		{"Average SDO commitment", formatPercent(s.MeanCommitment)},
		{"Procurement categories", fmt.Sprintf("%d", s.Categories)},
		{"IT sector vendors", fmt.Sprintf("%d", s.ITVendors)},
		{"Industries", fmt.Sprintf("%d", s.Industries)},
		{"Vendor records", fmt.Sprintf("%d", s.VendorRecords)},
		{"Categorized company records", fmt.Sprintf("%d", s.CategorizedRecords)},
	}
	widths := []float64{90, 50}
	for _, row := range rows {
		drawTableRow(pdf, row, widths, false, nil)
	}
}

func addContents(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Contents", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, view := range model.Views() {
		if view.Report {
			pdf.CellFormat(0, 6, tr(view.Title), "", 1, "L", false, 0, "")
		}
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool, tr func(string) string) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		text := truncate(safeValue(col), widths[i])
		if tr != nil {
			text = tr(text)
		}
		pdf.CellFormat(widths[i], 7, text, "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

// truncate keeps a cell on one line, assuming roughly 2mm per character at 9pt.
func truncate(value string, width float64) string {
	limit := int(width / 2)
	runes := []rune(value)
	if limit < 4 || len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, value)
}

func formatPercent(value float64) string {
	return formatAmount(value*100, 1) + "%"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}

package services

import (
	"bytes"
	"fmt"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/models"
	"github.com/phpdave11/gofpdf"
)

// Company details printed on every quotation.
var CompanyLines = []string{
	"Netrik Techworks",
	"Professional IT Services",
	"Malaysia",
	"Phone: +60 12-495 3622",
	"Email: info@netriktechworks.com",
}

const pdfDateLayout = "02/01/2006"

// QuotationFileName is the name a quotation's PDF is stored under.
func QuotationFileName(q *models.Quotation) string {
	return fmt.Sprintf("quotation_%s.pdf", q.QuoteNumber)
}

// RenderQuotationPDF lays q out on A4 pages. The output depends only on q:
// rendering the same quotation twice yields identical bytes.
func RenderQuotationPDF(q *models.Quotation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetCreationDate(q.CreatedAt)
	pdf.SetModificationDate(q.CreatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Quotation "+q.QuoteNumber, true)
	pdf.SetAuthor(CompanyLines[0], true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(contentWidth, 14, "QUOTATION", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Company block on the left, quote metadata on the right
	half := contentWidth / 2
	top := pdf.GetY()
	pdf.SetTextColor(0, 0, 0)
	for i, line := range CompanyLines {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 12)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(half, 6, tr(line), "", 1, "L", false, 0, "")
	}
	companyBottom := pdf.GetY()

	meta := [][2]string{
		{"Quote #:", q.QuoteNumber},
		{"Date:", q.CreatedAt.Format(pdfDateLayout)},
		{"Valid Until:", q.ValidUntil.Format(pdfDateLayout)},
	}
	pdf.SetY(top)
	for _, row := range meta {
		pdf.SetX(left + half)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(half/2, 6, row[0], "", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(half/2, 6, tr(row[1]), "", 1, "R", false, 0, "")
	}
	if pdf.GetY() < companyBottom {
		pdf.SetY(companyBottom)
	}
	pdf.Ln(8)

	// Bill To
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 7, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, 6, tr(q.ClientName), "", 1, "L", false, 0, "")
	if q.ClientAddress != "" {
		pdf.MultiCell(contentWidth, 6, tr(q.ClientAddress), "", "L", false)
	}
	pdf.CellFormat(contentWidth, 6, tr("Phone: "+q.ClientPhone), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 6, tr("Email: "+q.ClientEmail), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Items
	widths := []float64{contentWidth * 0.5, contentWidth * 0.1, contentWidth * 0.2, contentWidth * 0.2}
	headers := []string{"Description", "Qty", "Unit Price (RM)", "Total (RM)"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(30, 64, 175)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range q.Items {
		pdf.CellFormat(widths[0], 7, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}

	// Totals
	labelWidth := widths[0] + widths[1] + widths[2]
	totals := [][2]string{
		{"Subtotal:", fmt.Sprintf("%.2f", q.Subtotal)},
		{fmt.Sprintf("GST (%g%%):", q.TaxRate*100), fmt.Sprintf("%.2f", q.TaxAmount)},
		{"Total:", fmt.Sprintf("%.2f", q.TotalAmount)},
	}
	for i, row := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelWidth, 7, row[0], "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, row[1], "1", 1, "R", false, 0, "")
	}

	if q.Notes != nil && *q.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentWidth, 7, "Notes:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentWidth, 6, tr(*q.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.NewRenderError("quotation "+q.QuoteNumber, err)
	}
	return buf.Bytes(), nil
}

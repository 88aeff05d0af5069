package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Renderer turns a Document into a downloadable file.
type Renderer interface {
	Render(doc Document) (*File, error)
}

// PDFRenderer renders invoices as A4 PDF documents.
type PDFRenderer struct {
	Company string
	Address string
	Support string
}

// NewPDFRenderer creates renderer with storefront footer details.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		Company: "E-Shop Pvt. Ltd.",
		Address: "123 Market Street, Delhi, India",
		Support: "support@eshop.com",
	}
}

const (
	pageWidth  = 180.0
	lineHeight = 7.0
)

// Render draws doc. Output is stable for equal documents.
func (r *PDFRenderer) Render(doc Document) (*File, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(doc.issuedAt())
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Invoice "+doc.Number, true)
	pdf.SetAuthor(r.Company, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(79, 70, 229)
	pdf.CellFormat(pageWidth, 12, "E-Shop Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(pageWidth, lineHeight, "Invoice ID: "+doc.Number, "", 1, "L", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, "Date: "+doc.Date, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(pageWidth, lineHeight, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(pageWidth, lineHeight, tr("Name: "+doc.BillTo.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, tr("Email: "+doc.BillTo.Email), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(pageWidth, lineHeight, "Order Details", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	widths := []float64{10, 80, 20, 35, 35}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(243, 244, 246)
	for i, heading := range []string{"#", "Product", "Qty", "Unit price", "Line total"} {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], lineHeight, heading, "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for i, line := range doc.Lines {
		pdf.CellFormat(widths[0], lineHeight, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], lineHeight, tr(line.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], lineHeight, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], lineHeight, money(line.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], lineHeight, money(line.Total), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(pageWidth, lineHeight, "Total Amount: "+money(doc.Total), "", 1, "R", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, "Status: "+string(doc.Status), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(85, 85, 85)
	pdf.CellFormat(pageWidth, lineHeight, "Seller: "+r.Company, "", 1, "C", false, 0, "")
	if doc.Seller.Name != notAvailable {
		pdf.CellFormat(pageWidth, lineHeight, tr("Sold by: "+doc.Seller.Name), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(pageWidth, lineHeight, "Address: "+r.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(pageWidth, lineHeight, "Email: "+r.Support, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}

	return &File{
		Name:        FileName(doc.OrderID),
		ContentType: ContentType,
		Data:        buf.Bytes(),
	}, nil
}

func money(v float64) string {
	return fmt.Sprintf("INR %.2f", v)
}

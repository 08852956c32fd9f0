package assets

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mesalista/backend/internal/model"
)

// Renderer produces the bytes whose CID gets bound to a customer.
type Renderer interface {
	CustomerReport(c model.Customer) ([]byte, error)
}

// PDFRenderer renders the one-page customer report.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

var _ Renderer = (*PDFRenderer)(nil)

func (r *PDFRenderer) CustomerReport(c model.Customer) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(230, 126, 34)
	pdf.CellFormat(0, 12, "MesaLista - Customer Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(170, 170, 170)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Customer details:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Customer ID: %d", c.ID),
		fmt.Sprintf("Full name: %s", c.Name),
		fmt.Sprintf("Phone: %s", c.Phone),
		fmt.Sprintf("Email: %s", c.Email),
	} {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	// footer
	pdf.Ln(20)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "Document generated and pinned to IPFS.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued: %s", time.Now().Format(time.RFC1123)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render customer report: %w", err)
	}
	return buf.Bytes(), nil
}

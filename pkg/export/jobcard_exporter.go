package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// JobCard carries the fully resolved fields rendered onto a customer job card.
type JobCard struct {
	JobNumber      int
	CustomerName   string
	CustomerEmail  string
	NIC            string
	Mobile         string
	TechnicianName string
	Description    string
	Status         string
	CreatedAt      time.Time
}

// JobCardExporter renders a job card into a branded A4 PDF.
type JobCardExporter struct {
	companyName string
	tagline     string
	contactLine string
}

// NewJobCardExporter constructs a job card exporter with company branding.
func NewJobCardExporter(companyName, tagline, contactLine string) *JobCardExporter {
	if companyName == "" {
		companyName = "Vijaya Electrics"
	}
	if tagline == "" {
		tagline = "Reliable Electrical & Electronic Repair Services"
	}
	if contactLine == "" {
		contactLine = "Hotline: +94 77 123 4567 | support@vijayaelectrics.lk"
	}
	return &JobCardExporter{companyName: companyName, tagline: tagline, contactLine: contactLine}
}

// Render produces the PDF bytes for a job card.
func (e *JobCardExporter) Render(card JobCard) ([]byte, error) {
	if card.JobNumber <= 0 {
		return nil, fmt.Errorf("job card requires a job number")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Branding header.
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 87, 184)
	pdf.CellFormat(0, 12, e.companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 6, e.tagline, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(255, 165, 0)
	pdf.CellFormat(0, 5, e.contactLine, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(255, 165, 0)
	pdf.SetLineWidth(0.8)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 87, 184)
	pdf.CellFormat(0, 10, "Customer Job Card", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Two-column detail block: customer on the left, technician on the right.
	startY := pdf.GetY()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(20, startY)
	pdf.CellFormat(85, 6, "Customer Details", "", 2, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(85, 6, fmt.Sprintf("Name: %s", card.CustomerName), "", 2, "", false, 0, "")
	pdf.CellFormat(85, 6, fmt.Sprintf("Email: %s", card.CustomerEmail), "", 2, "", false, 0, "")
	pdf.CellFormat(85, 6, fmt.Sprintf("NIC: %s", card.NIC), "", 2, "", false, 0, "")
	pdf.CellFormat(85, 6, fmt.Sprintf("Mobile: %s", card.Mobile), "", 2, "", false, 0, "")
	leftEndY := pdf.GetY()

	pdf.SetXY(110, startY)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 6, "Technician Details", "", 2, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(80, 6, fmt.Sprintf("Technician: %s", card.TechnicianName), "", 2, "", false, 0, "")
	pdf.MultiCell(80, 6, fmt.Sprintf("Description: %s", card.Description), "", "", false)
	rightEndY := pdf.GetY()

	if leftEndY > rightEndY {
		pdf.SetY(leftEndY)
	} else {
		pdf.SetY(rightEndY)
	}
	pdf.Ln(6)

	pdf.SetDrawColor(224, 224, 224)
	pdf.SetLineWidth(0.3)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	status := card.Status
	if status == "" {
		status = "Pending"
	}
	pdf.SetX(20)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 87, 184)
	pdf.CellFormat(30, 8, "Job Status:", "", 0, "", false, 0, "")
	pdf.SetTextColor(255, 165, 0)
	pdf.CellFormat(0, 8, status, "", 1, "", false, 0, "")
	pdf.Ln(6)

	created := card.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetX(20)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 6, fmt.Sprintf("Job Number: %d", card.JobNumber), "", 1, "", false, 0, "")
	pdf.SetX(20)
	pdf.CellFormat(0, 6, fmt.Sprintf("Created On: %s", created.Format("2006-01-02 15:04")), "", 1, "", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(0, 87, 184)
	pdf.MultiCell(0, 6, fmt.Sprintf("Thank you for choosing %s. We care about your trust and satisfaction.", e.companyName), "", "C", false)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(0, 5, "This is a system-generated document. No signature required.", "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render job card pdf: %w", err)
	}
	return buf.Bytes(), nil
}

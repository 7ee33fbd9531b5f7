package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	reportapimodels "finance-flow-backend/models/api/report"
	dbmodels "finance-flow-backend/models/db"
)

// GenerateSummaryReport renders the spend summary as a printable PDF.
func GenerateSummaryReport(report reportapimodels.SummaryReport, generatedAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateSummaryReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Payment requests summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at %s", generatedAt.Format("02.01.2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total requests: %d", report.TotalRequests), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total amount: %.2f", report.TotalAmount), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSection(pdf, "By status")
	for _, row := range report.ByStatus {
		writeRow(pdf, string(row.Status), row.Count, row.Total)
	}
	pdf.Ln(4)

	writeSection(pdf, "By department")
	for _, row := range report.ByDepartment {
		writeRow(pdf, row.Department, row.Count, row.Total)
	}
	pdf.Ln(4)

	writeSection(pdf, "By payment type")
	for _, row := range report.ByPaymentType {
		writeRow(pdf, string(row.PaymentType), row.Count, row.Total)
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateRequestSheet renders a single payment request with its approval
// trail as a printable PDF.
func GenerateRequestSheet(rec dbmodels.FinanceRequest, actions []dbmodels.ApprovalActionRecord, generatedAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateRequestSheet panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Payment request %s", rec.ReferenceNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at %s", generatedAt.Format("02.01.2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	requestor := ""
	if rec.Requestor != nil {
		requestor = rec.Requestor.GetFullName()
	}
	writeSection(pdf, "Request")
	writeField(pdf, "Status", string(rec.Status))
	writeField(pdf, "Requestor", requestor)
	writeField(pdf, "Department", rec.Department)
	writeField(pdf, "Vendor", rec.VendorName)
	writeField(pdf, "Payment type", string(rec.PaymentType))
	writeField(pdf, "Description", rec.Description)
	if rec.SubmittedAt != nil {
		writeField(pdf, "Submitted", rec.SubmittedAt.Format("02.01.2006 15:04"))
	}
	pdf.Ln(4)

	writeSection(pdf, "Amounts")
	writeField(pdf, "Base amount", fmt.Sprintf("%.2f %s", rec.BaseAmount, rec.Currency))
	if rec.GstApplicable {
		writeField(pdf, fmt.Sprintf("GST (%.2f%%)", rec.GstPercentage), fmt.Sprintf("%.2f %s", rec.GstAmount, rec.Currency))
	}
	if rec.TdsApplicable {
		writeField(pdf, fmt.Sprintf("TDS (%.2f%%)", rec.TdsPercentage), fmt.Sprintf("-%.2f %s", rec.TdsAmount, rec.Currency))
	}
	writeField(pdf, "Total payable", fmt.Sprintf("%.2f %s", rec.TotalAmount, rec.Currency))
	pdf.Ln(4)

	writeSection(pdf, "Approval trail")
	if len(actions) == 0 {
		pdf.CellFormat(0, 7, "No decisions recorded", "", 1, "L", false, 0, "")
	}
	for _, action := range actions {
		actor := ""
		if action.Actor != nil {
			actor = action.Actor.GetFullName()
		}
		label := string(action.Action)
		if action.IsOverride {
			label += " (override)"
		}
		pdf.CellFormat(45, 7, action.CreatedAt.Format("02.01.2006 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, actor, "", 1, "L", false, 0, "")
		if action.Comments != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 6, action.Comments, "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, name, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(50, 7, name, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 7, value, "", "L", false)
}

func writeSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func writeRow(pdf *fpdf.Fpdf, name string, count int64, total float64) {
	if name == "" {
		name = "-"
	}
	pdf.CellFormat(90, 7, name, "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%d", count), "", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", total), "", 1, "R", false, 0, "")
}

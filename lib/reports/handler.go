package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"finance-flow-backend/db"
	pdfexport "finance-flow-backend/lib/export/pdf"
	xlsexport "finance-flow-backend/lib/export/xls"
	"finance-flow-backend/lib/money"
	reportstore "finance-flow-backend/lib/reports/store"
	reportapimodels "finance-flow-backend/models/api/report"
)

type Provider interface {
	Summary(filter reportapimodels.ReportFilter) (report reportapimodels.SummaryReport, err error)
	SLA(filter reportapimodels.ReportFilter) (report reportapimodels.SLAReport, err error)
	ExportRequestsCSV(filter reportapimodels.ReportFilter) (*bytes.Buffer, error)
	ExportRequestsXLS(filter reportapimodels.ReportFilter) (*bytes.Buffer, error)
	ExportSummaryPDF(filter reportapimodels.ReportFilter) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: reportstore.NewInstance(db.DB),
	}
}

type impl struct {
	store reportstore.Provider
}

func (i impl) Summary(filter reportapimodels.ReportFilter) (reportapimodels.SummaryReport, error) {
	report := reportapimodels.SummaryReport{}
	count, total, err := i.store.Totals(filter)
	if err != nil {
		return report, errors.Wrap(err, "failed to compute report totals")
	}
	report.TotalRequests = count
	report.TotalAmount = money.Round2(total)
	report.ByStatus, err = i.store.ByStatus(filter)
	if err != nil {
		return report, errors.Wrap(err, "failed to group by status")
	}
	report.ByDepartment, err = i.store.ByDepartment(filter)
	if err != nil {
		return report, errors.Wrap(err, "failed to group by department")
	}
	report.ByPaymentType, err = i.store.ByPaymentType(filter)
	if err != nil {
		return report, errors.Wrap(err, "failed to group by payment type")
	}
	return report, nil
}

func (i impl) SLA(filter reportapimodels.ReportFilter) (reportapimodels.SLAReport, error) {
	rows, err := i.store.SLAByLevel(filter)
	if err != nil {
		return reportapimodels.SLAReport{}, errors.Wrap(err, "failed to group SLA stats by level")
	}
	for idx := range rows {
		if rows[idx].TotalSteps > 0 {
			compliant := rows[idx].TotalSteps - rows[idx].BreachedSteps
			rows[idx].CompliancePct = money.Round2(float64(compliant) * 100 / float64(rows[idx].TotalSteps))
		}
	}
	return reportapimodels.SLAReport{ByLevel: rows}, nil
}

var csvHeaders = []string{"reference", "requestor", "department", "vendor", "payment_type", "base_amount", "gst_amount", "tds_amount", "total_amount", "currency", "status", "submitted_at"}

func (i impl) ExportRequestsCSV(filter reportapimodels.ReportFilter) (*bytes.Buffer, error) {
	list, err := i.store.ListForExport(filter)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	if err = writer.Write(csvHeaders); err != nil {
		return nil, err
	}
	for _, item := range list {
		requestor := ""
		if item.Requestor != nil {
			requestor = item.Requestor.GetFullName()
		}
		submitted := ""
		if item.SubmittedAt != nil {
			submitted = item.SubmittedAt.Format(time.RFC3339)
		}
		record := []string{
			item.ReferenceNumber,
			requestor,
			item.Department,
			item.VendorName,
			string(item.PaymentType),
			fmt.Sprintf("%.2f", item.BaseAmount),
			fmt.Sprintf("%.2f", item.GstAmount),
			fmt.Sprintf("%.2f", item.TdsAmount),
			fmt.Sprintf("%.2f", item.TotalAmount),
			item.Currency,
			string(item.Status),
			submitted,
		}
		if err = writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}

func (i impl) ExportRequestsXLS(filter reportapimodels.ReportFilter) (*bytes.Buffer, error) {
	list, err := i.store.ListForExport(filter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportRequestList(list)
}

func (i impl) ExportSummaryPDF(filter reportapimodels.ReportFilter) ([]byte, error) {
	report, err := i.Summary(filter)
	if err != nil {
		return nil, err
	}
	return pdfexport.GenerateSummaryReport(report, time.Now())
}

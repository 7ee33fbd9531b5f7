package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	ExportRequestList(list []dbmodels.FinanceRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var requestHeaders = []string{"Reference", "Requestor", "Department", "Vendor", "Payment type", "Base amount", "GST", "TDS", "Total", "Currency", "Status", "Submitted"}

func (i impl) ExportRequestList(list []dbmodels.FinanceRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, requestHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		row, err = writeRequestData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Payment requests")
	return f.WriteToBuffer()
}

func writeRequestData(f *excelize.File, sheet string, list []dbmodels.FinanceRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Reference"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ReferenceNumber); err != nil {
			return row, err
		}

		// "Requestor"
		col++
		if item.Requestor != nil {
			if err := writeColumn(f, sheet, col, row, item.Requestor.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Department"
		col++
		if err := writeColumn(f, sheet, col, row, item.Department); err != nil {
			return row, err
		}

		// "Vendor"
		col++
		if err := writeColumn(f, sheet, col, row, item.VendorName); err != nil {
			return row, err
		}

		// "Payment type"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.PaymentType)); err != nil {
			return row, err
		}

		// "Base amount"
		col++
		if err := writeColumn(f, sheet, col, row, item.BaseAmount); err != nil {
			return row, err
		}

		// "GST"
		col++
		if err := writeColumn(f, sheet, col, row, item.GstAmount); err != nil {
			return row, err
		}

		// "TDS"
		col++
		if err := writeColumn(f, sheet, col, row, item.TdsAmount); err != nil {
			return row, err
		}

		// "Total"
		col++
		if err := writeColumn(f, sheet, col, row, item.TotalAmount); err != nil {
			return row, err
		}

		// "Currency"
		col++
		if err := writeColumn(f, sheet, col, row, item.Currency); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Submitted"
		col++
		if item.SubmittedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.SubmittedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

package reportstore

import (
	"gorm.io/gorm"

	reportapimodels "finance-flow-backend/models/api/report"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Totals(filter reportapimodels.ReportFilter) (count int64, total float64, err error)
	ByStatus(filter reportapimodels.ReportFilter) (list []reportapimodels.StatusCount, err error)
	ByDepartment(filter reportapimodels.ReportFilter) (list []reportapimodels.DepartmentTotal, err error)
	ByPaymentType(filter reportapimodels.ReportFilter) (list []reportapimodels.PaymentTypeTotal, err error)
	SLAByLevel(filter reportapimodels.ReportFilter) (list []reportapimodels.SLALevelRow, err error)
	// ListForExport returns all matching requests without pagination.
	ListForExport(filter reportapimodels.ReportFilter) (list []dbmodels.FinanceRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) baseQuery(filter reportapimodels.ReportFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.FinanceRequest{}).
		Where("is_deleted = ?", false)
	if filter.From != nil {
		tx = tx.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("created_at < ?", *filter.To)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	return tx
}

func (i impl) Totals(filter reportapimodels.ReportFilter) (count int64, total float64, err error) {
	row := struct {
		Count int64
		Total float64
	}{}
	err = i.baseQuery(filter).
		Select("count(*) as count, coalesce(sum(total_amount), 0) as total").
		Scan(&row).
		Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Total, nil
}

func (i impl) ByStatus(filter reportapimodels.ReportFilter) (list []reportapimodels.StatusCount, err error) {
	list = []reportapimodels.StatusCount{}
	err = i.baseQuery(filter).
		Select("status, count(*) as count, coalesce(sum(total_amount), 0) as total").
		Group("status").
		Order("status").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ByDepartment(filter reportapimodels.ReportFilter) (list []reportapimodels.DepartmentTotal, err error) {
	list = []reportapimodels.DepartmentTotal{}
	err = i.baseQuery(filter).
		Select("department, count(*) as count, coalesce(sum(total_amount), 0) as total").
		Group("department").
		Order("total DESC").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ByPaymentType(filter reportapimodels.ReportFilter) (list []reportapimodels.PaymentTypeTotal, err error) {
	list = []reportapimodels.PaymentTypeTotal{}
	err = i.baseQuery(filter).
		Select("payment_type, count(*) as count, coalesce(sum(total_amount), 0) as total").
		Group("payment_type").
		Order("payment_type").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SLAByLevel(filter reportapimodels.ReportFilter) (list []reportapimodels.SLALevelRow, err error) {
	list = []reportapimodels.SLALevelRow{}
	tx := i.db.
		Model(&dbmodels.ApprovalStep{}).
		Where("started_at IS NOT NULL")
	if filter.From != nil {
		tx = tx.Where("started_at >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("started_at < ?", *filter.To)
	}
	err = tx.
		Select("level, count(*) as total_steps, coalesce(sum(case when sla_breached then 1 else 0 end), 0) as breached_steps").
		Group("level").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForExport(filter reportapimodels.ReportFilter) (list []dbmodels.FinanceRequest, err error) {
	list = []dbmodels.FinanceRequest{}
	err = i.baseQuery(filter).
		Preload("Requestor").
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

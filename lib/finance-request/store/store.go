package frequeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"finance-flow-backend/models"
	financeapimodels "finance-flow-backend/models/api/finance"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.FinanceRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.FinanceRequest, err error)
	// GetByIDLite fetches the row without relations, for status checks inside
	// transactions.
	GetByIDLite(id string) (rec *dbmodels.FinanceRequest, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateWhereStatus applies updMap only while the request is still in the
	// expected status. Zero rows means a concurrent transition won.
	UpdateWhereStatus(id string, expected models.RequestStatus, updMap map[string]interface{}) (rowsAffected int64, err error)
	List(filter financeapimodels.FrFilter) (list []dbmodels.FinanceRequest, rowCount int64, err error)
	ListByIDs(ids []string) (list []dbmodels.FinanceRequest, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.FinanceRequest) (id string, err error) {
	err = i.db.
		Omit("Requestor", "Steps", "Attachments").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.FinanceRequest, error) {
	rec := dbmodels.FinanceRequest{}
	err := i.db.
		Where("id = ?", id).
		Where("is_deleted = ?", false).
		Preload("Requestor").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("approval_steps.sequence ASC")
		}).
		Preload("Attachments").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByIDLite(id string) (*dbmodels.FinanceRequest, error) {
	rec := dbmodels.FinanceRequest{}
	err := i.db.
		Where("id = ?", id).
		Where("is_deleted = ?", false).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.FinanceRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateWhereStatus(id string, expected models.RequestStatus, updMap map[string]interface{}) (int64, error) {
	tx := i.db.
		Model(&dbmodels.FinanceRequest{}).
		Where("id = ?", id).
		Where("status = ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) List(filter financeapimodels.FrFilter) (list []dbmodels.FinanceRequest, rowCount int64, err error) {
	list = []dbmodels.FinanceRequest{}
	tx := i.db.
		Model(&dbmodels.FinanceRequest{}).
		Where("is_deleted = ?", false)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.PaymentType != "" {
		tx = tx.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.RequestorID != "" {
		tx = tx.Where("requestor_id = ?", filter.RequestorID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("reference_number ILIKE ? OR vendor_name ILIKE ?", like, like)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("Requestor").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListByIDs(ids []string) (list []dbmodels.FinanceRequest, err error) {
	list = []dbmodels.FinanceRequest{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id IN (?)", ids).
		Where("is_deleted = ?", false).
		Preload("Requestor").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Model(&dbmodels.FinanceRequest{}).
		Where("id = ?", id).
		Update("is_deleted", true).
		Error
	if err != nil {
		return err
	}
	return nil
}

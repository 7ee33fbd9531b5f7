package approvalstepstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"finance-flow-backend/models"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalStep) (id string, err error)
	GetByID(id string) (rec *dbmodels.ApprovalStep, err error)
	GetActive(requestID string) (rec *dbmodels.ApprovalStep, err error)
	GetBySequence(requestID string, generation, sequence int) (rec *dbmodels.ApprovalStep, err error)
	// CompleteActive applies updMap to the step only while it is still active;
	// the returned row count is zero when a concurrent action won the race.
	CompleteActive(id string, updMap map[string]interface{}) (rowsAffected int64, err error)
	Update(id string, updMap map[string]interface{}) error
	List(requestID string, generation int) (list []dbmodels.ApprovalStep, err error)
	ListPending(requestID string, generation int) (list []dbmodels.ApprovalStep, err error)
	ListActiveDue(now time.Time) (list []dbmodels.ApprovalStep, err error)
	ListActiveNotBreached(now time.Time) (list []dbmodels.ApprovalStep, err error)
	ListActiveByRole(role models.UserRole) (list []dbmodels.ApprovalStep, err error)
	DeleteByRequest(requestID string) error
	MarkBreached(id string) (rowsAffected int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalStep) (id string, err error) {
	err = i.db.
		Omit("Actions").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ApprovalStep, error) {
	rec := dbmodels.ApprovalStep{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetActive(requestID string) (*dbmodels.ApprovalStep, error) {
	rec := dbmodels.ApprovalStep{}
	err := i.db.
		Where("request_id = ?", requestID).
		Where("is_active = ?", true).
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

func (i impl) GetBySequence(requestID string, generation, sequence int) (*dbmodels.ApprovalStep, error) {
	rec := dbmodels.ApprovalStep{}
	err := i.db.
		Where("request_id = ?", requestID).
		Where("ledger_generation = ?", generation).
		Where("sequence = ?", sequence).
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

func (i impl) CompleteActive(id string, updMap map[string]interface{}) (int64, error) {
	tx := i.db.
		Model(&dbmodels.ApprovalStep{}).
		Where("id = ?", id).
		Where("is_active = ?", true).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ApprovalStep{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(requestID string, generation int) (list []dbmodels.ApprovalStep, err error) {
	list = []dbmodels.ApprovalStep{}
	err = i.db.
		Where("request_id = ?", requestID).
		Where("ledger_generation = ?", generation).
		Order("sequence ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListPending(requestID string, generation int) (list []dbmodels.ApprovalStep, err error) {
	list = []dbmodels.ApprovalStep{}
	err = i.db.
		Where("request_id = ?", requestID).
		Where("ledger_generation = ?", generation).
		Where("status = ?", models.StepStatusPending).
		Order("sequence ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActiveDue(now time.Time) (list []dbmodels.ApprovalStep, err error) {
	list = []dbmodels.ApprovalStep{}
	err = i.db.
		Where("is_active = ?", true).
		Where("sla_breached = ?", false).
		Where("sla_due_at < ?", now).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActiveNotBreached(now time.Time) (list []dbmodels.ApprovalStep, err error) {
	list = []dbmodels.ApprovalStep{}
	err = i.db.
		Where("is_active = ?", true).
		Where("sla_breached = ?", false).
		Where("sla_due_at >= ?", now).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActiveByRole(role models.UserRole) (list []dbmodels.ApprovalStep, err error) {
	list = []dbmodels.ApprovalStep{}
	err = i.db.
		Where("is_active = ?", true).
		Where("assigned_to_role = ?", role).
		Order("sla_due_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByRequest(requestID string) error {
	err := i.db.
		Where("request_id = ?", requestID).
		Delete(&dbmodels.ApprovalStep{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) MarkBreached(id string) (int64, error) {
	tx := i.db.
		Model(&dbmodels.ApprovalStep{}).
		Where("id = ?", id).
		Where("sla_breached = ?", false).
		Update("sla_breached", true)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

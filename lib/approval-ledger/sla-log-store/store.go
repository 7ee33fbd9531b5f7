package slalogstore

import (
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.SLALog) (id string, err error)
	GetByStep(stepID string) (rec *dbmodels.SLALog, err error)
	// MarkBreached flips the log exactly once; zero rows means another sweep
	// pass already recorded the breach.
	MarkBreached(stepID string, at time.Time, notifiedRoles []string) (rowsAffected int64, err error)
	MarkWarned(stepID string, at time.Time) error
	ListByRequest(requestID string) (list []dbmodels.SLALog, err error)
	DeleteByRequest(requestID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SLALog) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByStep(stepID string) (*dbmodels.SLALog, error) {
	rec := dbmodels.SLALog{}
	err := i.db.
		Where("step_id = ?", stepID).
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

func (i impl) MarkBreached(stepID string, at time.Time, notifiedRoles []string) (int64, error) {
	tx := i.db.
		Model(&dbmodels.SLALog{}).
		Where("step_id = ?", stepID).
		Where("is_breached = ?", false).
		Updates(map[string]interface{}{
			"is_breached":    true,
			"breached_at":    at,
			"notified_roles": pq.StringArray(notifiedRoles),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) MarkWarned(stepID string, at time.Time) error {
	err := i.db.
		Model(&dbmodels.SLALog{}).
		Where("step_id = ?", stepID).
		Update("warned_at", at).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.SLALog, err error) {
	list = []dbmodels.SLALog{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("created_at ASC").
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
		Delete(&dbmodels.SLALog{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

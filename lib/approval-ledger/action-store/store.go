package approvalactionstore

import (
	"gorm.io/gorm"

	dbmodels "finance-flow-backend/models/db"
)

// Records are append-only; there is deliberately no Update or Delete here.
type Provider interface {
	Create(rec dbmodels.ApprovalActionRecord) (id string, err error)
	ListByRequest(requestID string) (list []dbmodels.ApprovalActionRecord, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalActionRecord) (id string, err error) {
	err = i.db.
		Omit("Actor").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.ApprovalActionRecord, err error) {
	list = []dbmodels.ApprovalActionRecord{}
	err = i.db.
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Preload("Actor").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

package attachmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Attachment) (id string, err error)
	GetByID(id string) (rec *dbmodels.Attachment, err error)
	ListByRequest(requestID string) (list []dbmodels.Attachment, err error)
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

func (i impl) Create(rec dbmodels.Attachment) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Attachment, error) {
	rec := dbmodels.Attachment{}
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

func (i impl) ListByRequest(requestID string) (list []dbmodels.Attachment, err error) {
	list = []dbmodels.Attachment{}
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

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Attachment{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

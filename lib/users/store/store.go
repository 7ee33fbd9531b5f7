package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"finance-flow-backend/models"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AppUser) (id string, err error)
	GetByID(id string) (rec *dbmodels.AppUser, err error)
	GetByEmail(email string) (rec *dbmodels.AppUser, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.AppUser, err error)
	ListByRole(role models.UserRole) (list []dbmodels.AppUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AppUser) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AppUser, error) {
	rec := dbmodels.AppUser{}
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

func (i impl) GetByEmail(email string) (*dbmodels.AppUser, error) {
	rec := dbmodels.AppUser{}
	err := i.db.
		Where("email = ?", email).
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
		Model(&dbmodels.AppUser{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.AppUser, err error) {
	list = []dbmodels.AppUser{}
	err = i.db.
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByRole(role models.UserRole) (list []dbmodels.AppUser, err error) {
	list = []dbmodels.AppUser{}
	err = i.db.
		Where("role = ?", role).
		Where("is_active = ?", true).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

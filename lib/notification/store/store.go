package notificationstore

import (
	"gorm.io/gorm"

	apimodels "finance-flow-backend/models/api"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	List(userID string, onlyUnread bool, pg apimodels.Pagination) (list []dbmodels.Notification, rowCount int64, err error)
	ListUnread(userID string) (list []dbmodels.Notification, err error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	CountUnread(userID string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(userID string, onlyUnread bool, pg apimodels.Pagination) (list []dbmodels.Notification, rowCount int64, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID)
	if onlyUnread {
		tx = tx.Where("is_read = ?", false)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := pg.GetPage()
	err = tx.
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

func (i impl) ListUnread(userID string) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkRead(userID, id string) error {
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Update("is_read", true).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) MarkAllRead(userID string) error {
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) CountUnread(userID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

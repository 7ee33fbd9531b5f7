package dbmodels

import (
	"finance-flow-backend/models"
)

type Notification struct {
	BaseModel
	UserID    string                  `gorm:"type:varchar(36);index:idx_notify_user"`
	Code      models.NotificationCode `gorm:"type:varchar(100)"`
	Title     string                  `gorm:"type:varchar(255)"`
	Msg       string
	RequestID *string `gorm:"type:varchar(36)"`
	IsRead    bool
}

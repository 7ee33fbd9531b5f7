package dbmodels

import (
	"fmt"
	"time"

	"finance-flow-backend/models"
)

type AppUser struct {
	BaseModel
	Password    string          `gorm:"type:varchar(128)"`
	FirstName   string          `gorm:"type:varchar(150)"`
	LastName    string          `gorm:"type:varchar(150)"`
	Email       string          `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber string          `gorm:"type:varchar(15)"`
	Department  string          `gorm:"type:varchar(150)"`
	Entity      string          `gorm:"type:varchar(150)"`
	Role        models.UserRole `gorm:"type:varchar(50)"`
	IsActive    bool
	LastLogin   time.Time
}

func (r AppUser) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

func (r AppUser) ToActor() models.Actor {
	return models.Actor{
		ID:         r.ID,
		Name:       r.GetFullName(),
		Role:       r.Role,
		Department: r.Department,
	}
}

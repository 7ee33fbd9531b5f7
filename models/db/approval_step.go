package dbmodels

import (
	"time"

	"finance-flow-backend/models"
)

// ApprovalStep is one stage of a request's approval ledger. At most one step
// per request has IsActive=true.
type ApprovalStep struct {
	BaseModel
	RequestID        string               `gorm:"type:varchar(36);index"`
	Level            models.ApprovalLevel `gorm:"type:varchar(50)"`
	Sequence         int
	AssignedToRole   models.UserRole   `gorm:"type:varchar(50)"`
	Status           models.StepStatus `gorm:"type:varchar(50)"`
	IsActive         bool              `gorm:"index"`
	SlaHours         int
	SlaDueAt         *time.Time
	SlaBreached      bool
	StartedAt        *time.Time
	CompletedAt      *time.Time
	LedgerGeneration int

	Actions []ApprovalActionRecord `gorm:"foreignKey:StepID"`
}

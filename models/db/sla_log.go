package dbmodels

import (
	"time"

	"finance-flow-backend/models"

	"github.com/lib/pq"
)

// SLALog is created when a step is activated and updated in place when a
// breach or warning is detected. WarnedAt backs the 24h warning suppression.
type SLALog struct {
	BaseModel
	RequestID        string               `gorm:"type:varchar(36);index"`
	StepID           string               `gorm:"type:varchar(36);index"`
	Level            models.ApprovalLevel `gorm:"type:varchar(50)"`
	SlaHours         int
	SlaDueAt         time.Time
	IsBreached       bool
	BreachedAt       *time.Time
	WarnedAt         *time.Time
	NotifiedRoles    pq.StringArray `gorm:"type:text[]"`
	LedgerGeneration int
}

package dbmodels

import (
	"finance-flow-backend/models"
)

// ApprovalActionRecord is the append-only audit log of approval decisions.
// Records are never updated or deleted; on resubmission they survive under
// their original ledger generation.
type ApprovalActionRecord struct {
	BaseModel
	RequestID         string                `gorm:"type:varchar(36);index"`
	StepID            string                `gorm:"type:varchar(36);index"`
	ActorID           string                `gorm:"type:varchar(36)"`
	Actor             *AppUser              `gorm:"foreignKey:ActorID"`
	Action            models.ApprovalAction `gorm:"type:varchar(50)"`
	Comments          string
	IsOverride        bool
	SlaCompliant      bool
	ResponseTimeHours float64
	LedgerGeneration  int
}

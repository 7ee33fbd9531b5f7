package dbmodels

import (
	"time"

	"finance-flow-backend/models"
)

type FinanceRequest struct {
	BaseModel
	ReferenceNumber string   `gorm:"type:varchar(32);uniqueIndex"`
	RequestorID     string   `gorm:"type:varchar(36);index"`
	Requestor       *AppUser `gorm:"foreignKey:RequestorID"`
	Department      string   `gorm:"type:varchar(150);index"`
	Entity          string   `gorm:"type:varchar(150)"`
	Description     string
	VendorName      string `gorm:"type:varchar(255)"`
	BankAccount     string `gorm:"type:varchar(34)"`
	BankIfsc        string `gorm:"type:varchar(11)"`

	BaseAmount    float64
	GstApplicable bool
	GstPercentage float64
	GstAmount     float64
	TdsApplicable bool
	TdsPercentage float64
	TdsAmount     float64
	TotalAmount   float64
	Currency      string `gorm:"type:varchar(3);default:INR"`

	PaymentType       models.PaymentType    `gorm:"type:varchar(50)"`
	Status            models.RequestStatus  `gorm:"type:varchar(100);index"`
	CurrentLevel      *models.ApprovalLevel `gorm:"type:varchar(50)"`
	ResubmissionCount int
	// LedgerGeneration counts submissions; each resubmission recreates the
	// step set under a new generation, action records keep their old one.
	LedgerGeneration int
	IsDeleted        bool `gorm:"index"`

	SubmittedAt *time.Time
	CompletedAt *time.Time

	Steps       []ApprovalStep `gorm:"foreignKey:RequestID"`
	Attachments []Attachment   `gorm:"foreignKey:RequestID"`
}

// ActiveStep returns the single step currently awaiting action, if any.
func (r FinanceRequest) ActiveStep() *ApprovalStep {
	for i := range r.Steps {
		if r.Steps[i].IsActive {
			return &r.Steps[i]
		}
	}
	return nil
}

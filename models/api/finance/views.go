package financeapimodels

import (
	"time"

	"finance-flow-backend/models"
	dbmodels "finance-flow-backend/models/db"
)

type FinanceRequestView struct {
	ID              string                `json:"id"`
	ReferenceNumber string                `json:"reference_number"`
	RequestorID     string                `json:"requestor_id"`
	RequestorName   string                `json:"requestor_name,omitempty"`
	Department      string                `json:"department"`
	Entity          string                `json:"entity"`
	Description     string                `json:"description"`
	VendorName      string                `json:"vendor_name"`
	BankAccount     string                `json:"bank_account,omitempty"`
	BankIfsc        string                `json:"bank_ifsc,omitempty"`
	BaseAmount      float64               `json:"base_amount"`
	GstApplicable   bool                  `json:"gst_applicable"`
	GstPercentage   float64               `json:"gst_percentage"`
	GstAmount       float64               `json:"gst_amount"`
	TdsApplicable   bool                  `json:"tds_applicable"`
	TdsPercentage   float64               `json:"tds_percentage"`
	TdsAmount       float64               `json:"tds_amount"`
	TotalAmount     float64               `json:"total_amount"`
	Currency        string                `json:"currency"`
	PaymentType     models.PaymentType    `json:"payment_type"`
	Status          models.RequestStatus  `json:"status"`
	CurrentLevel    *models.ApprovalLevel `json:"current_level,omitempty"`
	Resubmissions   int                   `json:"resubmission_count"`
	CreatedAt       time.Time             `json:"created_at"`
	SubmittedAt     *time.Time            `json:"submitted_at,omitempty"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
	Steps           []ApprovalStepView    `json:"steps,omitempty"`
}

type ApprovalStepView struct {
	ID          string               `json:"id"`
	Level       models.ApprovalLevel `json:"level"`
	LevelName   string               `json:"level_name"`
	Sequence    int                  `json:"sequence"`
	Role        models.UserRole      `json:"assigned_to_role"`
	Status      models.StepStatus    `json:"status"`
	IsActive    bool                 `json:"is_active"`
	SlaHours    int                  `json:"sla_hours"`
	SlaDueAt    *time.Time           `json:"sla_due_at,omitempty"`
	SlaBreached bool                 `json:"sla_breached"`
	StartedAt   *time.Time           `json:"started_at,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

type ApprovalActionView struct {
	ID           string                `json:"id"`
	StepID       string                `json:"step_id"`
	ActorID      string                `json:"actor_id"`
	ActorName    string                `json:"actor_name,omitempty"`
	Action       models.ApprovalAction `json:"action"`
	Comments     string                `json:"comments,omitempty"`
	IsOverride   bool                  `json:"is_override"`
	SlaCompliant bool                  `json:"sla_compliant"`
	ResponseTime float64               `json:"response_time_hours"`
	Generation   int                   `json:"ledger_generation"`
	CreatedAt    time.Time             `json:"created_at"`
}

// PendingApprovalView is one row of the role dashboard.
type PendingApprovalView struct {
	RequestID       string               `json:"request_id"`
	ReferenceNumber string               `json:"reference_number"`
	VendorName      string               `json:"vendor_name"`
	TotalAmount     float64              `json:"total_amount"`
	Currency        string               `json:"currency"`
	Level           models.ApprovalLevel `json:"level"`
	SlaDueAt        *time.Time           `json:"sla_due_at,omitempty"`
	SlaStatus       models.SLAStatus     `json:"sla_status"`
}

func FinanceRequestConvert(rec dbmodels.FinanceRequest) FinanceRequestView {
	view := FinanceRequestView{
		ID:              rec.ID,
		ReferenceNumber: rec.ReferenceNumber,
		RequestorID:     rec.RequestorID,
		Department:      rec.Department,
		Entity:          rec.Entity,
		Description:     rec.Description,
		VendorName:      rec.VendorName,
		BankAccount:     rec.BankAccount,
		BankIfsc:        rec.BankIfsc,
		BaseAmount:      rec.BaseAmount,
		GstApplicable:   rec.GstApplicable,
		GstPercentage:   rec.GstPercentage,
		GstAmount:       rec.GstAmount,
		TdsApplicable:   rec.TdsApplicable,
		TdsPercentage:   rec.TdsPercentage,
		TdsAmount:       rec.TdsAmount,
		TotalAmount:     rec.TotalAmount,
		Currency:        rec.Currency,
		PaymentType:     rec.PaymentType,
		Status:          rec.Status,
		CurrentLevel:    rec.CurrentLevel,
		Resubmissions:   rec.ResubmissionCount,
		CreatedAt:       rec.CreatedAt,
		SubmittedAt:     rec.SubmittedAt,
		CompletedAt:     rec.CompletedAt,
	}
	if rec.Requestor != nil {
		view.RequestorName = rec.Requestor.GetFullName()
	}
	for _, step := range rec.Steps {
		view.Steps = append(view.Steps, ApprovalStepConvert(step))
	}
	return view
}

func ApprovalStepConvert(rec dbmodels.ApprovalStep) ApprovalStepView {
	return ApprovalStepView{
		ID:          rec.ID,
		Level:       rec.Level,
		LevelName:   rec.Level.ToHuman(),
		Sequence:    rec.Sequence,
		Role:        rec.AssignedToRole,
		Status:      rec.Status,
		IsActive:    rec.IsActive,
		SlaHours:    rec.SlaHours,
		SlaDueAt:    rec.SlaDueAt,
		SlaBreached: rec.SlaBreached,
		StartedAt:   rec.StartedAt,
		CompletedAt: rec.CompletedAt,
	}
}

func ApprovalActionConvert(rec dbmodels.ApprovalActionRecord) ApprovalActionView {
	view := ApprovalActionView{
		ID:           rec.ID,
		StepID:       rec.StepID,
		ActorID:      rec.ActorID,
		Action:       rec.Action,
		Comments:     rec.Comments,
		IsOverride:   rec.IsOverride,
		SlaCompliant: rec.SlaCompliant,
		ResponseTime: rec.ResponseTimeHours,
		Generation:   rec.LedgerGeneration,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Actor != nil {
		view.ActorName = rec.Actor.GetFullName()
	}
	return view
}

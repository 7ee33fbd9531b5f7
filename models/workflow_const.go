package models

import "strings"

type ApprovalLevel string

const (
	LevelFinanceVetting    ApprovalLevel = "FINANCE_VETTING"
	LevelFinancePlanner    ApprovalLevel = "FINANCE_PLANNER"
	LevelFinanceController ApprovalLevel = "FINANCE_CONTROLLER"
	LevelDirector          ApprovalLevel = "DIRECTOR"
	LevelMD                ApprovalLevel = "MD"
	LevelDisbursement      ApprovalLevel = "DISBURSEMENT"

	// LevelAdminReview is not part of the configured chain; it labels override
	// decisions taken on a request parked for admin review.
	LevelAdminReview ApprovalLevel = "ADMIN_REVIEW"
)

var levelHumanName = map[ApprovalLevel]string{
	LevelFinanceVetting:    "Finance vetting",
	LevelFinancePlanner:    "Finance planner",
	LevelFinanceController: "Finance controller",
	LevelDirector:          "Director",
	LevelMD:                "Managing director",
	LevelDisbursement:      "Disbursement",
	LevelAdminReview:       "Admin review",
}

func (l ApprovalLevel) ToHuman() string {
	if human, exist := levelHumanName[l]; exist {
		return human
	}
	return string(l)
}

type RequestStatus string

const (
	RequestStatusDraft       RequestStatus = "DRAFT"
	RequestStatusSentBack    RequestStatus = "SENT_BACK"
	RequestStatusApproved    RequestStatus = "APPROVED"
	RequestStatusDisbursed   RequestStatus = "DISBURSED"
	RequestStatusRejected    RequestStatus = "REJECTED"
	RequestStatusAdminReview RequestStatus = "PENDING_ADMIN_REVIEW"

	pendingStatusPrefix = "PENDING_"
)

// PendingStatus builds the status for a request awaiting action at the given level.
func PendingStatus(level ApprovalLevel) RequestStatus {
	return RequestStatus(pendingStatusPrefix + string(level))
}

// IsPendingLevel reports whether the status names an approval level awaiting action.
// PENDING_ADMIN_REVIEW is not a level status.
func (s RequestStatus) IsPendingLevel() bool {
	return strings.HasPrefix(string(s), pendingStatusPrefix) && s != RequestStatusAdminReview
}

// PendingLevel extracts the level from a PENDING_<LEVEL> status.
func (s RequestStatus) PendingLevel() (ApprovalLevel, bool) {
	if !s.IsPendingLevel() {
		return "", false
	}
	return ApprovalLevel(strings.TrimPrefix(string(s), pendingStatusPrefix)), true
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusRejected || s == RequestStatusDisbursed || s == RequestStatusApproved
}

func (s RequestStatus) AllowEdit() bool {
	return s == RequestStatusDraft || s == RequestStatusSentBack
}

func (s RequestStatus) AllowSubmit() bool {
	return s == RequestStatusDraft
}

func (s RequestStatus) AllowResubmit() bool {
	return s == RequestStatusSentBack
}

type ApprovalAction string

const (
	ActionApproved ApprovalAction = "APPROVED"
	ActionRejected ApprovalAction = "REJECTED"
	ActionSentBack ApprovalAction = "SENT_BACK"
)

func (a ApprovalAction) IsValid() bool {
	switch a {
	case ActionApproved, ActionRejected, ActionSentBack:
		return true
	}
	return false
}

type AdminDecision string

const (
	AdminDecisionApprove           AdminDecision = "APPROVE"
	AdminDecisionReject            AdminDecision = "REJECT"
	AdminDecisionAllowResubmission AdminDecision = "ALLOW_RESUBMISSION"
)

func (d AdminDecision) IsValid() bool {
	switch d {
	case AdminDecisionApprove, AdminDecisionReject, AdminDecisionAllowResubmission:
		return true
	}
	return false
}

type StepStatus string

const (
	StepStatusPending   StepStatus = "PENDING"
	StepStatusCompleted StepStatus = "COMPLETED"
	StepStatusSkipped   StepStatus = "SKIPPED"
)

type PaymentType string

const (
	PaymentTypeRegular       PaymentType = "REGULAR"
	PaymentTypeAdvance       PaymentType = "ADVANCE"
	PaymentTypeReimbursement PaymentType = "REIMBURSEMENT"
	PaymentTypeCritical      PaymentType = "CRITICAL"
)

func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeRegular, PaymentTypeAdvance, PaymentTypeReimbursement, PaymentTypeCritical:
		return true
	}
	return false
}

func (p PaymentType) IsCritical() bool {
	return p == PaymentTypeCritical
}

type SLAStatus string

const (
	SLAOnTrack   SLAStatus = "ON_TRACK"
	SLAAtRisk    SLAStatus = "AT_RISK"
	SLABreached  SLAStatus = "BREACHED"
	SLACompleted SLAStatus = "COMPLETED"
)

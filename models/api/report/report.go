package reportapimodels

import (
	"time"

	"finance-flow-backend/models"
)

// ReportFilter bounds a report by submission period and optional dimensions.
type ReportFilter struct {
	From       *time.Time           `json:"from"`
	To         *time.Time           `json:"to"`
	Department string               `json:"department"`
	Status     models.RequestStatus `json:"status"`
}

type StatusCount struct {
	Status models.RequestStatus `json:"status"`
	Count  int64                `json:"count"`
	Total  float64              `json:"total_amount"`
}

type DepartmentTotal struct {
	Department string  `json:"department"`
	Count      int64   `json:"count"`
	Total      float64 `json:"total_amount"`
}

type PaymentTypeTotal struct {
	PaymentType models.PaymentType `json:"payment_type"`
	Count       int64              `json:"count"`
	Total       float64            `json:"total_amount"`
}

type SLALevelRow struct {
	Level         models.ApprovalLevel `json:"level"`
	TotalSteps    int64                `json:"total_steps"`
	BreachedSteps int64                `json:"breached_steps"`
	CompliancePct float64              `json:"compliance_pct"`
}

type SummaryReport struct {
	TotalRequests int64              `json:"total_requests"`
	TotalAmount   float64            `json:"total_amount"`
	ByStatus      []StatusCount      `json:"by_status"`
	ByDepartment  []DepartmentTotal  `json:"by_department"`
	ByPaymentType []PaymentTypeTotal `json:"by_payment_type"`
}

type SLAReport struct {
	ByLevel []SLALevelRow `json:"by_level"`
}

package financeapimodels

import (
	"regexp"
	"strings"

	"finance-flow-backend/models"
	apimodels "finance-flow-backend/models/api"
)

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// FinanceRequestData carries the editable fields of a payment request.
// Monetary totals are always recomputed server-side, never taken from the payload.
type FinanceRequestData struct {
	Description   string             `json:"description"`
	VendorName    string             `json:"vendor_name"`
	BankAccount   string             `json:"bank_account"`
	BankIfsc      string             `json:"bank_ifsc"`
	Department    string             `json:"department"`
	Entity        string             `json:"entity"`
	BaseAmount    float64            `json:"base_amount"`
	GstApplicable bool               `json:"gst_applicable"`
	GstPercentage float64            `json:"gst_percentage"`
	TdsApplicable bool               `json:"tds_applicable"`
	TdsPercentage float64            `json:"tds_percentage"`
	Currency      string             `json:"currency"`
	PaymentType   models.PaymentType `json:"payment_type"`
}

func (r FinanceRequestData) Validate() error {
	vErr := &models.ValidationError{}
	if strings.TrimSpace(r.Description) == "" {
		vErr.Add("description", "description is required")
	} else if len(r.Description) > 2000 {
		vErr.Add("description", "description must not exceed 2000 characters")
	}
	if strings.TrimSpace(r.VendorName) == "" {
		vErr.Add("vendor_name", "vendor name is required")
	} else if len(r.VendorName) > 255 {
		vErr.Add("vendor_name", "vendor name must not exceed 255 characters")
	}
	if r.BankAccount != "" && (len(r.BankAccount) < 9 || len(r.BankAccount) > 34) {
		vErr.Add("bank_account", "bank account must be 9 to 34 characters")
	}
	if r.BankIfsc != "" && !ifscPattern.MatchString(r.BankIfsc) {
		vErr.Add("bank_ifsc", "invalid IFSC code")
	}
	if r.BaseAmount <= 0 {
		vErr.Add("base_amount", "base amount must be greater than zero")
	}
	if r.GstApplicable && (r.GstPercentage <= 0 || r.GstPercentage > 28) {
		vErr.Add("gst_percentage", "GST percentage must be between 0 and 28")
	}
	if r.TdsApplicable && (r.TdsPercentage <= 0 || r.TdsPercentage > 30) {
		vErr.Add("tds_percentage", "TDS percentage must be between 0 and 30")
	}
	// tds must never consume more than base + gst
	if r.TdsApplicable && r.BaseAmount > 0 {
		gst := 0.0
		if r.GstApplicable {
			gst = r.BaseAmount * r.GstPercentage / 100
		}
		if r.BaseAmount*r.TdsPercentage/100 > r.BaseAmount+gst {
			vErr.Add("tds_percentage", "TDS amount exceeds base amount plus GST")
		}
	}
	if r.Currency != "" && len(r.Currency) != 3 {
		vErr.Add("currency", "currency must be a 3-letter code")
	}
	if !r.PaymentType.IsValid() {
		vErr.Add("payment_type", "unknown payment type")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

type FinanceRequestCreateData struct {
	FinanceRequestData
}

type FinanceRequestEditData struct {
	FinanceRequestData
}

// DecisionData is the payload of an approve/reject/send-back action.
type DecisionData struct {
	Comments string `json:"comments"`
}

func (r DecisionData) Validate(action models.ApprovalAction) error {
	vErr := &models.ValidationError{}
	if !action.IsValid() {
		vErr.Add("action", "unknown action")
	}
	if (action == models.ActionRejected || action == models.ActionSentBack) && strings.TrimSpace(r.Comments) == "" {
		vErr.Add("comments", "comments are required when rejecting or sending back")
	}
	if len(r.Comments) > 2000 {
		vErr.Add("comments", "comments must not exceed 2000 characters")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

type AdminReviewData struct {
	Decision models.AdminDecision `json:"decision"`
	Comments string               `json:"comments"`
}

func (r AdminReviewData) Validate() error {
	vErr := &models.ValidationError{}
	if !r.Decision.IsValid() {
		vErr.Add("decision", "unknown decision")
	}
	if r.Decision == models.AdminDecisionReject && strings.TrimSpace(r.Comments) == "" {
		vErr.Add("comments", "comments are required when rejecting")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

type FrFilter struct {
	apimodels.Pagination
	Status      models.RequestStatus `json:"status"`
	Department  string               `json:"department"`
	PaymentType models.PaymentType   `json:"payment_type"`
	RequestorID string               `json:"requestor_id"`
	Search      string               `json:"search"` // matches reference number or vendor
}

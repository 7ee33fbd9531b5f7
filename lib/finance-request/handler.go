package financerequest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"finance-flow-backend/db"
	approvalledger "finance-flow-backend/lib/approval-ledger"
	pdfexport "finance-flow-backend/lib/export/pdf"
	frequeststore "finance-flow-backend/lib/finance-request/store"
	"finance-flow-backend/lib/money"
	"finance-flow-backend/models"
	financeapimodels "finance-flow-backend/models/api/finance"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Create(actor models.Actor, data financeapimodels.FinanceRequestCreateData) (id string, err error)
	Update(actor models.Actor, id string, data financeapimodels.FinanceRequestEditData) error
	GetByID(actor models.Actor, id string) (view financeapimodels.FinanceRequestView, err error)
	List(actor models.Actor, filter financeapimodels.FrFilter) (list []financeapimodels.FinanceRequestView, rowCount int64, err error)
	Delete(actor models.Actor, id string) error
	// History returns the append-only action trail across all ledger generations.
	History(actor models.Actor, id string) (list []financeapimodels.ApprovalActionView, err error)
	// ExportPDF renders the request sheet with its approval trail.
	ExportPDF(actor models.Actor, id string) (pdfFile []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: frequeststore.NewInstance(db.DB),
	}
}

type impl struct {
	store frequeststore.Provider
}

func (i impl) getLogger(requestID string) *log.Entry {
	return log.WithField("request_id", requestID)
}

// newReferenceNumber builds a human-readable unique reference, e.g.
// FR-202608-1a2b3c4d.
func newReferenceNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("FR-%s-%s", now.Format("200601"), suffix)
}

func (i impl) Create(actor models.Actor, data financeapimodels.FinanceRequestCreateData) (string, error) {
	err := data.Validate()
	if err != nil {
		return "", err
	}
	totals := money.ComputeTotals(data.BaseAmount, data.GstApplicable, data.GstPercentage, data.TdsApplicable, data.TdsPercentage)
	currency := data.Currency
	if currency == "" {
		currency = "INR"
	}
	department := data.Department
	if department == "" {
		department = actor.Department
	}
	now := time.Now()
	rec := dbmodels.FinanceRequest{
		ReferenceNumber: newReferenceNumber(now),
		RequestorID:     actor.ID,
		Department:      department,
		Entity:          data.Entity,
		Description:     data.Description,
		VendorName:      data.VendorName,
		BankAccount:     data.BankAccount,
		BankIfsc:        data.BankIfsc,
		BaseAmount:      data.BaseAmount,
		GstApplicable:   data.GstApplicable,
		GstPercentage:   data.GstPercentage,
		GstAmount:       totals.GstAmount,
		TdsApplicable:   data.TdsApplicable,
		TdsPercentage:   data.TdsPercentage,
		TdsAmount:       totals.TdsAmount,
		TotalAmount:     totals.TotalAmount,
		Currency:        currency,
		PaymentType:     data.PaymentType,
		Status:          models.RequestStatusDraft,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("failed to create finance request")
		return "", err
	}
	i.getLogger(id).Info("finance request created")
	return id, nil
}

func (i impl) Update(actor models.Actor, id string, data financeapimodels.FinanceRequestEditData) error {
	logger := i.getLogger(id)
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.store.GetByIDLite(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewNotFoundError("finance request")
	}
	if rec.RequestorID != actor.ID && !actor.Role.IsAdmin() {
		return models.NewAuthorizationError("only the requestor may edit the request")
	}
	if !rec.Status.AllowEdit() {
		return models.NewInvalidTransitionError(rec.Status, "edit")
	}
	totals := money.ComputeTotals(data.BaseAmount, data.GstApplicable, data.GstPercentage, data.TdsApplicable, data.TdsPercentage)
	updMap := map[string]interface{}{
		"description":    data.Description,
		"vendor_name":    data.VendorName,
		"bank_account":   data.BankAccount,
		"bank_ifsc":      data.BankIfsc,
		"entity":         data.Entity,
		"base_amount":    data.BaseAmount,
		"gst_applicable": data.GstApplicable,
		"gst_percentage": data.GstPercentage,
		"gst_amount":     totals.GstAmount,
		"tds_applicable": data.TdsApplicable,
		"tds_percentage": data.TdsPercentage,
		"tds_amount":     totals.TdsAmount,
		"total_amount":   totals.TotalAmount,
		"payment_type":   data.PaymentType,
	}
	if data.Department != "" {
		updMap["department"] = data.Department
	}
	if data.Currency != "" {
		updMap["currency"] = data.Currency
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update finance request")
		return err
	}
	logger.Info("finance request updated")
	return nil
}

func (i impl) GetByID(actor models.Actor, id string) (financeapimodels.FinanceRequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return financeapimodels.FinanceRequestView{}, err
	}
	if rec == nil {
		return financeapimodels.FinanceRequestView{}, models.NewNotFoundError("finance request")
	}
	if actor.Role == models.RoleEmployee && rec.RequestorID != actor.ID {
		return financeapimodels.FinanceRequestView{}, models.NewAuthorizationError("request belongs to another user")
	}
	return financeapimodels.FinanceRequestConvert(*rec), nil
}

func (i impl) List(actor models.Actor, filter financeapimodels.FrFilter) ([]financeapimodels.FinanceRequestView, int64, error) {
	// employees only ever see their own requests
	if actor.Role == models.RoleEmployee {
		filter.RequestorID = actor.ID
	}
	recs, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]financeapimodels.FinanceRequestView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, financeapimodels.FinanceRequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Delete(actor models.Actor, id string) error {
	logger := i.getLogger(id)
	rec, err := i.store.GetByIDLite(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewNotFoundError("finance request")
	}
	if rec.RequestorID != actor.ID && !actor.Role.IsAdmin() {
		return models.NewAuthorizationError("only the requestor may delete the request")
	}
	// once in the chain the request is part of the audit trail
	if !rec.Status.AllowEdit() {
		return models.NewInvalidTransitionError(rec.Status, "delete")
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("failed to delete finance request")
		return err
	}
	logger.Info("finance request deleted")
	return nil
}

func (i impl) ExportPDF(actor models.Actor, id string) ([]byte, string, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", models.NewNotFoundError("finance request")
	}
	if actor.Role == models.RoleEmployee && rec.RequestorID != actor.ID {
		return nil, "", models.NewAuthorizationError("request belongs to another user")
	}
	records, err := approvalledger.Instance.History(id)
	if err != nil {
		return nil, "", err
	}
	pdfFile, err := pdfexport.GenerateRequestSheet(*rec, records, time.Now())
	if err != nil {
		i.getLogger(id).WithError(err).Error("failed to render request PDF")
		return nil, "", err
	}
	return pdfFile, fmt.Sprintf("%s.pdf", rec.ReferenceNumber), nil
}

func (i impl) History(actor models.Actor, id string) ([]financeapimodels.ApprovalActionView, error) {
	rec, err := i.store.GetByIDLite(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("finance request")
	}
	if actor.Role == models.RoleEmployee && rec.RequestorID != actor.ID {
		return nil, models.NewAuthorizationError("request belongs to another user")
	}
	records, err := approvalledger.Instance.History(id)
	if err != nil {
		return nil, err
	}
	list := make([]financeapimodels.ApprovalActionView, 0, len(records))
	for _, record := range records {
		list = append(list, financeapimodels.ApprovalActionConvert(record))
	}
	return list, nil
}

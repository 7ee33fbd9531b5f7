package workflow

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"finance-flow-backend/config"
	"finance-flow-backend/db"
	approvalledger "finance-flow-backend/lib/approval-ledger"
	approvalstepstore "finance-flow-backend/lib/approval-ledger/store"
	frequeststore "finance-flow-backend/lib/finance-request/store"
	"finance-flow-backend/lib/notification"
	"finance-flow-backend/lib/rbac"
	slaclock "finance-flow-backend/lib/sla-clock"
	"finance-flow-backend/models"
	financeapimodels "finance-flow-backend/models/api/finance"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	// Submit moves a draft into the approval chain.
	Submit(actor models.Actor, requestID string) (financeapimodels.FinanceRequestView, error)
	// Decide applies an approve/reject/send-back action at the active step.
	Decide(actor models.Actor, requestID string, action models.ApprovalAction, comments string) (financeapimodels.FinanceRequestView, error)
	// Resubmit restarts the chain for a sent-back request; over the budget it
	// escalates to admin review instead.
	Resubmit(actor models.Actor, requestID string) (financeapimodels.FinanceRequestView, error)
	// AdminReview resolves a request parked in PENDING_ADMIN_REVIEW.
	AdminReview(actor models.Actor, requestID string, data financeapimodels.AdminReviewData) (financeapimodels.FinanceRequestView, error)
	// PendingForRole is the approver dashboard: active steps assigned to the
	// role, with their SLA classification.
	PendingForRole(role models.UserRole) ([]financeapimodels.PendingApprovalView, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		machine:   NewMachine(config.Conf.Workflow),
		frStore:   frequeststore.NewInstance(db.DB),
		stepStore: approvalstepstore.NewInstance(db.DB),
	}
}

type impl struct {
	machine   Machine
	frStore   frequeststore.Provider
	stepStore approvalstepstore.Provider
}

type notifyJob struct {
	userID string
	role   models.UserRole
	data   models.NotificationData
}

func (i impl) getLogger(requestID string) *log.Entry {
	return log.WithField("request_id", requestID)
}

// levelRole returns the role assigned to a chain level.
func (i impl) levelRole(level models.ApprovalLevel) models.UserRole {
	for _, l := range config.Conf.Workflow.Levels {
		if models.ApprovalLevel(l.Level) == level {
			return models.UserRole(l.Role)
		}
	}
	return ""
}

func currentLevelValue(t Transition) interface{} {
	if t.CurrentLevel == nil {
		return nil
	}
	return string(*t.CurrentLevel)
}

// dispatch delivers the queued notifications after a successful commit.
// Delivery failures never fail the workflow action.
func (i impl) dispatch(requestID string, jobs []notifyJob) {
	for _, job := range jobs {
		if job.userID != "" {
			notification.Instance.Notify(job.userID, &requestID, job.data)
			continue
		}
		notification.Instance.NotifyRole(job.role, &requestID, job.data)
	}
}

func (i impl) loadView(requestID string) (financeapimodels.FinanceRequestView, error) {
	rec, err := i.frStore.GetByID(requestID)
	if err != nil {
		return financeapimodels.FinanceRequestView{}, err
	}
	if rec == nil {
		return financeapimodels.FinanceRequestView{}, models.NewNotFoundError("finance request")
	}
	return financeapimodels.FinanceRequestConvert(*rec), nil
}

func (i impl) Submit(actor models.Actor, requestID string) (financeapimodels.FinanceRequestView, error) {
	logger := i.getLogger(requestID)
	now := time.Now()
	var jobs []notifyJob
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		frStore := frequeststore.NewInstance(tx)
		ledger := approvalledger.NewHandlerWithTx(tx)

		rec, err := frStore.GetByIDLite(requestID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NewNotFoundError("finance request")
		}
		if rec.RequestorID != actor.ID && !actor.Role.IsAdmin() {
			return models.NewAuthorizationError("only the requestor may submit the request")
		}
		trans, err := i.machine.OnSubmit(rec.Status)
		if err != nil {
			return err
		}
		generation := rec.LedgerGeneration + 1
		firstLevel, err := ledger.CreateLedger(rec.ID, rec.PaymentType, generation, now)
		if err != nil {
			return err
		}
		rows, err := frStore.UpdateWhereStatus(rec.ID, rec.Status, map[string]interface{}{
			"status":            trans.Status,
			"current_level":     currentLevelValue(trans),
			"ledger_generation": generation,
			"submitted_at":      now,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return models.ErrConcurrencyConflict
		}
		jobs = []notifyJob{
			{userID: rec.RequestorID, data: models.GetNotifySubmitted(rec.ReferenceNumber, firstLevel)},
			{role: i.levelRole(firstLevel), data: models.GetNotifyApprovalPending(rec.ReferenceNumber, firstLevel)},
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("failed to submit finance request")
		return financeapimodels.FinanceRequestView{}, err
	}
	logger.Info("finance request submitted")
	i.dispatch(requestID, jobs)
	return i.loadView(requestID)
}

func (i impl) Decide(actor models.Actor, requestID string, action models.ApprovalAction, comments string) (financeapimodels.FinanceRequestView, error) {
	logger := i.getLogger(requestID).WithField("action", action)
	now := time.Now()
	var jobs []notifyJob
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		frStore := frequeststore.NewInstance(tx)
		ledger := approvalledger.NewHandlerWithTx(tx)

		rec, err := frStore.GetByIDLite(requestID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NewNotFoundError("finance request")
		}
		level, ok := rec.Status.PendingLevel()
		if !ok {
			return models.NewInvalidTransitionError(rec.Status, string(action))
		}
		if !rbac.Instance.CanActAtLevel(actor.Role, level) {
			return models.NewAuthorizationError("role %v may not act at the %v stage", actor.Role, level)
		}
		if rec.RequestorID == actor.ID {
			return models.NewAuthorizationError("requestor may not act on their own request")
		}
		trans, err := i.machine.OnDecision(rec.Status, action)
		if err != nil {
			return err
		}
		result, err := ledger.CompleteActiveStep(rec.ID, action, actor.ID, comments, now)
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":        trans.Status,
			"current_level": currentLevelValue(trans),
		}
		if trans.Terminal {
			updMap["completed_at"] = now
		}
		rows, err := frStore.UpdateWhereStatus(rec.ID, rec.Status, updMap)
		if err != nil {
			return err
		}
		if rows == 0 {
			return models.ErrConcurrencyConflict
		}

		jobs = i.decisionNotifications(*rec, level, trans, result, actor)
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("failed to apply approval decision")
		return financeapimodels.FinanceRequestView{}, err
	}
	logger.Info("approval decision applied")
	i.dispatch(requestID, jobs)
	return i.loadView(requestID)
}

func (i impl) decisionNotifications(rec dbmodels.FinanceRequest, level models.ApprovalLevel, trans Transition, result approvalledger.CompletionResult, actor models.Actor) []notifyJob {
	actorName := actor.Name
	if actorName == "" {
		actorName = actor.Role.ToHuman()
	}
	switch trans.Status {
	case models.RequestStatusRejected:
		return []notifyJob{
			{userID: rec.RequestorID, data: models.GetNotifyRejected(rec.ReferenceNumber, level, actorName)},
		}
	case models.RequestStatusSentBack:
		return []notifyJob{
			{userID: rec.RequestorID, data: models.GetNotifySentBack(rec.ReferenceNumber, level, actorName)},
		}
	case models.RequestStatusDisbursed:
		return []notifyJob{
			{userID: rec.RequestorID, data: models.GetNotifyDisbursed(rec.ReferenceNumber)},
		}
	case models.RequestStatusApproved:
		return []notifyJob{
			{userID: rec.RequestorID, data: models.GetNotifyApproved(rec.ReferenceNumber, level, actorName)},
		}
	}
	jobs := []notifyJob{
		{userID: rec.RequestorID, data: models.GetNotifyApproved(rec.ReferenceNumber, level, actorName)},
	}
	if result.NextLevel != nil {
		jobs = append(jobs, notifyJob{
			role: i.levelRole(*result.NextLevel),
			data: models.GetNotifyApprovalPending(rec.ReferenceNumber, *result.NextLevel),
		})
	}
	return jobs
}

func (i impl) Resubmit(actor models.Actor, requestID string) (financeapimodels.FinanceRequestView, error) {
	logger := i.getLogger(requestID)
	now := time.Now()
	var jobs []notifyJob
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		frStore := frequeststore.NewInstance(tx)
		ledger := approvalledger.NewHandlerWithTx(tx)

		rec, err := frStore.GetByIDLite(requestID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NewNotFoundError("finance request")
		}
		if rec.RequestorID != actor.ID && !actor.Role.IsAdmin() {
			return models.NewAuthorizationError("only the requestor may resubmit the request")
		}
		trans, err := i.machine.OnResubmit(rec.Status, rec.ResubmissionCount)
		if err != nil {
			return err
		}
		newCount := rec.ResubmissionCount + 1
		updMap := map[string]interface{}{
			"status":             trans.Status,
			"current_level":      currentLevelValue(trans),
			"resubmission_count": newCount,
		}
		if trans.Status == models.RequestStatusAdminReview {
			rows, err := frStore.UpdateWhereStatus(rec.ID, rec.Status, updMap)
			if err != nil {
				return err
			}
			if rows == 0 {
				return models.ErrConcurrencyConflict
			}
			jobs = []notifyJob{
				{userID: rec.RequestorID, data: models.GetNotifyAdminReview(rec.ReferenceNumber)},
				{role: models.RoleAdmin, data: models.GetNotifyAdminReview(rec.ReferenceNumber)},
			}
			return nil
		}

		generation := rec.LedgerGeneration + 1
		firstLevel, err := ledger.ResetLedger(rec.ID, rec.PaymentType, generation, now)
		if err != nil {
			return err
		}
		updMap["ledger_generation"] = generation
		updMap["submitted_at"] = now
		rows, err := frStore.UpdateWhereStatus(rec.ID, rec.Status, updMap)
		if err != nil {
			return err
		}
		if rows == 0 {
			return models.ErrConcurrencyConflict
		}
		jobs = []notifyJob{
			{userID: rec.RequestorID, data: models.GetNotifyResubmitted(rec.ReferenceNumber, firstLevel)},
			{role: i.levelRole(firstLevel), data: models.GetNotifyApprovalPending(rec.ReferenceNumber, firstLevel)},
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("failed to resubmit finance request")
		return financeapimodels.FinanceRequestView{}, err
	}
	logger.Info("finance request resubmitted")
	i.dispatch(requestID, jobs)
	return i.loadView(requestID)
}

func (i impl) AdminReview(actor models.Actor, requestID string, data financeapimodels.AdminReviewData) (financeapimodels.FinanceRequestView, error) {
	logger := i.getLogger(requestID).WithField("decision", data.Decision)
	if !rbac.Instance.HasPermission(actor.Role, models.PermApprovalOverride) {
		return financeapimodels.FinanceRequestView{}, models.NewAuthorizationError("role %v may not override the approval chain", actor.Role)
	}
	now := time.Now()
	var jobs []notifyJob
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		frStore := frequeststore.NewInstance(tx)
		ledger := approvalledger.NewHandlerWithTx(tx)

		rec, err := frStore.GetByIDLite(requestID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.NewNotFoundError("finance request")
		}
		trans, err := i.machine.OnAdminReview(rec.Status, data.Decision)
		if err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":        trans.Status,
			"current_level": currentLevelValue(trans),
		}
		switch data.Decision {
		case models.AdminDecisionApprove:
			err = ledger.OverrideClose(rec.ID, rec.LedgerGeneration, models.ActionApproved, actor.ID, data.Comments, now)
			if err != nil {
				return err
			}
			updMap["completed_at"] = now
			jobs = []notifyJob{
				{userID: rec.RequestorID, data: models.GetNotifyDisbursed(rec.ReferenceNumber)},
			}
		case models.AdminDecisionReject:
			err = ledger.OverrideClose(rec.ID, rec.LedgerGeneration, models.ActionRejected, actor.ID, data.Comments, now)
			if err != nil {
				return err
			}
			updMap["completed_at"] = now
			jobs = []notifyJob{
				{userID: rec.RequestorID, data: models.GetNotifyRejected(rec.ReferenceNumber, models.LevelAdminReview, actor.Role.ToHuman())},
			}
		case models.AdminDecisionAllowResubmission:
			err = ledger.OverrideClose(rec.ID, rec.LedgerGeneration, models.ActionSentBack, actor.ID, data.Comments, now)
			if err != nil {
				return err
			}
			// fresh resubmission budget
			updMap["resubmission_count"] = 0
			jobs = []notifyJob{
				{userID: rec.RequestorID, data: models.GetNotifySentBack(rec.ReferenceNumber, models.LevelAdminReview, actor.Role.ToHuman())},
			}
		}
		rows, err := frStore.UpdateWhereStatus(rec.ID, rec.Status, updMap)
		if err != nil {
			return err
		}
		if rows == 0 {
			return models.ErrConcurrencyConflict
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("failed to apply admin review")
		return financeapimodels.FinanceRequestView{}, err
	}
	logger.Info("admin review applied")
	i.dispatch(requestID, jobs)
	return i.loadView(requestID)
}

func (i impl) PendingForRole(role models.UserRole) ([]financeapimodels.PendingApprovalView, error) {
	steps, err := i.stepStore.ListActiveByRole(role)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(steps))
	for _, step := range steps {
		ids = append(ids, step.RequestID)
	}
	recs, err := i.frStore.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]dbmodels.FinanceRequest, len(recs))
	for _, rec := range recs {
		byID[rec.ID] = rec
	}
	now := time.Now()
	list := make([]financeapimodels.PendingApprovalView, 0, len(steps))
	for _, step := range steps {
		rec, ok := byID[step.RequestID]
		if !ok {
			continue
		}
		view := financeapimodels.PendingApprovalView{
			RequestID:       rec.ID,
			ReferenceNumber: rec.ReferenceNumber,
			VendorName:      rec.VendorName,
			TotalAmount:     rec.TotalAmount,
			Currency:        rec.Currency,
			Level:           step.Level,
			SlaDueAt:        step.SlaDueAt,
		}
		if step.SlaDueAt != nil {
			view.SlaStatus = slaclock.Instance.Status(*step.SlaDueAt, now, false)
		}
		list = append(list, view)
	}
	return list, nil
}

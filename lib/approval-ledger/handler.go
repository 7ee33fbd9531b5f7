package approvalledger

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"finance-flow-backend/config"
	"finance-flow-backend/db"
	approvalactionstore "finance-flow-backend/lib/approval-ledger/action-store"
	slalogstore "finance-flow-backend/lib/approval-ledger/sla-log-store"
	approvalstepstore "finance-flow-backend/lib/approval-ledger/store"
	slaclock "finance-flow-backend/lib/sla-clock"
	"finance-flow-backend/models"
	dbmodels "finance-flow-backend/models/db"
)

const overrideCommentPrefix = "[OVERRIDE] "

// CompletionResult describes what happened to the ledger after the active
// step was completed.
type CompletionResult struct {
	CompletedStep dbmodels.ApprovalStep
	NextLevel     *models.ApprovalLevel
	SlaCompliant  bool
}

type Provider interface {
	// CreateLedger creates the full ordered step set for a submission,
	// activates step 0 and opens its SLA log.
	CreateLedger(requestID string, paymentType models.PaymentType, generation int, now time.Time) (firstLevel models.ApprovalLevel, err error)
	// CompleteActiveStep closes the active step with the given outcome,
	// appends the audit record and, on approval, activates the next step.
	CompleteActiveStep(requestID string, outcome models.ApprovalAction, actorID, comments string, now time.Time) (CompletionResult, error)
	// ResetLedger removes the current steps and SLA logs and recreates the
	// ledger under a new generation. Action records are kept under their old
	// generation as the audit trail.
	ResetLedger(requestID string, paymentType models.PaymentType, newGeneration int, now time.Time) (firstLevel models.ApprovalLevel, err error)
	// OverrideClose completes (approve) or skips (reject) every pending step
	// in one batch and appends a single override-tagged action record. A
	// SENT_BACK outcome only appends the record, leaving the steps pending
	// for the next ledger reset. With no pending steps left the record
	// attaches to the last step of the generation.
	OverrideClose(requestID string, generation int, outcome models.ApprovalAction, actorID, comments string, now time.Time) error
	ActiveStep(requestID string) (*dbmodels.ApprovalStep, error)
	Steps(requestID string, generation int) ([]dbmodels.ApprovalStep, error)
	History(requestID string) ([]dbmodels.ApprovalActionRecord, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       approvalstepstore.NewInstance(db.DB),
		actionStore: approvalactionstore.NewInstance(db.DB),
		slaLogStore: slalogstore.NewInstance(db.DB),
		clock:       slaclock.Instance,
		levels:      config.Conf.Workflow.Levels,
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store:       approvalstepstore.NewInstance(tx),
		actionStore: approvalactionstore.NewInstance(tx),
		slaLogStore: slalogstore.NewInstance(tx),
		clock:       slaclock.Instance,
		levels:      config.Conf.Workflow.Levels,
	}
}

type impl struct {
	store       approvalstepstore.Provider
	actionStore approvalactionstore.Provider
	slaLogStore slalogstore.Provider
	clock       slaclock.Provider
	levels      []config.WorkflowLevel
}

func (i impl) getLogger(requestID string) *log.Entry {
	return log.WithField("request_id", requestID)
}

func (i impl) CreateLedger(requestID string, paymentType models.PaymentType, generation int, now time.Time) (models.ApprovalLevel, error) {
	if len(i.levels) == 0 {
		return "", errors.New("approval chain is not configured")
	}
	for seq, lvl := range i.levels {
		level := models.ApprovalLevel(lvl.Level)
		step := dbmodels.ApprovalStep{
			RequestID:        requestID,
			Level:            level,
			Sequence:         seq,
			AssignedToRole:   models.UserRole(lvl.Role),
			Status:           models.StepStatusPending,
			SlaHours:         i.clock.Hours(level, paymentType),
			LedgerGeneration: generation,
		}
		if seq == 0 {
			dueAt := i.clock.DueAt(level, paymentType, now)
			step.IsActive = true
			step.StartedAt = &now
			step.SlaDueAt = &dueAt
		}
		stepID, err := i.store.Create(step)
		if err != nil {
			return "", errors.Wrapf(err, "failed to create approval step, level=%v", level)
		}
		if seq == 0 {
			_, err = i.slaLogStore.Create(dbmodels.SLALog{
				RequestID:        requestID,
				StepID:           stepID,
				Level:            level,
				SlaHours:         step.SlaHours,
				SlaDueAt:         *step.SlaDueAt,
				LedgerGeneration: generation,
			})
			if err != nil {
				return "", errors.Wrap(err, "failed to create SLA log")
			}
		}
	}
	return models.ApprovalLevel(i.levels[0].Level), nil
}

func (i impl) CompleteActiveStep(requestID string, outcome models.ApprovalAction, actorID, comments string, now time.Time) (CompletionResult, error) {
	step, err := i.store.GetActive(requestID)
	if err != nil {
		return CompletionResult{}, err
	}
	if step == nil {
		return CompletionResult{}, models.ErrNoActiveStep
	}
	slaCompliant := step.SlaDueAt == nil || !now.After(*step.SlaDueAt)
	rows, err := i.store.CompleteActive(step.ID, map[string]interface{}{
		"status":       models.StepStatusCompleted,
		"is_active":    false,
		"completed_at": now,
		"sla_breached": !slaCompliant,
	})
	if err != nil {
		return CompletionResult{}, err
	}
	if rows == 0 {
		// lost the race against a concurrent action on the same step
		return CompletionResult{}, models.ErrConcurrencyConflict
	}
	if !slaCompliant {
		if _, err = i.slaLogStore.MarkBreached(step.ID, now, nil); err != nil {
			return CompletionResult{}, err
		}
	}

	responseTime := 0.0
	if step.StartedAt != nil {
		responseTime = now.Sub(*step.StartedAt).Hours()
	}
	_, err = i.actionStore.Create(dbmodels.ApprovalActionRecord{
		RequestID:         requestID,
		StepID:            step.ID,
		ActorID:           actorID,
		Action:            outcome,
		Comments:          comments,
		SlaCompliant:      slaCompliant,
		ResponseTimeHours: responseTime,
		LedgerGeneration:  step.LedgerGeneration,
	})
	if err != nil {
		return CompletionResult{}, errors.Wrap(err, "failed to append approval action record")
	}

	step.Status = models.StepStatusCompleted
	step.IsActive = false
	step.CompletedAt = &now
	step.SlaBreached = !slaCompliant
	result := CompletionResult{
		CompletedStep: *step,
		SlaCompliant:  slaCompliant,
	}
	if outcome != models.ActionApproved {
		return result, nil
	}

	next, err := i.store.GetBySequence(requestID, step.LedgerGeneration, step.Sequence+1)
	if err != nil {
		return CompletionResult{}, err
	}
	if next == nil {
		// last level completed, request becomes terminal
		return result, nil
	}
	dueAt := now.Add(time.Duration(next.SlaHours) * time.Hour)
	err = i.store.Update(next.ID, map[string]interface{}{
		"is_active":  true,
		"started_at": now,
		"sla_due_at": dueAt,
	})
	if err != nil {
		return CompletionResult{}, errors.Wrap(err, "failed to activate next approval step")
	}
	_, err = i.slaLogStore.Create(dbmodels.SLALog{
		RequestID:        requestID,
		StepID:           next.ID,
		Level:            next.Level,
		SlaHours:         next.SlaHours,
		SlaDueAt:         dueAt,
		LedgerGeneration: next.LedgerGeneration,
	})
	if err != nil {
		return CompletionResult{}, errors.Wrap(err, "failed to create SLA log")
	}
	result.NextLevel = &next.Level
	return result, nil
}

func (i impl) ResetLedger(requestID string, paymentType models.PaymentType, newGeneration int, now time.Time) (models.ApprovalLevel, error) {
	err := i.store.DeleteByRequest(requestID)
	if err != nil {
		return "", errors.Wrap(err, "failed to delete approval steps")
	}
	err = i.slaLogStore.DeleteByRequest(requestID)
	if err != nil {
		return "", errors.Wrap(err, "failed to delete SLA logs")
	}
	return i.CreateLedger(requestID, paymentType, newGeneration, now)
}

func (i impl) OverrideClose(requestID string, generation int, outcome models.ApprovalAction, actorID, comments string, now time.Time) error {
	pending, err := i.store.ListPending(requestID, generation)
	if err != nil {
		return err
	}
	stepStatus := models.StepStatusCompleted
	if outcome == models.ActionRejected {
		stepStatus = models.StepStatusSkipped
	}
	closeSteps := outcome != models.ActionSentBack
	var target *dbmodels.ApprovalStep
	for idx := range pending {
		step := pending[idx]
		if step.IsActive {
			target = &pending[idx]
		}
		if !closeSteps {
			continue
		}
		err = i.store.Update(step.ID, map[string]interface{}{
			"status":       stepStatus,
			"is_active":    false,
			"completed_at": now,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to close approval step, step_id=%v", step.ID)
		}
	}
	if target == nil && len(pending) > 0 {
		target = &pending[0]
	}
	if target == nil {
		// a request sent back at the last level leaves no pending steps; the
		// override must still resolve it, so the record attaches to the last
		// step of the generation instead
		steps, listErr := i.store.List(requestID, generation)
		if listErr != nil {
			return listErr
		}
		if len(steps) > 0 {
			target = &steps[len(steps)-1]
		}
	}
	stepID := ""
	if target != nil {
		stepID = target.ID
	} else {
		i.getLogger(requestID).Warn("override on a request without steps, audit record is attached to no step")
	}
	_, err = i.actionStore.Create(dbmodels.ApprovalActionRecord{
		RequestID:        requestID,
		StepID:           stepID,
		ActorID:          actorID,
		Action:           outcome,
		Comments:         overrideCommentPrefix + comments,
		IsOverride:       true,
		SlaCompliant:     true,
		LedgerGeneration: generation,
	})
	if err != nil {
		return errors.Wrap(err, "failed to append override action record")
	}
	return nil
}

func (i impl) ActiveStep(requestID string) (*dbmodels.ApprovalStep, error) {
	return i.store.GetActive(requestID)
}

func (i impl) Steps(requestID string, generation int) ([]dbmodels.ApprovalStep, error) {
	return i.store.List(requestID, generation)
}

func (i impl) History(requestID string) ([]dbmodels.ApprovalActionRecord, error) {
	return i.actionStore.ListByRequest(requestID)
}

package slasweep

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"finance-flow-backend/config"
	slalogstore "finance-flow-backend/lib/approval-ledger/sla-log-store"
	approvalstepstore "finance-flow-backend/lib/approval-ledger/store"
	"finance-flow-backend/db"
	frequeststore "finance-flow-backend/lib/finance-request/store"
	"finance-flow-backend/lib/notification"
	slaclock "finance-flow-backend/lib/sla-clock"
	"finance-flow-backend/lib/utils/helpers"
	"finance-flow-backend/models"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	// Sweep flags overdue active steps as breached and sends warnings for
	// steps past the elapsed threshold. Safe to run concurrently, each breach
	// is claimed with a conditional update.
	Sweep(ctx context.Context, now time.Time)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		stepStore:    approvalstepstore.NewInstance(db.DB),
		slaLogStore:  slalogstore.NewInstance(db.DB),
		frStore:      frequeststore.NewInstance(db.DB),
		clock:        slaclock.Instance,
		warnSuppress: time.Duration(config.Conf.Sla.WarnSuppressHours) * time.Hour,
	}
}

type impl struct {
	stepStore    approvalstepstore.Provider
	slaLogStore  slalogstore.Provider
	frStore      frequeststore.Provider
	clock        slaclock.Provider
	warnSuppress time.Duration
}

func (i impl) Sweep(ctx context.Context, now time.Time) {
	i.sweepBreaches(ctx, now)
	i.sweepWarnings(ctx, now)
}

func (i impl) sweepBreaches(ctx context.Context, now time.Time) {
	logger := log.WithField("sweep", "breach")
	steps, err := i.stepStore.ListActiveDue(now)
	if err != nil {
		logger.WithError(err).Error("failed to list overdue steps")
		return
	}
	for _, step := range steps {
		if helpers.IsContextDone(ctx) {
			return
		}
		stepLogger := logger.WithField("step_id", step.ID)
		rows, err := i.stepStore.MarkBreached(step.ID)
		if err != nil {
			stepLogger.WithError(err).Error("failed to flag step as breached")
			continue
		}
		if rows == 0 {
			// another sweep pass claimed this breach
			continue
		}
		_, err = i.slaLogStore.MarkBreached(step.ID, now, []string{string(step.AssignedToRole)})
		if err != nil {
			stepLogger.WithError(err).Error("failed to update SLA log")
			continue
		}
		rec, err := i.frStore.GetByIDLite(step.RequestID)
		if err != nil || rec == nil {
			stepLogger.WithError(err).Error("failed to load request for breach notification")
			continue
		}
		stepLogger.WithField("request_id", rec.ID).Warn("SLA breached")
		data := models.GetNotifySLABreach(rec.ReferenceNumber, step.Level)
		notification.Instance.NotifyRole(step.AssignedToRole, &rec.ID, data)
		notification.Instance.Notify(rec.RequestorID, &rec.ID, data)
	}
}

func (i impl) sweepWarnings(ctx context.Context, now time.Time) {
	logger := log.WithField("sweep", "warning")
	steps, err := i.stepStore.ListActiveNotBreached(now)
	if err != nil {
		logger.WithError(err).Error("failed to list active steps")
		return
	}
	for _, step := range steps {
		if helpers.IsContextDone(ctx) {
			return
		}
		if !i.warnDue(step, now) {
			continue
		}
		stepLogger := logger.WithField("step_id", step.ID)
		slaLog, err := i.slaLogStore.GetByStep(step.ID)
		if err != nil {
			stepLogger.WithError(err).Error("failed to load SLA log")
			continue
		}
		if slaLog != nil && slaLog.WarnedAt != nil && now.Sub(*slaLog.WarnedAt) < i.warnSuppress {
			continue
		}
		err = i.slaLogStore.MarkWarned(step.ID, now)
		if err != nil {
			stepLogger.WithError(err).Error("failed to record SLA warning")
			continue
		}
		rec, err := i.frStore.GetByIDLite(step.RequestID)
		if err != nil || rec == nil {
			stepLogger.WithError(err).Error("failed to load request for warning notification")
			continue
		}
		notification.Instance.NotifyRole(step.AssignedToRole, &rec.ID, models.GetNotifySLAWarning(rec.ReferenceNumber, step.Level))
	}
}

func (i impl) warnDue(step dbmodels.ApprovalStep, now time.Time) bool {
	if step.StartedAt == nil || step.SlaDueAt == nil {
		return false
	}
	return i.clock.WarnThresholdReached(*step.StartedAt, *step.SlaDueAt, now)
}

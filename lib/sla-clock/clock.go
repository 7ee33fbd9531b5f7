package slaclock

import (
	"time"

	"finance-flow-backend/config"
	"finance-flow-backend/models"
)

type Provider interface {
	// Hours returns the allotted SLA hours for a level given the payment type.
	Hours(level models.ApprovalLevel, paymentType models.PaymentType) int
	// DueAt returns the deadline for a step activated at startedAt.
	DueAt(level models.ApprovalLevel, paymentType models.PaymentType, startedAt time.Time) time.Time
	// Status classifies a deadline for dashboard display. The at-risk window
	// is the fixed pre-deadline alert window, distinct from the warning
	// threshold used by the sweep.
	Status(dueAt time.Time, now time.Time, completed bool) models.SLAStatus
	// WarnThresholdReached reports whether the elapsed share of the SLA has
	// crossed the notification warning line (e.g. 80%).
	WarnThresholdReached(startedAt, dueAt, now time.Time) bool
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		config.Conf.Workflow.Levels,
		time.Duration(config.Conf.Sla.AtRiskWindowHours)*time.Hour,
		config.Conf.Sla.WarnElapsedPercent,
	)
}

func NewInstance(levels []config.WorkflowLevel, atRiskWindow time.Duration, warnElapsedPercent int) Provider {
	hoursByLevel := map[models.ApprovalLevel]config.WorkflowLevel{}
	for _, l := range levels {
		hoursByLevel[models.ApprovalLevel(l.Level)] = l
	}
	return impl{
		hoursByLevel:       hoursByLevel,
		atRiskWindow:       atRiskWindow,
		warnElapsedPercent: warnElapsedPercent,
	}
}

type impl struct {
	hoursByLevel       map[models.ApprovalLevel]config.WorkflowLevel
	atRiskWindow       time.Duration
	warnElapsedPercent int
}

func (i impl) Hours(level models.ApprovalLevel, paymentType models.PaymentType) int {
	l, ok := i.hoursByLevel[level]
	if !ok {
		return 0
	}
	if paymentType.IsCritical() && l.CriticalSlaHours > 0 {
		return l.CriticalSlaHours
	}
	return l.SlaHours
}

func (i impl) DueAt(level models.ApprovalLevel, paymentType models.PaymentType, startedAt time.Time) time.Time {
	return startedAt.Add(time.Duration(i.Hours(level, paymentType)) * time.Hour)
}

func (i impl) Status(dueAt time.Time, now time.Time, completed bool) models.SLAStatus {
	if completed {
		return models.SLACompleted
	}
	if now.After(dueAt) {
		return models.SLABreached
	}
	if dueAt.Sub(now) <= i.atRiskWindow {
		return models.SLAAtRisk
	}
	return models.SLAOnTrack
}

func (i impl) WarnThresholdReached(startedAt, dueAt, now time.Time) bool {
	allotted := dueAt.Sub(startedAt)
	if allotted <= 0 {
		return false
	}
	elapsed := now.Sub(startedAt)
	return elapsed*100 >= allotted*time.Duration(i.warnElapsedPercent)
}

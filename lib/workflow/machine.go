package workflow

import (
	"finance-flow-backend/config"
	"finance-flow-backend/models"
)

// Transition is the computed outcome of a lifecycle event. CurrentLevel is nil
// for any status that is not PENDING_<LEVEL>.
type Transition struct {
	Status       models.RequestStatus
	CurrentLevel *models.ApprovalLevel
	Terminal     bool
}

// Machine computes status transitions from the configured approval chain.
// It holds no storage and can be exercised without a database.
type Machine struct {
	levels           []config.WorkflowLevel
	maxResubmissions int
}

func NewMachine(cfg config.WorkflowConfig) Machine {
	return Machine{
		levels:           cfg.Levels,
		maxResubmissions: cfg.MaxResubmissions,
	}
}

func (m Machine) firstLevel() models.ApprovalLevel {
	return models.ApprovalLevel(m.levels[0].Level)
}

func (m Machine) levelIndex(level models.ApprovalLevel) int {
	for i, l := range m.levels {
		if models.ApprovalLevel(l.Level) == level {
			return i
		}
	}
	return -1
}

// terminalStatus resolves what completing the whole chain means: a chain
// ending in DISBURSEMENT produces DISBURSED, any other final level produces
// APPROVED.
func (m Machine) terminalStatus(lastLevel models.ApprovalLevel) models.RequestStatus {
	if lastLevel == models.LevelDisbursement {
		return models.RequestStatusDisbursed
	}
	return models.RequestStatusApproved
}

func pendingAt(level models.ApprovalLevel) Transition {
	return Transition{
		Status:       models.PendingStatus(level),
		CurrentLevel: &level,
	}
}

func (m Machine) OnSubmit(status models.RequestStatus) (Transition, error) {
	if !status.AllowSubmit() {
		return Transition{}, models.NewInvalidTransitionError(status, "submit")
	}
	return pendingAt(m.firstLevel()), nil
}

func (m Machine) OnDecision(status models.RequestStatus, action models.ApprovalAction) (Transition, error) {
	level, ok := status.PendingLevel()
	if !ok {
		return Transition{}, models.NewInvalidTransitionError(status, string(action))
	}
	idx := m.levelIndex(level)
	if idx < 0 {
		return Transition{}, models.NewInvalidTransitionError(status, string(action))
	}
	switch action {
	case models.ActionApproved:
		if idx == len(m.levels)-1 {
			return Transition{Status: m.terminalStatus(level), Terminal: true}, nil
		}
		return pendingAt(models.ApprovalLevel(m.levels[idx+1].Level)), nil
	case models.ActionRejected:
		return Transition{Status: models.RequestStatusRejected, Terminal: true}, nil
	case models.ActionSentBack:
		return Transition{Status: models.RequestStatusSentBack}, nil
	}
	return Transition{}, models.NewInvalidTransitionError(status, string(action))
}

// OnResubmit restarts the chain from the first level. A request that has
// exhausted its resubmission budget is parked for admin review instead.
func (m Machine) OnResubmit(status models.RequestStatus, resubmissionCount int) (Transition, error) {
	if !status.AllowResubmit() {
		return Transition{}, models.NewInvalidTransitionError(status, "resubmit")
	}
	if resubmissionCount+1 > m.maxResubmissions {
		return Transition{Status: models.RequestStatusAdminReview}, nil
	}
	return pendingAt(m.firstLevel()), nil
}

func (m Machine) OnAdminReview(status models.RequestStatus, decision models.AdminDecision) (Transition, error) {
	if status != models.RequestStatusAdminReview {
		return Transition{}, models.NewInvalidTransitionError(status, string(decision))
	}
	switch decision {
	case models.AdminDecisionApprove:
		// the override is an escape hatch that completes the whole chain,
		// so it lands on the disbursed terminal directly
		return Transition{Status: models.RequestStatusDisbursed, Terminal: true}, nil
	case models.AdminDecisionReject:
		return Transition{Status: models.RequestStatusRejected, Terminal: true}, nil
	case models.AdminDecisionAllowResubmission:
		// back to the requestor with a fresh resubmission budget
		return Transition{Status: models.RequestStatusSentBack}, nil
	}
	return Transition{}, models.NewInvalidTransitionError(status, string(decision))
}

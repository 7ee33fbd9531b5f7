package approvalledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finance-flow-backend/models"
	dbmodels "finance-flow-backend/models/db"
)

type fakeStepStore struct {
	steps   []dbmodels.ApprovalStep
	updates map[string]map[string]interface{}
}

func newFakeStepStore(steps ...dbmodels.ApprovalStep) *fakeStepStore {
	return &fakeStepStore{
		steps:   steps,
		updates: map[string]map[string]interface{}{},
	}
}

func (f *fakeStepStore) Create(rec dbmodels.ApprovalStep) (string, error) { return rec.ID, nil }
func (f *fakeStepStore) GetByID(string) (*dbmodels.ApprovalStep, error)  { return nil, nil }
func (f *fakeStepStore) GetActive(string) (*dbmodels.ApprovalStep, error) {
	return nil, nil
}
func (f *fakeStepStore) GetBySequence(string, int, int) (*dbmodels.ApprovalStep, error) {
	return nil, nil
}
func (f *fakeStepStore) CompleteActive(string, map[string]interface{}) (int64, error) {
	return 0, nil
}
func (f *fakeStepStore) Update(id string, updMap map[string]interface{}) error {
	f.updates[id] = updMap
	return nil
}
func (f *fakeStepStore) List(requestID string, generation int) ([]dbmodels.ApprovalStep, error) {
	list := []dbmodels.ApprovalStep{}
	for _, step := range f.steps {
		if step.RequestID == requestID && step.LedgerGeneration == generation {
			list = append(list, step)
		}
	}
	return list, nil
}
func (f *fakeStepStore) ListPending(requestID string, generation int) ([]dbmodels.ApprovalStep, error) {
	list := []dbmodels.ApprovalStep{}
	for _, step := range f.steps {
		if step.RequestID == requestID && step.LedgerGeneration == generation && step.Status == models.StepStatusPending {
			list = append(list, step)
		}
	}
	return list, nil
}
func (f *fakeStepStore) ListActiveDue(time.Time) ([]dbmodels.ApprovalStep, error) {
	return nil, nil
}
func (f *fakeStepStore) ListActiveNotBreached(time.Time) ([]dbmodels.ApprovalStep, error) {
	return nil, nil
}
func (f *fakeStepStore) ListActiveByRole(models.UserRole) ([]dbmodels.ApprovalStep, error) {
	return nil, nil
}
func (f *fakeStepStore) DeleteByRequest(string) error       { return nil }
func (f *fakeStepStore) MarkBreached(string) (int64, error) { return 0, nil }

type fakeActionStore struct {
	records []dbmodels.ApprovalActionRecord
}

func (f *fakeActionStore) Create(rec dbmodels.ApprovalActionRecord) (string, error) {
	f.records = append(f.records, rec)
	return rec.ID, nil
}
func (f *fakeActionStore) ListByRequest(string) ([]dbmodels.ApprovalActionRecord, error) {
	return f.records, nil
}

func step(id string, seq int, status models.StepStatus, active bool) dbmodels.ApprovalStep {
	rec := dbmodels.ApprovalStep{
		Sequence:         seq,
		Status:           status,
		IsActive:         active,
		LedgerGeneration: 1,
	}
	rec.ID = id
	rec.RequestID = "req-1"
	return rec
}

func TestOverrideClose(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	t.Run(`approve completes every pending step`, func(t *testing.T) {
		steps := newFakeStepStore(
			step("s1", 0, models.StepStatusCompleted, false),
			step("s2", 1, models.StepStatusPending, true),
			step("s3", 2, models.StepStatusPending, false),
		)
		actions := &fakeActionStore{}
		ledger := impl{store: steps, actionStore: actions}

		err := ledger.OverrideClose("req-1", 1, models.ActionApproved, "admin-1", "ok", now)
		require.Nil(t, err)
		require.Equal(t, models.StepStatusCompleted, steps.updates["s2"]["status"])
		require.Equal(t, models.StepStatusCompleted, steps.updates["s3"]["status"])
		require.Len(t, actions.records, 1)
		require.True(t, actions.records[0].IsOverride)
		require.Equal(t, "s2", actions.records[0].StepID)
		require.Equal(t, "[OVERRIDE] ok", actions.records[0].Comments)
	})

	t.Run(`reject skips pending steps`, func(t *testing.T) {
		steps := newFakeStepStore(
			step("s1", 0, models.StepStatusPending, false),
			step("s2", 1, models.StepStatusPending, false),
		)
		actions := &fakeActionStore{}
		ledger := impl{store: steps, actionStore: actions}

		err := ledger.OverrideClose("req-1", 1, models.ActionRejected, "admin-1", "duplicate", now)
		require.Nil(t, err)
		require.Equal(t, models.StepStatusSkipped, steps.updates["s1"]["status"])
		require.Equal(t, models.StepStatusSkipped, steps.updates["s2"]["status"])
		require.Len(t, actions.records, 1)
		// no step is flagged active, the record attaches to the first pending
		require.Equal(t, "s1", actions.records[0].StepID)
	})

	t.Run(`sent back only appends the record`, func(t *testing.T) {
		steps := newFakeStepStore(
			step("s1", 0, models.StepStatusPending, true),
		)
		actions := &fakeActionStore{}
		ledger := impl{store: steps, actionStore: actions}

		err := ledger.OverrideClose("req-1", 1, models.ActionSentBack, "admin-1", "fix the vendor", now)
		require.Nil(t, err)
		require.Empty(t, steps.updates)
		require.Len(t, actions.records, 1)
		require.Equal(t, models.ActionSentBack, actions.records[0].Action)
	})

	t.Run(`resolves a generation with no pending steps left`, func(t *testing.T) {
		// a request sent back at the last level completes every step of the
		// generation; the admin decision must still go through
		steps := newFakeStepStore(
			step("s1", 0, models.StepStatusCompleted, false),
			step("s2", 1, models.StepStatusCompleted, false),
			step("s3", 2, models.StepStatusCompleted, false),
		)
		actions := &fakeActionStore{}
		ledger := impl{store: steps, actionStore: actions}

		err := ledger.OverrideClose("req-1", 1, models.ActionApproved, "admin-1", "resolved after review", now)
		require.Nil(t, err)
		require.Empty(t, steps.updates)
		require.Len(t, actions.records, 1)
		require.True(t, actions.records[0].IsOverride)
		require.Equal(t, "s3", actions.records[0].StepID)
		require.Equal(t, "[OVERRIDE] resolved after review", actions.records[0].Comments)
	})

	t.Run(`request without any steps still gets the audit record`, func(t *testing.T) {
		steps := newFakeStepStore()
		actions := &fakeActionStore{}
		ledger := impl{store: steps, actionStore: actions}

		err := ledger.OverrideClose("req-1", 1, models.ActionRejected, "admin-1", "never submitted cleanly", now)
		require.Nil(t, err)
		require.Len(t, actions.records, 1)
		require.Equal(t, "", actions.records[0].StepID)
	})
}

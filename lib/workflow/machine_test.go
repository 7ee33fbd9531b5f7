package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finance-flow-backend/config"
	"finance-flow-backend/models"
)

func testWorkflowConfig() config.WorkflowConfig {
	return config.WorkflowConfig{
		MaxResubmissions: 3,
		Levels: []config.WorkflowLevel{
			{Level: string(models.LevelFinanceVetting), Role: string(models.RoleFinanceTeam), SlaHours: 72, CriticalSlaHours: 24},
			{Level: string(models.LevelFinancePlanner), Role: string(models.RoleFinanceController), SlaHours: 24},
			{Level: string(models.LevelFinanceController), Role: string(models.RoleFinanceController), SlaHours: 24},
			{Level: string(models.LevelDirector), Role: string(models.RoleDirector), SlaHours: 24},
			{Level: string(models.LevelMD), Role: string(models.RoleMD), SlaHours: 24},
			{Level: string(models.LevelDisbursement), Role: string(models.RoleFinanceTeam), SlaHours: 24},
		},
	}
}

func TestMachine(t *testing.T) {
	m := NewMachine(testWorkflowConfig())

	t.Run(`submit moves draft to the first level`, func(t *testing.T) {
		tr, err := m.OnSubmit(models.RequestStatusDraft)
		require.Nil(t, err)
		require.Equal(t, models.PendingStatus(models.LevelFinanceVetting), tr.Status)
		require.NotNil(t, tr.CurrentLevel)
		require.Equal(t, models.LevelFinanceVetting, *tr.CurrentLevel)
		require.False(t, tr.Terminal)
	})

	t.Run(`submit rejected outside draft`, func(t *testing.T) {
		for _, status := range []models.RequestStatus{
			models.PendingStatus(models.LevelDirector),
			models.RequestStatusSentBack,
			models.RequestStatusApproved,
			models.RequestStatusRejected,
			models.RequestStatusAdminReview,
		} {
			_, err := m.OnSubmit(status)
			require.NotNil(t, err)
			var itErr *models.InvalidTransitionError
			require.ErrorAs(t, err, &itErr)
		}
	})

	t.Run(`approve advances through the chain`, func(t *testing.T) {
		status := models.PendingStatus(models.LevelFinanceVetting)
		expected := []models.ApprovalLevel{
			models.LevelFinancePlanner,
			models.LevelFinanceController,
			models.LevelDirector,
			models.LevelMD,
			models.LevelDisbursement,
		}
		for _, next := range expected {
			tr, err := m.OnDecision(status, models.ActionApproved)
			require.Nil(t, err)
			require.False(t, tr.Terminal)
			require.NotNil(t, tr.CurrentLevel)
			require.Equal(t, next, *tr.CurrentLevel)
			status = tr.Status
		}
	})

	t.Run(`approving the disbursement level disburses`, func(t *testing.T) {
		tr, err := m.OnDecision(models.PendingStatus(models.LevelDisbursement), models.ActionApproved)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusDisbursed, tr.Status)
		require.True(t, tr.Terminal)
		require.Nil(t, tr.CurrentLevel)
	})

	t.Run(`chain without disbursement ends approved`, func(t *testing.T) {
		cfg := testWorkflowConfig()
		cfg.Levels = cfg.Levels[:5] // MD is last
		short := NewMachine(cfg)

		tr, err := short.OnDecision(models.PendingStatus(models.LevelMD), models.ActionApproved)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusApproved, tr.Status)
		require.True(t, tr.Terminal)
	})

	t.Run(`reject is terminal from any level`, func(t *testing.T) {
		tr, err := m.OnDecision(models.PendingStatus(models.LevelMD), models.ActionRejected)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusRejected, tr.Status)
		require.True(t, tr.Terminal)
	})

	t.Run(`send back returns to the requestor`, func(t *testing.T) {
		tr, err := m.OnDecision(models.PendingStatus(models.LevelDirector), models.ActionSentBack)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusSentBack, tr.Status)
		require.False(t, tr.Terminal)
		require.Nil(t, tr.CurrentLevel)
	})

	t.Run(`decision outside a pending level fails`, func(t *testing.T) {
		_, err := m.OnDecision(models.RequestStatusDraft, models.ActionApproved)
		require.NotNil(t, err)
		_, err = m.OnDecision(models.RequestStatusAdminReview, models.ActionApproved)
		require.NotNil(t, err)
		_, err = m.OnDecision(models.RequestStatus("PENDING_NO_SUCH_LEVEL"), models.ActionApproved)
		require.NotNil(t, err)
	})

	t.Run(`resubmit restarts the chain`, func(t *testing.T) {
		tr, err := m.OnResubmit(models.RequestStatusSentBack, 0)
		require.Nil(t, err)
		require.Equal(t, models.PendingStatus(models.LevelFinanceVetting), tr.Status)

		tr, err = m.OnResubmit(models.RequestStatusSentBack, 2)
		require.Nil(t, err)
		require.Equal(t, models.PendingStatus(models.LevelFinanceVetting), tr.Status)
	})

	t.Run(`exhausted resubmissions park the request for admin review`, func(t *testing.T) {
		tr, err := m.OnResubmit(models.RequestStatusSentBack, 3)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusAdminReview, tr.Status)
		require.False(t, tr.Terminal)
	})

	t.Run(`resubmit only from sent back`, func(t *testing.T) {
		_, err := m.OnResubmit(models.RequestStatusDraft, 0)
		require.NotNil(t, err)
		_, err = m.OnResubmit(models.RequestStatusRejected, 0)
		require.NotNil(t, err)
	})

	t.Run(`admin review decisions`, func(t *testing.T) {
		tr, err := m.OnAdminReview(models.RequestStatusAdminReview, models.AdminDecisionApprove)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusDisbursed, tr.Status)
		require.True(t, tr.Terminal)

		tr, err = m.OnAdminReview(models.RequestStatusAdminReview, models.AdminDecisionReject)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusRejected, tr.Status)
		require.True(t, tr.Terminal)

		tr, err = m.OnAdminReview(models.RequestStatusAdminReview, models.AdminDecisionAllowResubmission)
		require.Nil(t, err)
		require.Equal(t, models.RequestStatusSentBack, tr.Status)
		require.False(t, tr.Terminal)
	})

	t.Run(`admin review gated by status`, func(t *testing.T) {
		_, err := m.OnAdminReview(models.RequestStatusSentBack, models.AdminDecisionApprove)
		require.NotNil(t, err)
		_, err = m.OnAdminReview(models.RequestStatusAdminReview, models.AdminDecision("ESCALATE"))
		require.NotNil(t, err)
	})
}

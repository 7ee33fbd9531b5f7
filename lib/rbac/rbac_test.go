package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finance-flow-backend/config"
	"finance-flow-backend/models"
)

func testLevels() []config.WorkflowLevel {
	return []config.WorkflowLevel{
		{Level: string(models.LevelFinanceVetting), Role: string(models.RoleFinanceTeam), SlaHours: 72, CriticalSlaHours: 24},
		{Level: string(models.LevelFinancePlanner), Role: string(models.RoleFinanceController), SlaHours: 24},
		{Level: string(models.LevelFinanceController), Role: string(models.RoleFinanceController), SlaHours: 24},
		{Level: string(models.LevelDirector), Role: string(models.RoleDirector), SlaHours: 24},
		{Level: string(models.LevelMD), Role: string(models.RoleMD), SlaHours: 24},
		{Level: string(models.LevelDisbursement), Role: string(models.RoleFinanceTeam), SlaHours: 24},
	}
}

func TestRbac(t *testing.T) {
	oracle := NewInstance(testLevels())

	t.Run(`level access per role`, func(t *testing.T) {
		require.True(t, oracle.CanActAtLevel(models.RoleFinanceTeam, models.LevelFinanceVetting))
		require.True(t, oracle.CanActAtLevel(models.RoleFinanceTeam, models.LevelDisbursement))
		require.True(t, oracle.CanActAtLevel(models.RoleFinanceController, models.LevelFinancePlanner))
		require.True(t, oracle.CanActAtLevel(models.RoleFinanceController, models.LevelFinanceController))
		require.True(t, oracle.CanActAtLevel(models.RoleDirector, models.LevelDirector))
		require.True(t, oracle.CanActAtLevel(models.RoleMD, models.LevelMD))

		require.False(t, oracle.CanActAtLevel(models.RoleEmployee, models.LevelDirector))
		require.False(t, oracle.CanActAtLevel(models.RoleFinanceTeam, models.LevelDirector))
		require.False(t, oracle.CanActAtLevel(models.RoleDirector, models.LevelMD))
		require.False(t, oracle.CanActAtLevel(models.RoleMD, models.LevelFinanceVetting))
	})

	t.Run(`admin acts at every level`, func(t *testing.T) {
		for _, l := range testLevels() {
			require.True(t, oracle.CanActAtLevel(models.RoleAdmin, models.ApprovalLevel(l.Level)))
		}
	})

	t.Run(`unknown level denied`, func(t *testing.T) {
		require.False(t, oracle.CanActAtLevel(models.RoleAdmin, models.ApprovalLevel("NO_SUCH_LEVEL")))
	})

	t.Run(`exact permission`, func(t *testing.T) {
		require.True(t, oracle.HasPermission(models.RoleEmployee, models.PermRequestCreate))
		require.True(t, oracle.HasPermission(models.RoleEmployee, models.PermRequestSubmit))
		require.False(t, oracle.HasPermission(models.RoleEmployee, models.PermApprovalAct))
		require.False(t, oracle.HasPermission(models.RoleEmployee, models.PermReportView))
	})

	t.Run(`category wildcard`, func(t *testing.T) {
		require.True(t, oracle.HasPermission(models.RoleFinanceTeam, models.PermReportView))
		require.True(t, oracle.HasPermission(models.RoleFinanceTeam, models.PermReportExport))
		// director holds report:view only, no wildcard
		require.True(t, oracle.HasPermission(models.RoleDirector, models.PermReportView))
		require.False(t, oracle.HasPermission(models.RoleDirector, models.PermReportExport))
	})

	t.Run(`admin fallback`, func(t *testing.T) {
		require.True(t, oracle.HasPermission(models.RoleAdmin, models.PermRequestDelete))
		require.True(t, oracle.HasPermission(models.RoleAdmin, models.PermApprovalOverride))
		require.False(t, oracle.HasPermission(models.RoleMD, models.PermApprovalOverride))
	})

	t.Run(`parse permission`, func(t *testing.T) {
		require.Equal(t, models.PermRequestView, ParsePermission("  Finance_Request:View "))
	})
}

package slaclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finance-flow-backend/config"
	"finance-flow-backend/models"
)

func testLevels() []config.WorkflowLevel {
	return []config.WorkflowLevel{
		{Level: string(models.LevelFinanceVetting), Role: string(models.RoleFinanceTeam), SlaHours: 72, CriticalSlaHours: 24},
		{Level: string(models.LevelFinancePlanner), Role: string(models.RoleFinanceController), SlaHours: 24},
		{Level: string(models.LevelDirector), Role: string(models.RoleDirector), SlaHours: 24},
	}
}

func TestSlaClock(t *testing.T) {
	clock := NewInstance(testLevels(), 4*time.Hour, 80)
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run(`allotted hours per level`, func(t *testing.T) {
		require.Equal(t, 72, clock.Hours(models.LevelFinanceVetting, models.PaymentTypeRegular))
		require.Equal(t, 24, clock.Hours(models.LevelFinancePlanner, models.PaymentTypeRegular))
		require.Equal(t, 0, clock.Hours(models.ApprovalLevel("NO_SUCH_LEVEL"), models.PaymentTypeRegular))
	})

	t.Run(`critical payments shrink the vetting window`, func(t *testing.T) {
		require.Equal(t, 24, clock.Hours(models.LevelFinanceVetting, models.PaymentTypeCritical))
		// levels without a critical override keep their normal budget
		require.Equal(t, 24, clock.Hours(models.LevelDirector, models.PaymentTypeCritical))
	})

	t.Run(`due at`, func(t *testing.T) {
		require.Equal(t, start.Add(72*time.Hour), clock.DueAt(models.LevelFinanceVetting, models.PaymentTypeRegular, start))
		require.Equal(t, start.Add(24*time.Hour), clock.DueAt(models.LevelFinanceVetting, models.PaymentTypeCritical, start))
	})

	t.Run(`status classification`, func(t *testing.T) {
		dueAt := start.Add(24 * time.Hour)

		require.Equal(t, models.SLAOnTrack, clock.Status(dueAt, start, false))
		require.Equal(t, models.SLAOnTrack, clock.Status(dueAt, dueAt.Add(-4*time.Hour-time.Minute), false))
		require.Equal(t, models.SLAAtRisk, clock.Status(dueAt, dueAt.Add(-4*time.Hour), false))
		require.Equal(t, models.SLAAtRisk, clock.Status(dueAt, dueAt, false))
		require.Equal(t, models.SLABreached, clock.Status(dueAt, dueAt.Add(time.Second), false))
		require.Equal(t, models.SLACompleted, clock.Status(dueAt, dueAt.Add(time.Hour), true))
	})

	t.Run(`warn threshold`, func(t *testing.T) {
		dueAt := start.Add(10 * time.Hour)

		require.False(t, clock.WarnThresholdReached(start, dueAt, start.Add(7*time.Hour)))
		require.True(t, clock.WarnThresholdReached(start, dueAt, start.Add(8*time.Hour)))
		require.True(t, clock.WarnThresholdReached(start, dueAt, dueAt.Add(time.Hour)))
		// degenerate window never warns
		require.False(t, clock.WarnThresholdReached(start, start, start.Add(time.Hour)))
	})
}

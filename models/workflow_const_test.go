package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestStatus(t *testing.T) {
	t.Run(`pending status round trip`, func(t *testing.T) {
		status := PendingStatus(LevelFinanceVetting)
		require.Equal(t, RequestStatus("PENDING_FINANCE_VETTING"), status)
		require.True(t, status.IsPendingLevel())

		level, ok := status.PendingLevel()
		require.True(t, ok)
		require.Equal(t, LevelFinanceVetting, level)
	})

	t.Run(`admin review is not a level status`, func(t *testing.T) {
		require.False(t, RequestStatusAdminReview.IsPendingLevel())
		_, ok := RequestStatusAdminReview.PendingLevel()
		require.False(t, ok)
	})

	t.Run(`lifecycle gates`, func(t *testing.T) {
		require.True(t, RequestStatusDraft.AllowEdit())
		require.True(t, RequestStatusSentBack.AllowEdit())
		require.False(t, PendingStatus(LevelDirector).AllowEdit())
		require.False(t, RequestStatusApproved.AllowEdit())

		require.True(t, RequestStatusDraft.AllowSubmit())
		require.False(t, RequestStatusSentBack.AllowSubmit())

		require.True(t, RequestStatusSentBack.AllowResubmit())
		require.False(t, RequestStatusDraft.AllowResubmit())

		require.True(t, RequestStatusRejected.IsTerminal())
		require.True(t, RequestStatusDisbursed.IsTerminal())
		require.True(t, RequestStatusApproved.IsTerminal())
		require.False(t, RequestStatusSentBack.IsTerminal())
		require.False(t, PendingStatus(LevelMD).IsTerminal())
	})
}

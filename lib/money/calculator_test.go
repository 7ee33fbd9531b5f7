package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculator(t *testing.T) {
	t.Run(`gst only`, func(t *testing.T) {
		totals := ComputeTotals(10000, true, 18, false, 0)
		require.Equal(t, 1800.0, totals.GstAmount)
		require.Equal(t, 0.0, totals.TdsAmount)
		require.Equal(t, 11800.0, totals.TotalAmount)
	})

	t.Run(`gst and tds`, func(t *testing.T) {
		totals := ComputeTotals(10000, true, 18, true, 10)
		require.Equal(t, 1800.0, totals.GstAmount)
		require.Equal(t, 1000.0, totals.TdsAmount)
		require.Equal(t, 10800.0, totals.TotalAmount)
	})

	t.Run(`no taxes`, func(t *testing.T) {
		totals := ComputeTotals(1234.56, false, 18, false, 10)
		require.Equal(t, 0.0, totals.GstAmount)
		require.Equal(t, 0.0, totals.TdsAmount)
		require.Equal(t, 1234.56, totals.TotalAmount)
	})

	t.Run(`percentages ignored when flags are off`, func(t *testing.T) {
		totals := ComputeTotals(500, false, 28, false, 30)
		require.Equal(t, 500.0, totals.TotalAmount)
	})

	t.Run(`rounding to paise`, func(t *testing.T) {
		// 333.33 * 18% = 59.9994 -> 60.00
		totals := ComputeTotals(333.33, true, 18, false, 0)
		require.Equal(t, 60.0, totals.GstAmount)
		require.Equal(t, 393.33, totals.TotalAmount)

		// 100.555 * 5% = 5.02775 -> 5.03
		totals = ComputeTotals(100.555, true, 5, false, 0)
		require.Equal(t, 5.03, totals.GstAmount)
	})

	t.Run(`round2`, func(t *testing.T) {
		require.Equal(t, 1.01, Round2(1.005))
		require.Equal(t, 1.0, Round2(0.999))
		require.Equal(t, -2.35, Round2(-2.345))
		require.Equal(t, 0.0, Round2(0))
	})
}

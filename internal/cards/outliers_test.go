package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xwstats/internal/errors"
)

func TestBuildOutliersConcreteScenario(t *testing.T) {
	// Three Mondays at 10, 20 and 30 minutes: mean 20, sample std 10,
	// so the extremes score exactly -1.0 and +1.0.
	records := table(t,
		solve(t, "2025-01-06", 600),
		solve(t, "2025-01-13", 1200),
		solve(t, "2025-01-20", 1800),
	)

	out, err := BuildOutliers(records, 1)
	require.NoError(t, err)
	require.Len(t, out.Slowest, 1)
	require.Len(t, out.Fastest, 1)

	slow := out.Slowest[0]
	assert.Equal(t, 30.0, slow.TimeMinutes)
	assert.InDelta(t, 1.0, slow.DeviationScore, 1e-9)
	assert.InDelta(t, 50.0, slow.DeviationPercent, 1e-9)
	assert.Equal(t, 10.0, slow.TimeDeviationMinutes)
	assert.Equal(t, "+50.0%", slow.DeviationPctLabel)
	assert.Equal(t, "+10m 00s", slow.DeviationTimeLabel)
	assert.Equal(t, "Jan 20, 2025", slow.Date)
	assert.Equal(t, "30m 00s", slow.TimeFormatted)

	fast := out.Fastest[0]
	assert.Equal(t, 10.0, fast.TimeMinutes)
	assert.InDelta(t, -1.0, fast.DeviationScore, 1e-9)
	assert.Equal(t, "-50.0%", fast.DeviationPctLabel)
	assert.Equal(t, "-10m 00s", fast.DeviationTimeLabel)
}

func TestBuildOutliersExcludesUndefinedScores(t *testing.T) {
	records := table(t,
		// Rankable Mondays
		solve(t, "2025-01-06", 600),
		solve(t, "2025-01-13", 1200),
		// Lone Tuesday: std undefined
		solve(t, "2025-01-07", 6000),
		// Identical Wednesdays: std zero
		solve(t, "2025-01-08", 480),
		solve(t, "2025-01-15", 480),
	)

	out, err := BuildOutliers(records, 10)
	require.NoError(t, err)

	for _, row := range append(out.Slowest, out.Fastest...) {
		assert.Equal(t, "Mon", row.Weekday.Label(),
			"records with undefined deviation scores never rank")
	}
	// Fewer rankable rows than requested returns what exists
	assert.Len(t, out.Slowest, 2)
	assert.Len(t, out.Fastest, 2)
}

func TestBuildOutliersOrdering(t *testing.T) {
	records := table(t,
		solve(t, "2025-01-06", 300),
		solve(t, "2025-01-13", 600),
		solve(t, "2025-01-20", 1200),
		solve(t, "2025-01-27", 2400),
		solve(t, "2025-02-03", 3000),
	)

	out, err := BuildOutliers(records, 4)
	require.NoError(t, err)
	require.Len(t, out.Slowest, 4)
	require.Len(t, out.Fastest, 4)

	for i := 1; i < len(out.Slowest); i++ {
		assert.GreaterOrEqual(t, out.Slowest[i-1].DeviationPercent, out.Slowest[i].DeviationPercent,
			"slowest list is non-increasing in deviation percent")
	}
	for i := 1; i < len(out.Fastest); i++ {
		assert.LessOrEqual(t, out.Fastest[i-1].DeviationPercent, out.Fastest[i].DeviationPercent,
			"fastest list is non-decreasing in deviation percent")
	}
}

func TestBuildOutliersTieBreakByDate(t *testing.T) {
	// Two Mondays tied above the mean, two tied below: equal scores break
	// by earlier date.
	records := table(t,
		solve(t, "2025-01-06", 600),
		solve(t, "2025-01-13", 600),
		solve(t, "2025-01-20", 1800),
		solve(t, "2025-01-27", 1800),
	)

	out, err := BuildOutliers(records, 4)
	require.NoError(t, err)
	require.Len(t, out.Slowest, 4)

	assert.Equal(t, "Jan 20, 2025", out.Slowest[0].Date)
	assert.Equal(t, "Jan 27, 2025", out.Slowest[1].Date)
	assert.Equal(t, "Jan 06, 2025", out.Fastest[0].Date)
	assert.Equal(t, "Jan 13, 2025", out.Fastest[1].Date)
}

func TestBuildOutliersNoRankableRows(t *testing.T) {
	records := table(t, solve(t, "2025-01-06", 600)) // lone record, no std

	out, err := BuildOutliers(records, 10)
	require.NoError(t, err)
	assert.Empty(t, out.Slowest)
	assert.Empty(t, out.Fastest)
}

func TestBuildOutliersInvalidTopN(t *testing.T) {
	_, err := BuildOutliers(nil, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfig(err))
}

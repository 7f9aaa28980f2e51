package cards

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"xwstats/internal/ingest"
	"xwstats/pkg/contracts/domain"
)

// solve builds one normalized record without weekday statistics attached.
func solve(t *testing.T, date string, seconds int64) domain.SolveRecord {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return domain.SolveRecord{
		Date:           d,
		PuzzleID:       seconds,
		Weekday:        domain.WeekdayOf(d),
		ElapsedSeconds: seconds,
		ElapsedMinutes: float64(seconds) / 60,
	}
}

// table sorts records chronologically and joins weekday statistics on, the
// same shape the ingest stage hands to the builders.
func table(t *testing.T, records ...domain.SolveRecord) []domain.SolveRecord {
	t.Helper()
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	stats := ingest.ComputeWeekdayStats(records)
	for i := range records {
		st := stats[records[i].Weekday]
		records[i].WeekdayMean = st.Mean
		records[i].WeekdayStd = st.Std
		if st.Std.Valid && st.Std.Float64 > 0 {
			records[i].DeviationScore = null.FloatFrom((records[i].ElapsedMinutes - st.Mean) / st.Std.Float64)
		}
	}
	return records
}

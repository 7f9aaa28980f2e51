package cards

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	apperrors "xwstats/internal/errors"
	"xwstats/pkg/contracts/domain"
)

// Outliers holds the two ranked outlier lists.
type Outliers struct {
	Slowest []domain.OutlierRow
	Fastest []domain.OutlierRow
}

// BuildOutliers selects the topN most extreme solves by deviation score.
// Records whose weekday standard deviation is zero or undefined carry no
// score and are excluded from ranking. When fewer than topN records are
// rankable, both lists simply hold what exists.
//
// Equal scores tie-break by earlier date, then lower puzzle id, so output is
// deterministic regardless of input order. The final ordering within each
// list is a separate sort by deviation percent: descending for slowest,
// ascending for fastest.
func BuildOutliers(records []domain.SolveRecord, topN int) (*Outliers, error) {
	if topN < 1 {
		return nil, apperrors.NewConfigError(fmt.Sprintf("top_n must be positive, got %d", topN), nil)
	}

	rankable := lo.Filter(records, func(r domain.SolveRecord, _ int) bool {
		return r.DeviationScore.Valid
	})

	slowest := selectTop(rankable, topN, func(a, b domain.SolveRecord) bool {
		return a.DeviationScore.Float64 > b.DeviationScore.Float64
	})
	fastest := selectTop(rankable, topN, func(a, b domain.SolveRecord) bool {
		return a.DeviationScore.Float64 < b.DeviationScore.Float64
	})

	out := &Outliers{
		Slowest: toOutlierRows(slowest),
		Fastest: toOutlierRows(fastest),
	}
	sortByDeviationPercent(out.Slowest, true)
	sortByDeviationPercent(out.Fastest, false)
	return out, nil
}

// selectTop returns up to n records, best first per the given ordering,
// with the date/puzzle-id tie-break applied.
func selectTop(records []domain.SolveRecord, n int, better func(a, b domain.SolveRecord) bool) []domain.SolveRecord {
	ranked := make([]domain.SolveRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DeviationScore.Float64 != ranked[j].DeviationScore.Float64 {
			return better(ranked[i], ranked[j])
		}
		return recordTieBreak(ranked[i], ranked[j])
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// recordTieBreak orders equal-score records by date, then puzzle id.
func recordTieBreak(a, b domain.SolveRecord) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.PuzzleID < b.PuzzleID
}

func toOutlierRows(records []domain.SolveRecord) []domain.OutlierRow {
	return lo.Map(records, func(r domain.SolveRecord, _ int) domain.OutlierRow {
		devPct := (r.ElapsedMinutes - r.WeekdayMean) / r.WeekdayMean * 100
		devMinutes := r.ElapsedMinutes - r.WeekdayMean
		return domain.OutlierRow{
			Date:                 formatDate(r.Date),
			PuzzleID:             r.PuzzleID,
			Weekday:              r.Weekday,
			TimeMinutes:          r.ElapsedMinutes,
			TimeFormatted:        FormatMinutes(r.ElapsedMinutes),
			Author:               r.Author,
			DeviationScore:       r.DeviationScore.Float64,
			DeviationPercent:     devPct,
			TimeDeviationMinutes: devMinutes,
			DeviationPctLabel:    FormatSignedPercent(devPct),
			DeviationTimeLabel:   FormatDeviationMinutes(devMinutes),
		}
	})
}

// sortByDeviationPercent applies the final display ordering. Ties keep the
// same date/puzzle-id break used during selection; rows carry a formatted
// date, so sorting is stable over the selection order, which already honors
// the tie-break.
func sortByDeviationPercent(rows []domain.OutlierRow, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return rows[i].DeviationPercent > rows[j].DeviationPercent
		}
		return rows[i].DeviationPercent < rows[j].DeviationPercent
	})
}

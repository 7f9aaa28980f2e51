package cards

import (
	"sort"

	"xwstats/pkg/contracts/domain"
)

// BuildEvolution produces the chronological running-average series: one
// output row per input record, carrying the mean solve time over all
// same-weekday records up to and including that one, and the record's
// 1-based occurrence index within its weekday.
//
// The normalized table is contractually sorted, but the running sums depend
// on order so the builder re-confirms it on a copy rather than trusting the
// caller.
func BuildEvolution(records []domain.SolveRecord) []domain.EvolutionRow {
	ordered := make([]domain.SolveRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	cumSeconds := make(map[domain.Weekday]int64, 7)
	cumCount := make(map[domain.Weekday]int, 7)

	rows := make([]domain.EvolutionRow, 0, len(ordered))
	for _, rec := range ordered {
		cumSeconds[rec.Weekday] += rec.ElapsedSeconds
		cumCount[rec.Weekday]++

		avgMinutes := float64(cumSeconds[rec.Weekday]) / float64(cumCount[rec.Weekday]) / 60
		rows = append(rows, domain.EvolutionRow{
			Date:            rec.Date.Format("2006-01-02"),
			Weekday:         rec.Weekday,
			DayOfYear:       rec.Date.YearDay(),
			OccurrenceIndex: cumCount[rec.Weekday],
			AverageMinutes:  avgMinutes,
			AverageTime:     FormatMinutes(avgMinutes),
		})
	}
	return rows
}

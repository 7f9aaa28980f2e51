package cards

import (
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"xwstats/pkg/contracts/domain"
)

// BuildWeeklySummary produces the per-weekday timing table. The output
// always has exactly seven rows in fixed Mon..Sun order; a weekday with no
// qualifying records reports null timings rather than erroring.
func BuildWeeklySummary(records []domain.SolveRecord) []domain.WeekdaySummaryRow {
	byDay := lo.GroupBy(records, func(r domain.SolveRecord) domain.Weekday { return r.Weekday })

	rows := make([]domain.WeekdaySummaryRow, 0, 7)
	for _, day := range domain.Weekdays() {
		row := domain.WeekdaySummaryRow{Weekday: day}
		if dayRecords := byDay[day]; len(dayRecords) > 0 {
			minutes := lo.Map(dayRecords, func(r domain.SolveRecord, _ int) float64 { return r.ElapsedMinutes })

			fastest := lo.Min(minutes)
			slowest := lo.Max(minutes)
			average := lo.Sum(minutes) / float64(len(minutes))

			row.FastestMinutes = null.FloatFrom(fastest)
			row.AverageMinutes = null.FloatFrom(average)
			row.SlowestMinutes = null.FloatFrom(slowest)
			row.FastestTime = null.StringFrom(FormatMinutes(fastest))
			row.AverageTime = null.StringFrom(FormatMinutes(average))
			row.SlowestTime = null.StringFrom(FormatMinutes(slowest))
		}
		rows = append(rows, row)
	}
	return rows
}

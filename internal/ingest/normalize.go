package ingest

import (
	"math"
	"sort"

	"gopkg.in/guregu/null.v3"

	"xwstats/pkg/contracts/domain"
)

// Normalize turns raw export rows into the immutable record table the card
// builders consume. Only fully-completed solves qualify (solved flag set and
// fill percentage exactly 100). Each qualifying row gets its weekday, elapsed
// minutes, the per-weekday mean and sample standard deviation, and a
// deviation score. The result is sorted chronologically, stable.
func Normalize(raw []rawSolve) []domain.SolveRecord {
	records := make([]domain.SolveRecord, 0, len(raw))
	for _, r := range raw {
		if !r.solved || r.percentFilled != 100 {
			continue
		}
		records = append(records, domain.SolveRecord{
			Date:           r.date,
			PuzzleID:       r.puzzleID,
			Weekday:        domain.WeekdayOf(r.date),
			ElapsedSeconds: r.seconds,
			ElapsedMinutes: float64(r.seconds) / 60,
			Author:         r.author,
			GoldStar:       r.star == goldStar,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	stats := ComputeWeekdayStats(records)
	for i := range records {
		st := stats[records[i].Weekday]
		records[i].WeekdayMean = st.Mean
		records[i].WeekdayStd = st.Std
		records[i].DeviationScore = deviationScore(records[i].ElapsedMinutes, st)
	}
	return records
}

// ComputeWeekdayStats computes per-weekday mean and sample standard deviation
// of elapsed minutes, once, into a weekday-indexed map. Std uses the n-1
// divisor and is null for weekdays with fewer than two records.
func ComputeWeekdayStats(records []domain.SolveRecord) map[domain.Weekday]domain.WeekdayStats {
	sums := make(map[domain.Weekday]float64, 7)
	counts := make(map[domain.Weekday]int, 7)
	for _, rec := range records {
		sums[rec.Weekday] += rec.ElapsedMinutes
		counts[rec.Weekday]++
	}

	stats := make(map[domain.Weekday]domain.WeekdayStats, 7)
	for _, day := range domain.Weekdays() {
		n := counts[day]
		if n == 0 {
			continue
		}
		mean := sums[day] / float64(n)

		std := null.Float{}
		if n >= 2 {
			var ss float64
			for _, rec := range records {
				if rec.Weekday == day {
					d := rec.ElapsedMinutes - mean
					ss += d * d
				}
			}
			std = null.FloatFrom(math.Sqrt(ss / float64(n-1)))
		}
		stats[day] = domain.WeekdayStats{Count: n, Mean: mean, Std: std}
	}
	return stats
}

// deviationScore returns the z-score of a solve against its weekday stats,
// or null when the standard deviation is zero or undefined.
func deviationScore(minutes float64, st domain.WeekdayStats) null.Float {
	if !st.Std.Valid || st.Std.Float64 == 0 {
		return null.Float{}
	}
	return null.FloatFrom((minutes - st.Mean) / st.Std.Float64)
}

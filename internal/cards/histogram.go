package cards

import (
	"fmt"

	"github.com/samber/lo"

	apperrors "xwstats/internal/errors"
	"xwstats/pkg/contracts/domain"
)

// BuildHistograms produces per-weekday frequency distributions of solve
// times over bucketCount equal-width buckets. Weekdays with no qualifying
// records emit no rows. The right edge of the last bucket is inclusive; all
// other buckets are half-open [start, end).
//
// A weekday where every solve took the same time has a zero-width range;
// such a day emits a single zero-span bucket carrying the full frequency
// instead of dividing by zero.
func BuildHistograms(records []domain.SolveRecord, bucketCount int) ([]domain.HistogramRow, error) {
	if bucketCount < 1 {
		return nil, apperrors.NewConfigError(fmt.Sprintf("bucket_count must be positive, got %d", bucketCount), nil)
	}

	byDay := lo.GroupBy(records, func(r domain.SolveRecord) domain.Weekday { return r.Weekday })

	var rows []domain.HistogramRow
	for _, day := range domain.Weekdays() {
		dayRecords := byDay[day]
		if len(dayRecords) == 0 {
			continue
		}
		minutes := lo.Map(dayRecords, func(r domain.SolveRecord, _ int) float64 { return r.ElapsedMinutes })
		rows = append(rows, bucketize(day, minutes, bucketCount)...)
	}
	return rows, nil
}

// bucketize partitions one weekday's times into equal-width buckets.
func bucketize(day domain.Weekday, minutes []float64, bucketCount int) []domain.HistogramRow {
	minTime := lo.Min(minutes)
	maxTime := lo.Max(minutes)

	if minTime == maxTime {
		return []domain.HistogramRow{{
			Weekday:     day,
			BucketIndex: 0,
			Frequency:   len(minutes),
			TimeStart:   minTime,
			TimeEnd:     maxTime,
			RangeLabel:  rangeLabel(minTime, maxTime),
			Midpoint:    minTime,
		}}
	}

	width := (maxTime - minTime) / float64(bucketCount)
	freq := make([]int, bucketCount)
	for _, v := range minutes {
		idx := int((v - minTime) / width)
		if idx >= bucketCount {
			// max value lands on the closed right edge of the last bucket
			idx = bucketCount - 1
		}
		freq[idx]++
	}

	rows := make([]domain.HistogramRow, 0, bucketCount)
	for i := 0; i < bucketCount; i++ {
		start := minTime + float64(i)*(maxTime-minTime)/float64(bucketCount)
		end := minTime + float64(i+1)*(maxTime-minTime)/float64(bucketCount)
		rows = append(rows, domain.HistogramRow{
			Weekday:     day,
			BucketIndex: i,
			Frequency:   freq[i],
			TimeStart:   start,
			TimeEnd:     end,
			RangeLabel:  rangeLabel(start, end),
			Midpoint:    (start + end) / 2,
		})
	}
	return rows
}

func rangeLabel(start, end float64) string {
	return fmt.Sprintf("%s - %s", FormatMinutes(start), FormatMinutes(end))
}

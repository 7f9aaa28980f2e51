package cards

import (
	"fmt"

	"github.com/samber/lo"

	apperrors "xwstats/internal/errors"
	"xwstats/pkg/contracts/domain"
)

// BuildSummary produces the completion summary card: totals, gold-star
// count, the inclusive day span of the record set, and the completion rate.
// An empty record set is an InsufficientData failure; every other card can
// cope with zero rows, the summary cannot.
func BuildSummary(records []domain.SolveRecord) (*domain.SummaryCard, error) {
	if len(records) == 0 {
		return nil, apperrors.NewInsufficientDataError(domain.CardSummary)
	}

	// Records arrive sorted chronologically
	minDate := records[0].Date
	maxDate := records[len(records)-1].Date

	// Inclusive span; a single-day range counts as one available day
	totalAvailable := int(maxDate.Sub(minDate).Hours()/24) + 1

	totalSeconds := lo.SumBy(records, func(r domain.SolveRecord) int64 { return r.ElapsedSeconds })
	goldStar := lo.CountBy(records, func(r domain.SolveRecord) bool { return r.GoldStar })

	return &domain.SummaryCard{
		TotalCompleted:    len(records),
		GoldStarCompleted: goldStar,
		TotalAvailable:    totalAvailable,
		CompletionRatePct: round1(float64(len(records)) / float64(totalAvailable) * 100),
		TotalTime:         SecondsToDHMS(totalSeconds),
		DateRange:         fmt.Sprintf("%s to %s", minDate.Format("2006-01-02"), maxDate.Format("2006-01-02")),
	}, nil
}

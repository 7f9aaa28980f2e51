package domain

import (
	"gopkg.in/guregu/null.v3"
)

// Card names, used both for output filenames and the API surface.
const (
	CardSummary   = "summary"
	CardWeekly    = "weekly_summary"
	CardHistogram = "histograms"
	CardEvolution = "evolution"
	CardSlowest   = "slowest_outliers"
	CardFastest   = "fastest_outliers"
)

// CardNames lists the six cards in their canonical order.
func CardNames() []string {
	return []string{CardSummary, CardWeekly, CardHistogram, CardEvolution, CardSlowest, CardFastest}
}

// SummaryCard is the single-object completion summary document.
type SummaryCard struct {
	TotalCompleted    int     `json:"total_completed"`
	GoldStarCompleted int     `json:"gold_star_completed"`
	TotalAvailable    int     `json:"total_available"`
	CompletionRatePct float64 `json:"completion_rate_pct"`
	TotalTime         string  `json:"total_time_dhms"`
	DateRange         string  `json:"date_range"`
}

// WeekdaySummaryRow is one row of the per-weekday timing table. All seven
// weekdays are present; a weekday with no qualifying records reports null
// timings rather than zeroes.
type WeekdaySummaryRow struct {
	Weekday        Weekday     `json:"day_of_week"`
	FastestMinutes null.Float  `json:"fastest_in_minutes"`
	AverageMinutes null.Float  `json:"average_in_minutes"`
	SlowestMinutes null.Float  `json:"slowest_in_minutes"`
	FastestTime    null.String `json:"fastest_time"`
	AverageTime    null.String `json:"average_time"`
	SlowestTime    null.String `json:"slowest_time"`
}

// HistogramRow is one bucket of one weekday's solve-time distribution.
type HistogramRow struct {
	Weekday     Weekday `json:"day_of_week"`
	BucketIndex int     `json:"bin_index"`
	Frequency   int     `json:"frequency"`
	TimeStart   float64 `json:"time_start_min"`
	TimeEnd     float64 `json:"time_end_min"`
	RangeLabel  string  `json:"time_range_label"`
	Midpoint    float64 `json:"midpoint_min"`
}

// EvolutionRow is one point of the running-average series. There is exactly
// one row per normalized input record.
type EvolutionRow struct {
	Date            string  `json:"print_date"`
	Weekday         Weekday `json:"day_of_week"`
	DayOfYear       int     `json:"day_of_year"`
	OccurrenceIndex int     `json:"puzzle_index"`
	AverageMinutes  float64 `json:"average_time_min"`
	AverageTime     string  `json:"average_time_formatted"`
}

// OutlierRow is one ranked record in the slowest or fastest outlier list.
type OutlierRow struct {
	Date                 string  `json:"date"`
	PuzzleID             int64   `json:"puzzle_id"`
	Weekday              Weekday `json:"day_of_week"`
	TimeMinutes          float64 `json:"time_min"`
	TimeFormatted        string  `json:"time_formatted"`
	Author               string  `json:"author,omitempty"`
	DeviationScore       float64 `json:"deviation_score"`
	DeviationPercent     float64 `json:"deviation_percent"`
	TimeDeviationMinutes float64 `json:"time_deviation_min"`
	DeviationPctLabel    string  `json:"deviation_percent_label"`
	DeviationTimeLabel   string  `json:"deviation_time_label"`
}

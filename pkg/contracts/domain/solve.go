package domain

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// Weekday is the fixed 7-value category used throughout the pipeline.
// Ordering is Mon..Sun and never locale-dependent; aggregates iterate
// Weekdays() rather than sorting labels.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekdays returns all seven weekdays in fixed Mon..Sun order.
func Weekdays() [7]Weekday {
	return [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOf maps a calendar date onto the fixed weekday category.
// Go's time.Weekday starts the week on Sunday; the pipeline starts on Monday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// Label returns the short weekday name ("Mon".."Sun").
func (w Weekday) Label() string {
	if w < Monday || w > Sunday {
		return ""
	}
	return weekdayLabels[w]
}

// String implements fmt.Stringer.
func (w Weekday) String() string { return w.Label() }

// MarshalText renders the weekday as its short label in JSON/CSV output.
func (w Weekday) MarshalText() ([]byte, error) {
	return []byte(w.Label()), nil
}

// SolveRecord is one fully-completed crossword solve after normalization.
// Records that are not fully solved (solved flag false or fill below 100%)
// never become SolveRecords; downstream card builders must not re-filter.
type SolveRecord struct {
	Date           time.Time `json:"print_date"`
	PuzzleID       int64     `json:"puzzle_id"`
	Weekday        Weekday   `json:"day_of_week"`
	ElapsedSeconds int64     `json:"seconds_spent_solving"`
	ElapsedMinutes float64   `json:"minutes_spent_solving"`
	Author         string    `json:"author,omitempty"`
	GoldStar       bool      `json:"gold_star"`

	// Per-weekday statistics joined on during normalization. WeekdayStd is
	// null when the weekday has fewer than two qualifying records;
	// DeviationScore is null whenever WeekdayStd is null or zero.
	WeekdayMean    float64    `json:"weekday_mean"`
	WeekdayStd     null.Float `json:"weekday_std"`
	DeviationScore null.Float `json:"deviation_score"`
}

// WeekdayStats holds the aggregate statistics for one weekday's qualifying
// records. Std uses the sample (n-1) divisor and is null for n < 2.
type WeekdayStats struct {
	Count int        `json:"count"`
	Mean  float64    `json:"mean"`
	Std   null.Float `json:"std"`
}

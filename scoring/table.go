package scoring

import "time"

// RecencyStep awards Score to entries younger than MaxAge
type RecencyStep struct {
	MaxAge time.Duration
	Score  float64
}

// Table holds the scoring constants. It is passed by value so a Scorer
// never observes changes made by its creator.
type Table struct {
	KeywordWeight float64
	RecencyWeight float64

	// KeywordSaturation is the match count at which the keyword score reaches 1
	KeywordSaturation float64

	// RecencySteps must be ordered by ascending MaxAge
	RecencySteps []RecencyStep
	StaleScore   float64
	UnknownScore float64

	// Precision is the number of decimals the composite score is rounded to
	Precision int
}

// DefaultTable returns the production weights and recency steps
func DefaultTable() Table {
	return Table{
		KeywordWeight:     0.7,
		RecencyWeight:     0.3,
		KeywordSaturation: 3,
		RecencySteps: []RecencyStep{
			{MaxAge: 6 * time.Hour, Score: 1.0},
			{MaxAge: 24 * time.Hour, Score: 0.8},
			{MaxAge: 72 * time.Hour, Score: 0.5},
			{MaxAge: 168 * time.Hour, Score: 0.3},
		},
		StaleScore:   0.1,
		UnknownScore: 0.5,
		Precision:    3,
	}
}

func (t Table) clone() Table {
	steps := make([]RecencyStep, len(t.RecencySteps))
	copy(steps, t.RecencySteps)
	t.RecencySteps = steps
	return t
}

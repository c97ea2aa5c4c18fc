package services

import (
	"math"
	"time"

	"github.com/studylegend/mastery-service/internal/models"
)

// WeightOrder selects which end of the history carries the largest recency
// weight. The observed production behavior weights the oldest entry highest
// under the supplied oldest-to-newest ordering, so that is the default;
// NewestFirst flips the convention without any code change.
type WeightOrder string

const (
	WeightOldestFirst WeightOrder = "oldest_first"
	WeightNewestFirst WeightOrder = "newest_first"
)

const (
	DefaultDecayFactor           = 0.1
	DefaultForgettingDecayFactor = 0.05
)

// ScoringConfig holds the tunable constants of the mastery calculation.
// Zero-valued fields fall back to the defaults.
type ScoringConfig struct {
	// DecayFactor controls the per-day penalty since the last attempt.
	DecayFactor float64 `json:"decay_factor"`
	// ForgettingDecayFactor controls both the per-position recency weights
	// and the repetition discount.
	ForgettingDecayFactor float64 `json:"forgetting_decay_factor"`
	WeightOrder           WeightOrder `json:"weight_order"`
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		DecayFactor:           DefaultDecayFactor,
		ForgettingDecayFactor: DefaultForgettingDecayFactor,
		WeightOrder:           WeightOldestFirst,
	}
}

// ScoreCalculator turns an ordered attempt history into a single mastery
// scalar. It holds no state beyond its configuration; every call is pure.
type ScoreCalculator struct {
	config ScoringConfig
}

func NewScoreCalculator(config ScoringConfig) *ScoreCalculator {
	if config.DecayFactor == 0 {
		config.DecayFactor = DefaultDecayFactor
	}
	if config.ForgettingDecayFactor == 0 {
		config.ForgettingDecayFactor = DefaultForgettingDecayFactor
	}
	if config.WeightOrder == "" {
		config.WeightOrder = WeightOldestFirst
	}
	return &ScoreCalculator{config: config}
}

// ComputeMastery computes the mastery score for one item given its history
// (ordered oldest to newest) and the timestamp of the most recent practice.
// An empty history yields a nil score, never zero: no mastery can be claimed
// either way, and callers must keep the two cases distinct.
func (c *ScoreCalculator) ComputeMastery(history []models.ScoreEntry, lastPracticed *time.Time, now time.Time) (*float64, error) {
	n := len(history)
	if n == 0 {
		return nil, nil
	}

	for _, entry := range history {
		if entry.Value < models.ScoreValueMin || entry.Value > models.ScoreValueMax {
			return nil, NewInvalidInputError("score",
				"score value outside the declared 1-5 domain", entry.Value)
		}
	}

	var weightedSum, totalWeight float64
	for i, entry := range history {
		position := i
		if c.config.WeightOrder == WeightNewestFirst {
			position = n - 1 - i
		}
		weight := math.Exp(-c.config.ForgettingDecayFactor * float64(position))
		weightedSum += entry.Value * weight
		totalWeight += weight
	}
	weightedMean := weightedSum / totalWeight

	forgettingDiscount := 1.0
	if n > 1 {
		forgettingDiscount = math.Exp(-c.config.ForgettingDecayFactor * float64(n-1))
	}

	timeDecay := 1.0
	if lastPracticed != nil {
		days := wholeDaysBetween(now, *lastPracticed)
		timeDecay = math.Exp(-c.config.DecayFactor * float64(days))
	}

	result := weightedMean * forgettingDiscount * timeDecay
	return &result, nil
}

// Config returns the calculator's effective configuration.
func (c *ScoreCalculator) Config() ScoringConfig {
	return c.config
}

// wholeDaysBetween truncates the elapsed time to whole days. A last-practiced
// timestamp in the future clamps to zero rather than producing a negative
// count.
func wholeDaysBetween(now, earlier time.Time) int {
	days := int(now.Sub(earlier).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

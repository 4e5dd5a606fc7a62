package balancer

import (
	"math"

	"topicbot/types"
)

// Ratio splits a selection between a primary and a secondary language
type Ratio struct {
	PrimaryLang   string
	SecondaryLang string
	// PrimaryPct is the share, 0..100, reserved for PrimaryLang
	PrimaryPct int
}

// Targets returns the per-language quotas for maxCount.
// The primary quota is rounded half to even and is never below 1.
func (r Ratio) Targets(maxCount int) (primary, secondary int) {
	primary = int(math.RoundToEven(float64(maxCount) * float64(r.PrimaryPct) / 100))
	if primary < 1 {
		primary = 1
	}
	return primary, maxCount - primary
}

// Balance selects up to maxCount topics honoring the language ratio.
// Input order is treated as rank order. Slots a language cannot fill
// are backfilled from the remaining candidates in rank order.
func Balance(topics []types.ScoredTopic, maxCount int, ratio Ratio) []types.ScoredTopic {
	if maxCount <= 0 || len(topics) == 0 {
		return []types.ScoredTopic{}
	}

	primaryTarget, secondaryTarget := ratio.Targets(maxCount)

	var primaryIdx, secondaryIdx []int
	for i, t := range topics {
		switch t.Lang {
		case ratio.PrimaryLang:
			if len(primaryIdx) < primaryTarget {
				primaryIdx = append(primaryIdx, i)
			}
		case ratio.SecondaryLang:
			if len(secondaryIdx) < secondaryTarget {
				secondaryIdx = append(secondaryIdx, i)
			}
		}
	}

	chosen := make(map[int]bool, maxCount)
	selected := make([]types.ScoredTopic, 0, maxCount)
	for _, i := range append(primaryIdx, secondaryIdx...) {
		chosen[i] = true
		selected = append(selected, topics[i])
	}

	for i := 0; i < len(topics) && len(selected) < maxCount; i++ {
		if !chosen[i] {
			chosen[i] = true
			selected = append(selected, topics[i])
		}
	}

	if len(selected) > maxCount {
		selected = selected[:maxCount]
	}
	return selected
}

package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/place222/social-backend/internal/domain"
)

const (
	locationWeight = 1.0
	languageWeight = 0.7

	// Per-question reasons are only recorded above this similarity.
	reasonSimilarityFloor = 0.7

	maxReasons = 5
)

// signal is one weighted contribution to the compatibility score. Absent
// signals contribute neither score nor weight; a signal with an empty
// reason contributes silently.
type signal struct {
	present    bool
	similarity float64
	weight     float64
	reason     string
}

// Score computes the compatibility score between two users as a weighted
// blend of location, language and per-question answer similarity, together
// with up to 5 human-readable reasons. Pure function over its four inputs.
//
// A pair out of distance range is not disqualified: the location signal is
// skipped entirely and the pair can still match on language and answers.
func Score(respA domain.ResponseMap, profA *domain.Profile, respB domain.ResponseMap, profB *domain.Profile) (float64, []string) {
	signals := make([]signal, 0, 2+len(respA))

	signals = append(signals, locationSignal(profA, profB))
	signals = append(signals, languageSignal(profA, profB))
	signals = append(signals, questionSignals(respA, respB)...)

	var totalScore, totalWeight float64
	var reasons []string
	for _, s := range signals {
		if !s.present {
			continue
		}
		totalScore += s.similarity * s.weight
		totalWeight += s.weight
		if s.reason != "" {
			reasons = append(reasons, s.reason)
		}
	}

	if totalWeight == 0 {
		return 0, nil
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return math.Min(totalScore/totalWeight, 1.0), reasons
}

func locationSignal(profA, profB *domain.Profile) signal {
	if !profA.HasLocation() || !profB.HasLocation() {
		return signal{}
	}

	distance := DistanceKm(*profA.LocationLat, *profA.LocationLng, *profB.LocationLat, *profB.LocationLng)
	maxDistance := math.Min(profA.EffectiveMaxDistanceKm(), profB.EffectiveMaxDistanceKm())
	if distance > maxDistance {
		return signal{}
	}

	return signal{
		present:    true,
		similarity: math.Max(0, 1-distance/maxDistance),
		weight:     locationWeight,
		reason:     fmt.Sprintf("Within %.1fkm distance", distance),
	}
}

func languageSignal(profA, profB *domain.Profile) signal {
	if profA.PreferredLanguage != profB.PreferredLanguage {
		return signal{}
	}
	return signal{
		present:    true,
		similarity: 1.0,
		weight:     languageWeight,
		reason:     "Same preferred language",
	}
}

// questionSignals compares every question both users have answered. The
// intersection is walked in ascending question-ID order so reason ordering
// stays deterministic. Weight and category come from A's stored answer.
func questionSignals(respA, respB domain.ResponseMap) []signal {
	common := make([]int, 0, len(respA))
	for id := range respA {
		if _, ok := respB[id]; ok {
			common = append(common, id)
		}
	}
	sort.Ints(common)

	signals := make([]signal, 0, len(common))
	for _, id := range common {
		a := respA[id]
		b := respB[id]

		similarity := AnswerSimilarity(a.Value, b.Value)
		s := signal{
			present:    true,
			similarity: similarity,
			weight:     a.Weight,
		}
		if similarity > reasonSimilarityFloor {
			s.reason = fmt.Sprintf("Similar %s preferences", a.Category)
		}
		signals = append(signals, s)
	}
	return signals
}

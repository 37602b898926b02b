package matching

import (
	"math"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

// DistanceKm calculates the great-circle distance between two points in
// kilometers using the haversine formula. Inputs are degrees; the caller
// must guard against missing coordinates.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// AnswerSimilarity scores the similarity of two response values in [0,1].
// The rules form a cascade of increasingly weak signals; a later rule only
// fires when the earlier ones are structurally inapplicable:
//
//  1. exact match -> 1.0
//  2. multi-select (either side has >1 comma-separated option) -> Jaccard
//  3. both numeric -> 1 - |n1-n2|/5, clamped at 0 (assumes a 1-5 scale)
//  4. case-insensitive substring -> 0.5
//  5. otherwise -> 0.1, never exactly 0
func AnswerSimilarity(value1, value2 string) float64 {
	if value1 == value2 {
		return 1.0
	}

	set1 := splitOptions(value1)
	set2 := splitOptions(value2)
	if len(set1) > 1 || len(set2) > 1 {
		return jaccard(set1, set2)
	}

	if n1, err1 := strconv.ParseFloat(value1, 64); err1 == nil {
		if n2, err2 := strconv.ParseFloat(value2, 64); err2 == nil {
			const maxDiff = 5.0
			return math.Max(0, 1-math.Abs(n1-n2)/maxDiff)
		}
	}

	l1 := strings.ToLower(value1)
	l2 := strings.ToLower(value2)
	if strings.Contains(l1, l2) || strings.Contains(l2, l1) {
		return 0.5
	}

	return 0.1
}

func splitOptions(value string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		set[strings.TrimSpace(part)] = struct{}{}
	}
	return set
}

func jaccard(set1, set2 map[string]struct{}) float64 {
	intersection := 0
	for v := range set1 {
		if _, ok := set2[v]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

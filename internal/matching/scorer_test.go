package matching

import (
	"fmt"
	"testing"

	"github.com/place222/social-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }

func testProfile(lat, lng *float64, maxKm int, lang string) *domain.Profile {
	return &domain.Profile{
		LocationLat:       lat,
		LocationLng:       lng,
		MaxDistanceKm:     maxKm,
		PreferredLanguage: lang,
		ProfileCompleted:  true,
	}
}

func TestScoreCloseByPairWithSharedAnswers(t *testing.T) {
	profX := testProfile(ptrFloat(37.7749), ptrFloat(-122.4194), 50, "en")
	profY := testProfile(ptrFloat(37.7849), ptrFloat(-122.4094), 50, "en")

	respX := domain.ResponseMap{
		1: {QuestionID: 1, Value: "Hiking,Photography", Category: "interests", Weight: 1.0},
	}
	respY := domain.ResponseMap{
		1: {QuestionID: 1, Value: "Hiking,Photography", Category: "interests", Weight: 1.0},
	}

	score, reasons := Score(respX, profX, respY, profY)

	assert.GreaterOrEqual(t, score, 0.9)
	assert.LessOrEqual(t, score, 1.0)
	assert.Contains(t, reasons, "Same preferred language")
	assert.Contains(t, reasons, "Similar interests preferences")

	require.NotEmpty(t, reasons)
	assert.Regexp(t, `^Within \d+\.\dkm distance$`, reasons[0])
}

func TestScoreDistanceBeyondPreference(t *testing.T) {
	// SF and NYC, both capped at 50km: the location signal is skipped, not
	// zeroed, so the pair still matches on language and answers.
	profX := testProfile(ptrFloat(37.7749), ptrFloat(-122.4194), 50, "en")
	profY := testProfile(ptrFloat(40.7128), ptrFloat(-74.0060), 50, "en")

	respX := domain.ResponseMap{
		1: {QuestionID: 1, Value: "Hiking", Category: "interests", Weight: 1.0},
	}
	respY := domain.ResponseMap{
		1: {QuestionID: 1, Value: "Hiking", Category: "interests", Weight: 1.0},
	}

	score, reasons := Score(respX, profX, respY, profY)

	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Equal(t, []string{"Same preferred language", "Similar interests preferences"}, reasons)
}

func TestScoreNoComparableSignals(t *testing.T) {
	profX := testProfile(nil, nil, 50, "en")
	profY := testProfile(nil, nil, 50, "es")

	score, reasons := Score(domain.ResponseMap{}, profX, domain.ResponseMap{}, profY)

	assert.Zero(t, score)
	assert.Empty(t, reasons)
}

func TestScoreMissingCoordinatesSkipsLocation(t *testing.T) {
	profX := testProfile(ptrFloat(37.7749), ptrFloat(-122.4194), 50, "en")
	profY := testProfile(nil, nil, 50, "en")

	score, reasons := Score(domain.ResponseMap{}, profX, domain.ResponseMap{}, profY)

	// Only the language signal fires: 1.0 * 0.7 / 0.7.
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Equal(t, []string{"Same preferred language"}, reasons)
}

func TestScoreUsesMoreRestrictiveDistancePreference(t *testing.T) {
	// ~1.4km apart, but one side only accepts 1km.
	profX := testProfile(ptrFloat(37.7749), ptrFloat(-122.4194), 1, "en")
	profY := testProfile(ptrFloat(37.7849), ptrFloat(-122.4094), 50, "es")

	score, reasons := Score(domain.ResponseMap{}, profX, domain.ResponseMap{}, profY)

	assert.Zero(t, score)
	assert.Empty(t, reasons)
}

func TestScoreQuestionReasonsDeterministicOrder(t *testing.T) {
	profX := testProfile(nil, nil, 50, "en")
	profY := testProfile(nil, nil, 50, "es")

	respX := domain.ResponseMap{}
	respY := domain.ResponseMap{}
	for id := 1; id <= 4; id++ {
		answer := domain.AnsweredQuestion{
			QuestionID: id,
			Value:      "Hiking",
			Category:   fmt.Sprintf("cat%d", id),
			Weight:     1.0,
		}
		respX[id] = answer
		respY[id] = answer
	}

	want := []string{
		"Similar cat1 preferences",
		"Similar cat2 preferences",
		"Similar cat3 preferences",
		"Similar cat4 preferences",
	}
	for i := 0; i < 10; i++ {
		_, reasons := Score(respX, profX, respY, profY)
		assert.Equal(t, want, reasons)
	}
}

func TestScoreReasonsCappedAtFive(t *testing.T) {
	profX := testProfile(ptrFloat(37.7749), ptrFloat(-122.4194), 50, "en")
	profY := testProfile(ptrFloat(37.7749), ptrFloat(-122.4194), 50, "en")

	respX := domain.ResponseMap{}
	respY := domain.ResponseMap{}
	for id := 1; id <= 8; id++ {
		answer := domain.AnsweredQuestion{
			QuestionID: id,
			Value:      "Hiking",
			Category:   "interests",
			Weight:     1.0,
		}
		respX[id] = answer
		respY[id] = answer
	}

	_, reasons := Score(respX, profX, respY, profY)
	assert.Len(t, reasons, 5)
}

func TestScoreWeightsLowSimilarityAnswers(t *testing.T) {
	profX := testProfile(nil, nil, 50, "en")
	profY := testProfile(nil, nil, 50, "es")

	respX := domain.ResponseMap{
		1: {QuestionID: 1, Value: "3", Category: "dining", Weight: 0.5},
	}
	respY := domain.ResponseMap{
		1: {QuestionID: 1, Value: "5", Category: "dining", Weight: 0.5},
	}

	score, reasons := Score(respX, profX, respY, profY)

	// 0.6 * 0.5 / 0.5; similarity below 0.7 yields no reason.
	assert.InDelta(t, 0.6, score, 1e-9)
	assert.Empty(t, reasons)
}

package onboarding

import (
	"context"
	"fmt"

	"github.com/place222/social-backend/internal/domain"
	"github.com/place222/social-backend/internal/repository"
)

// CacheInvalidator drops cached onboarding data for a user after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type OnboardingUseCase struct {
	questionRepo repository.QuestionRepository
	responseRepo repository.ResponseRepository
	profileRepo  repository.ProfileRepository
	cache        CacheInvalidator
}

func NewOnboardingUseCase(
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	profileRepo repository.ProfileRepository,
	cache CacheInvalidator,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		questionRepo: questionRepo,
		responseRepo: responseRepo,
		profileRepo:  profileRepo,
		cache:        cache,
	}
}

// QuestionResponse is one question localized for the requested language.
type QuestionResponse struct {
	ID           int      `json:"id"`
	Category     string   `json:"category"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options"`
	Weight       float64  `json:"weight"`
	IsRequired   bool     `json:"is_required"`
}

// QuestionsResponse is the localized question bank.
type QuestionsResponse struct {
	Questions  []*QuestionResponse `json:"questions"`
	TotalCount int                 `json:"total_count"`
	Language   string              `json:"language"`
}

// GetQuestions returns all onboarding questions for the given language.
// Unsupported languages fall back to English.
func (uc *OnboardingUseCase) GetQuestions(ctx context.Context, lang string) (*QuestionsResponse, error) {
	if lang != "en" && lang != "es" {
		lang = "en"
	}

	questions, err := uc.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	localized := make([]*QuestionResponse, 0, len(questions))
	for _, q := range questions {
		weight := q.Weight
		if weight == 0 {
			weight = 1.0
		}
		localized = append(localized, &QuestionResponse{
			ID:           q.ID,
			Category:     q.Category,
			QuestionText: q.Text(lang),
			QuestionType: q.QuestionType,
			Options:      q.Options,
			Weight:       weight,
			IsRequired:   q.IsRequired,
		})
	}

	return &QuestionsResponse{
		Questions:  localized,
		TotalCount: len(localized),
		Language:   lang,
	}, nil
}

// ResponseInput is one submitted answer.
type ResponseInput struct {
	QuestionID    int    `json:"question_id" binding:"required"`
	ResponseValue string `json:"response_value" binding:"required"`
}

// ProfileInput carries the optional profile payload submitted alongside
// responses. Absent fields keep their stored values.
type ProfileInput struct {
	DisplayName       *string  `json:"display_name"`
	Bio               *string  `json:"bio"`
	LocationCity      *string  `json:"location_city"`
	LocationLat       *float64 `json:"location_lat"`
	LocationLng       *float64 `json:"location_lng"`
	MaxDistanceKm     *int     `json:"max_distance_km"`
	AgeRangeMin       *int     `json:"age_range_min"`
	AgeRangeMax       *int     `json:"age_range_max"`
	PreferredLanguage *string  `json:"preferred_language"`
}

// SubmitRequest is the onboarding submission payload.
type SubmitRequest struct {
	Responses []ResponseInput `json:"responses" binding:"required,min=1,dive"`
	Profile   *ProfileInput   `json:"profile"`
}

// SubmitResponse acknowledges a submission.
type SubmitResponse struct {
	Message        string `json:"message"`
	ResponsesCount int    `json:"responses_count"`
}

// SubmitResponses upserts every answer, then upserts the profile and marks
// it completed. The cached onboarding data for the user is dropped so the
// next generation run reads fresh values.
func (uc *OnboardingUseCase) SubmitResponses(ctx context.Context, userID string, req *SubmitRequest) (*SubmitResponse, error) {
	for _, input := range req.Responses {
		response := &domain.Response{
			UserID:        userID,
			QuestionID:    input.QuestionID,
			ResponseValue: input.ResponseValue,
		}
		if err := uc.responseRepo.Upsert(ctx, response); err != nil {
			return nil, fmt.Errorf("failed to save response for question %d: %w", input.QuestionID, err)
		}
	}

	upsert := &repository.ProfileUpsert{UserID: userID}
	if req.Profile != nil {
		upsert.DisplayName = req.Profile.DisplayName
		upsert.Bio = req.Profile.Bio
		upsert.LocationCity = req.Profile.LocationCity
		upsert.LocationLat = req.Profile.LocationLat
		upsert.LocationLng = req.Profile.LocationLng
		upsert.MaxDistanceKm = req.Profile.MaxDistanceKm
		upsert.AgeRangeMin = req.Profile.AgeRangeMin
		upsert.AgeRangeMax = req.Profile.AgeRangeMax
		upsert.PreferredLanguage = req.Profile.PreferredLanguage
	}
	if err := uc.profileRepo.Upsert(ctx, upsert); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, userID)
	}

	return &SubmitResponse{
		Message:        "Responses saved successfully",
		ResponsesCount: len(req.Responses),
	}, nil
}

package domain

import "time"

// Question is one onboarding question from the bilingual question bank.
type Question struct {
	ID             int       `json:"id" db:"id"`
	Category       string    `json:"category" db:"category"`
	QuestionTextEN string    `json:"-" db:"question_text_en"`
	QuestionTextES string    `json:"-" db:"question_text_es"`
	QuestionType   string    `json:"question_type" db:"question_type"`
	Options        []string  `json:"options" db:"options"`
	Weight         float64   `json:"weight" db:"weight"`
	IsRequired     bool      `json:"is_required" db:"is_required"`
	CreatedAt      time.Time `json:"-" db:"created_at"`
}

// Text returns the question text for the given language, falling back to English.
func (q *Question) Text(lang string) string {
	if lang == "es" && q.QuestionTextES != "" {
		return q.QuestionTextES
	}
	return q.QuestionTextEN
}

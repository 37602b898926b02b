package domain

import "time"

// Response is a user's stored answer to one onboarding question.
// Unique on (user_id, question_id); multi-select answers are comma-joined.
type Response struct {
	ID            int       `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	QuestionID    int       `json:"question_id" db:"question_id"`
	ResponseValue string    `json:"response_value" db:"response_value"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// AnsweredQuestion is a response joined with its question's category and
// weight, the shape the compatibility scorer consumes.
type AnsweredQuestion struct {
	QuestionID int     `db:"question_id"`
	Value      string  `db:"response_value"`
	Category   string  `db:"category"`
	Weight     float64 `db:"weight"`
}

// ResponseMap keys a user's answered questions by question ID.
type ResponseMap map[int]AnsweredQuestion

package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileIncomplete = errors.New("please complete your profile first")

	ErrQuestionNotFound = errors.New("question not found")

	ErrMatchNotFound       = errors.New("match not found")
	ErrNotMatchParticipant = errors.New("user is not a participant of this match")
	ErrInvalidMatchStatus  = errors.New("invalid match status")

	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidInput      = errors.New("invalid input")
)

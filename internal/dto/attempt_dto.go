package dto

import "time"

// ChosenAnswerDTO is one account's chosen option for one question.
type ChosenAnswerDTO struct {
	QuestionID uint `json:"question_id" binding:"required"`
	OptionID   uint `json:"option_id" binding:"required"`
}

// AttemptSubmitDTO is the request DTO for submitting all answers for a quiz.
// Every question of the quiz must be answered exactly once.
type AttemptSubmitDTO struct {
	DurationSeconds int               `json:"duration_seconds" binding:"min=0"`
	Answers         []ChosenAnswerDTO `json:"answers" binding:"required,min=1,dive"`
}

type AnswerResponseDTO struct {
	ID         uint `json:"id"`
	QuestionID uint `json:"question_id"`
	OptionID   uint `json:"option_id"`
	Correct    bool `json:"correct"`
}

// AttemptDetailDTO is the full result of a graded attempt.
type AttemptDetailDTO struct {
	ID              uint                `json:"id"`
	QuizID          uint                `json:"quiz_id"`
	QuizTitle       string              `json:"quiz_title,omitempty"`
	AccountID       uint                `json:"account_id"`
	Score           int                 `json:"score"`
	SubmittedAt     time.Time           `json:"submitted_at"`
	DurationSeconds int                 `json:"duration_seconds"`
	Answers         []AnswerResponseDTO `json:"answers,omitempty"`
}

// AttemptSummaryDTO is for listing an account's attempts for a quiz.
type AttemptSummaryDTO struct {
	ID              uint      `json:"id"`
	QuizID          uint      `json:"quiz_id"`
	Score           int       `json:"score"`
	SubmittedAt     time.Time `json:"submitted_at"`
	DurationSeconds int       `json:"duration_seconds"`
}

package dto

import "time"

// OptionCreateDTO is used within QuestionCreateDTO for quiz authoring.
type OptionCreateDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO is used within QuizCreateDTO for quiz authoring.
type QuestionCreateDTO struct {
	Prompt   string            `json:"prompt" binding:"required"`
	Kind     string            `json:"kind" binding:"required,oneof=single_choice true_false"`
	Position int               `json:"position" binding:"required,min=1"`
	Options  []OptionCreateDTO `json:"options" binding:"required,min=2,dive"`
}

// QuizCreateDTO is for an authenticated account to author a new quiz with all
// its questions and options in one request.
type QuizCreateDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	Difficulty  string              `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// QuizUpdateDTO updates quiz metadata only. Question edits are out of scope.
type QuizUpdateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
}

// OptionResponseDTO hides correctness from takers. IsCorrect is populated only
// when the requesting account authored the quiz.
type OptionResponseDTO struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct,omitempty"`
}

type QuestionResponseDTO struct {
	ID       uint                `json:"id"`
	QuizID   uint                `json:"quiz_id"`
	Prompt   string              `json:"prompt"`
	Kind     string              `json:"kind"`
	Position int                 `json:"position"`
	Options  []OptionResponseDTO `json:"options,omitempty"`
}

// QuizResponseDTO is used for displaying full quiz details.
type QuizResponseDTO struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Difficulty  string                `json:"difficulty"`
	CreatedBy   uint                  `json:"created_by"`
	Questions   []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// QuizSummaryDTO is used for quiz listings and recommendations.
type QuizSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

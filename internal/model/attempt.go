package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is one completed pass through a quiz. Attempts and their answers are
// immutable once created.
type Attempt struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	AccountID       uint           `json:"account_id" gorm:"not null;index"`
	QuizID          uint           `json:"quiz_id" gorm:"not null;index"`
	Quiz            Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Score           int            `json:"score" gorm:"not null"` // 0-100
	SubmittedAt     time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	DurationSeconds int            `json:"duration_seconds" gorm:"not null"`
	Answers         []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	QuizID    uint           `json:"quiz_id" gorm:"not null;index"`
	Prompt    string         `json:"prompt" gorm:"type:text;not null"`
	Kind      string         `json:"kind" gorm:"not null"` // "single_choice", "true_false"
	Position  int            `json:"position" gorm:"not null"`
	Options   []Option       `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

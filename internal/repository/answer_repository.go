package repository

import (
	"quizforge/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindAllByAccountWithQuestion(accountID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// FindAllByAccountWithQuestion returns every answer the account has ever
// submitted, with the question preloaded. Used for the weak-area statistics.
func (r *answerRepository) FindAllByAccountWithQuestion(accountID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Preload("Question").
		Joins("JOIN attempts ON attempts.id = answers.attempt_id").
		Where("attempts.account_id = ? AND attempts.deleted_at IS NULL", accountID).
		Find(&answers).Error
	return answers, err
}

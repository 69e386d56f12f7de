package repository

import (
	"quizforge/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByIDWithDetails(id uint) (*model.Attempt, error)
	FindAllByQuizAndAccount(quizID, accountID uint) ([]model.Attempt, error)
	FindAllByAccountWithQuiz(accountID uint) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	// GORM creates the associated answers together with the attempt, so a
	// partial submission is never persisted.
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByIDWithDetails(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Quiz").
		Preload("Quiz.Questions").
		Preload("Answers").
		First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindAllByQuizAndAccount(quizID, accountID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("quiz_id = ? AND account_id = ?", quizID, accountID).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindAllByAccountWithQuiz(accountID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Quiz").
		Where("account_id = ?", accountID).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

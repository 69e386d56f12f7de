package repository

import (
	"quizforge/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(account *model.Account) error
	FindByID(id uint) (*model.Account, error)
	FindByEmail(email string) (*model.Account, error)
	ExistsByEmail(email string) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	return r.db.Create(account).Error
}

func (r *accountRepository) FindByID(id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByEmail(email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Account{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

package service

import (
	"gorm.io/gorm"

	"quizforge/internal/model"
	"quizforge/internal/repository"
)

type fakeAccountRepo struct {
	accounts []*model.Account
	nextID   uint

	createCalls int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1}
}

func (f *fakeAccountRepo) Create(account *model.Account) error {
	f.createCalls++
	account.ID = f.nextID
	f.nextID++
	stored := *account
	f.accounts = append(f.accounts, &stored)
	return nil
}

func (f *fakeAccountRepo) FindByID(id uint) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			copy := *a
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) FindByEmail(email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			copy := *a
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) ExistsByEmail(email string) (bool, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeQuizRepo struct {
	quizzes []*model.Quiz
	nextID  uint

	createCalls  int
	deleteCalls  int
	lastDeleted  uint
	updateCalls  int
	byDifficulty []struct {
		difficulty string
		excluded   []uint
		limit      int
	}
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{nextID: 1}
}

func (f *fakeQuizRepo) Create(quiz *model.Quiz) error {
	f.createCalls++
	quiz.ID = f.nextID
	f.nextID++
	for i := range quiz.Questions {
		quiz.Questions[i].ID = f.nextID
		quiz.Questions[i].QuizID = quiz.ID
		f.nextID++
		for j := range quiz.Questions[i].Options {
			quiz.Questions[i].Options[j].ID = f.nextID
			quiz.Questions[i].Options[j].QuestionID = quiz.Questions[i].ID
			f.nextID++
		}
	}
	stored := *quiz
	f.quizzes = append(f.quizzes, &stored)
	return nil
}

func (f *fakeQuizRepo) find(id uint) (*model.Quiz, error) {
	for _, q := range f.quizzes {
		if q.ID == id {
			copy := *q
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	return f.find(id)
}

func (f *fakeQuizRepo) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	return f.find(id)
}

func (f *fakeQuizRepo) FindAllWithQuestionCount() ([]repository.QuizWithQuestionCount, error) {
	out := make([]repository.QuizWithQuestionCount, 0, len(f.quizzes))
	for _, q := range f.quizzes {
		out = append(out, repository.QuizWithQuestionCount{Quiz: *q, QuestionCount: len(q.Questions)})
	}
	return out, nil
}

func (f *fakeQuizRepo) FindByDifficulty(difficulty string, excludeQuizIDs []uint, limit int) ([]model.Quiz, error) {
	f.byDifficulty = append(f.byDifficulty, struct {
		difficulty string
		excluded   []uint
		limit      int
	}{difficulty, excludeQuizIDs, limit})

	excluded := make(map[uint]bool, len(excludeQuizIDs))
	for _, id := range excludeQuizIDs {
		excluded[id] = true
	}

	var out []model.Quiz
	for _, q := range f.quizzes {
		if q.Difficulty != difficulty || excluded[q.ID] {
			continue
		}
		out = append(out, *q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQuizRepo) Update(quiz *model.Quiz) error {
	f.updateCalls++
	for i, q := range f.quizzes {
		if q.ID == quiz.ID {
			stored := *quiz
			f.quizzes[i] = &stored
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeQuizRepo) Delete(id uint) error {
	f.deleteCalls++
	f.lastDeleted = id
	for i, q := range f.quizzes {
		if q.ID == id {
			f.quizzes = append(f.quizzes[:i], f.quizzes[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeQuestionRepo struct {
	countsByQuiz map[uint]int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{countsByQuiz: make(map[uint]int64)}
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) FindByQuizID(quizID uint) ([]model.Question, error) {
	return nil, nil
}

func (f *fakeQuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	return f.countsByQuiz[quizID], nil
}

type fakeAttemptRepo struct {
	attempts []*model.Attempt
	nextID   uint

	// When set, reads populate Attempt.Quiz the way the real repository's
	// Preload does.
	quizRepo *fakeQuizRepo

	createCalls int
	createErr   error
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{nextID: 1}
}

func (f *fakeAttemptRepo) Create(attempt *model.Attempt) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	attempt.ID = f.nextID
	f.nextID++
	for i := range attempt.Answers {
		attempt.Answers[i].ID = f.nextID
		attempt.Answers[i].AttemptID = attempt.ID
		f.nextID++
	}
	stored := *attempt
	f.attempts = append(f.attempts, &stored)
	return nil
}

func (f *fakeAttemptRepo) FindByIDWithDetails(id uint) (*model.Attempt, error) {
	for _, a := range f.attempts {
		if a.ID == id {
			copy := *a
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) FindAllByQuizAndAccount(quizID, accountID uint) ([]model.Attempt, error) {
	var out []model.Attempt
	for _, a := range f.attempts {
		if a.QuizID == quizID && a.AccountID == accountID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) FindAllByAccountWithQuiz(accountID uint) ([]model.Attempt, error) {
	var out []model.Attempt
	for _, a := range f.attempts {
		if a.AccountID != accountID {
			continue
		}
		attempt := *a
		if attempt.Quiz.ID == 0 && f.quizRepo != nil {
			if quiz, err := f.quizRepo.find(attempt.QuizID); err == nil {
				attempt.Quiz = *quiz
			}
		}
		out = append(out, attempt)
	}
	return out, nil
}

type fakeAnswerRepo struct {
	answers []model.Answer
}

func (f *fakeAnswerRepo) FindAllByAccountWithQuestion(accountID uint) ([]model.Answer, error) {
	return f.answers, nil
}

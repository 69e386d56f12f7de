package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// QuizService covers quiz authoring and browsing. Any authenticated account
// may author; update and delete are restricted to the authoring account.
type QuizService interface {
	CreateQuiz(accountID uint, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	GetAllQuizzes() ([]dto.QuizSummaryDTO, error)
	GetQuizDetails(quizID, viewerID uint) (*dto.QuizResponseDTO, error)
	UpdateQuiz(quizID, accountID uint, req dto.QuizUpdateDTO) (*dto.QuizResponseDTO, error)
	DeleteQuiz(quizID, accountID uint) error
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

func (s *quizService) CreateQuiz(accountID uint, req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	if err := validateQuestions(req.Questions); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSubmission, err.Error())
	}

	quiz := model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		CreatedBy:   accountID,
	}
	for _, q := range req.Questions {
		question := model.Question{
			Prompt:   q.Prompt,
			Kind:     q.Kind,
			Position: q.Position,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.Option{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Uint("accountID", accountID).Msg("CreateQuiz: failed to persist quiz")
		return nil, fmt.Errorf("error creating quiz: %w", err)
	}

	log.Info().Uint("quizID", quiz.ID).Uint("accountID", accountID).Msg("Quiz created")
	return s.GetQuizDetails(quiz.ID, accountID)
}

// validateQuestions enforces the structural rules that binding tags cannot
// express: unique positions, exactly one correct option per question, and
// exactly two options for true_false questions.
func validateQuestions(questions []dto.QuestionCreateDTO) error {
	positions := make(map[int]bool)
	for _, q := range questions {
		if positions[q.Position] {
			return fmt.Errorf("duplicate question position %d", q.Position)
		}
		positions[q.Position] = true

		if q.Kind == model.KindTrueFalse && len(q.Options) != 2 {
			return fmt.Errorf("question at position %d (true_false) must have exactly 2 options", q.Position)
		}

		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("question at position %d must have exactly one correct option, got %d", q.Position, correct)
		}
	}
	return nil
}

func (s *quizService) GetAllQuizzes() ([]dto.QuizSummaryDTO, error) {
	quizzesWithCount, err := s.quizRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list quizzes with question count")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	var dtos []dto.QuizSummaryDTO
	for _, qwc := range quizzesWithCount {
		dtos = append(dtos, dto.QuizSummaryDTO{
			ID:            qwc.Quiz.ID,
			Title:         qwc.Quiz.Title,
			Description:   qwc.Quiz.Description,
			Difficulty:    qwc.Quiz.Difficulty,
			QuestionCount: qwc.QuestionCount,
			CreatedAt:     qwc.Quiz.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *quizService) GetQuizDetails(quizID, viewerID uint) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to fetch quiz details")
		return nil, fmt.Errorf("error fetching quiz %d: %w", quizID, err)
	}

	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		log.Error().Err(err).Msg("Failed to copy Quiz model to QuizResponseDTO")
		return nil, fmt.Errorf("error preparing quiz details response: %w", err)
	}

	// Correctness flags are only exposed to the quiz's author. copier fills
	// Options from the model; strip or keep IsCorrect depending on the viewer.
	isAuthor := quiz.CreatedBy == viewerID
	resp.Questions = make([]dto.QuestionResponseDTO, len(quiz.Questions))
	for i, q := range quiz.Questions {
		var qDTO dto.QuestionResponseDTO
		copier.Copy(&qDTO, &q)
		qDTO.Options = make([]dto.OptionResponseDTO, len(q.Options))
		for j, o := range q.Options {
			qDTO.Options[j] = dto.OptionResponseDTO{ID: o.ID, Text: o.Text}
			if isAuthor {
				correct := o.IsCorrect
				qDTO.Options[j].IsCorrect = &correct
			}
		}
		resp.Questions[i] = qDTO
	}
	return &resp, nil
}

func (s *quizService) UpdateQuiz(quizID, accountID uint, req dto.QuizUpdateDTO) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		return nil, fmt.Errorf("error fetching quiz %d: %w", quizID, err)
	}
	if quiz.CreatedBy != accountID {
		return nil, ErrForbidden
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Difficulty = req.Difficulty
	if err := s.quizRepo.Update(quiz); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("UpdateQuiz: failed to persist changes")
		return nil, fmt.Errorf("error updating quiz %d: %w", quizID, err)
	}

	log.Info().Uint("quizID", quizID).Uint("accountID", accountID).Msg("Quiz updated")
	return s.GetQuizDetails(quizID, accountID)
}

func (s *quizService) DeleteQuiz(quizID, accountID uint) error {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		return fmt.Errorf("error fetching quiz %d: %w", quizID, err)
	}
	if quiz.CreatedBy != accountID {
		return ErrForbidden
	}

	if err := s.quizRepo.Delete(quizID); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("DeleteQuiz: failed to delete")
		return fmt.Errorf("error deleting quiz %d: %w", quizID, err)
	}
	log.Info().Uint("quizID", quizID).Uint("accountID", accountID).Msg("Quiz deleted")
	return nil
}

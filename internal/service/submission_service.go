package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// SubmissionService grades and records quiz attempts. A submission must
// answer every question of the quiz exactly once, with options that belong to
// their claimed question; anything else rejects the whole submission and
// nothing is persisted.
type SubmissionService interface {
	SubmitQuiz(quizID, accountID uint, req dto.AttemptSubmitDTO) (*dto.AttemptDetailDTO, error)
	GetAttemptDetails(attemptID, accountID uint) (*dto.AttemptDetailDTO, error)
	GetAccountAttemptsForQuiz(quizID, accountID uint) ([]dto.AttemptSummaryDTO, error)
}

type submissionService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	scoreCalc   ScoreCalculatorService
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	scoreCalc ScoreCalculatorService,
) SubmissionService {
	return &submissionService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		scoreCalc:   scoreCalc,
	}
}

func (s *submissionService) SubmitQuiz(quizID, accountID uint, req dto.AttemptSubmitDTO) (*dto.AttemptDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("SubmitQuiz: failed to load quiz")
		return nil, fmt.Errorf("error loading quiz %d: %w", quizID, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz %d has no questions", ErrInvalidSubmission, quizID)
	}

	// Index stored questions and options so submitted IDs can be checked
	// against what the quiz actually contains.
	questionMap := make(map[uint]model.Question, len(quiz.Questions))
	correctOption := make(map[uint]map[uint]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questionMap[q.ID] = q
		options := make(map[uint]bool, len(q.Options))
		for _, o := range q.Options {
			options[o.ID] = o.IsCorrect
		}
		correctOption[q.ID] = options
	}

	answered := make(map[uint]bool, len(req.Answers))
	correctCount := 0
	answers := make([]model.Answer, 0, len(req.Answers))
	for _, chosen := range req.Answers {
		options, exists := correctOption[chosen.QuestionID]
		if !exists {
			return nil, fmt.Errorf("%w: question %d does not belong to quiz %d", ErrInvalidSubmission, chosen.QuestionID, quizID)
		}
		if answered[chosen.QuestionID] {
			return nil, fmt.Errorf("%w: question %d answered more than once", ErrInvalidSubmission, chosen.QuestionID)
		}
		answered[chosen.QuestionID] = true

		isCorrect, owns := options[chosen.OptionID]
		if !owns {
			return nil, fmt.Errorf("%w: option %d does not belong to question %d", ErrInvalidSubmission, chosen.OptionID, chosen.QuestionID)
		}
		if isCorrect {
			correctCount++
		}
		answers = append(answers, model.Answer{
			QuestionID: chosen.QuestionID,
			OptionID:   chosen.OptionID,
			Correct:    isCorrect,
		})
	}

	if len(answered) != len(quiz.Questions) {
		return nil, fmt.Errorf("%w: quiz %d has %d questions but %d were answered",
			ErrInvalidSubmission, quizID, len(quiz.Questions), len(answered))
	}

	score, err := s.scoreCalc.Score(correctCount, len(quiz.Questions))
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("SubmitQuiz: score calculation failed")
		return nil, fmt.Errorf("error calculating score: %w", err)
	}

	attempt := model.Attempt{
		AccountID:       accountID,
		QuizID:          quizID,
		Score:           score,
		SubmittedAt:     time.Now(),
		DurationSeconds: req.DurationSeconds,
		Answers:         answers,
	}
	// Attempt and answers are persisted together; concurrent submissions from
	// the same account cannot interleave a half-written attempt.
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("accountID", accountID).Msg("SubmitQuiz: failed to persist attempt")
		return nil, fmt.Errorf("error recording attempt: %w", err)
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("quizID", quizID).
		Uint("accountID", accountID).
		Int("score", score).
		Msg("Quiz attempt recorded")

	resp, err := s.buildDetailDTO(&attempt, questionMap)
	if err != nil {
		return nil, err
	}
	resp.QuizTitle = quiz.Title
	return resp, nil
}

func (s *submissionService) GetAttemptDetails(attemptID, accountID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %d", ErrNotFound, attemptID)
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttemptDetails: failed to load attempt")
		return nil, fmt.Errorf("error loading attempt %d: %w", attemptID, err)
	}
	if attempt.AccountID != accountID {
		return nil, ErrForbidden
	}

	questionMap := make(map[uint]model.Question, len(attempt.Quiz.Questions))
	for _, q := range attempt.Quiz.Questions {
		questionMap[q.ID] = q
	}

	resp, err := s.buildDetailDTO(attempt, questionMap)
	if err != nil {
		return nil, err
	}
	if attempt.Quiz.ID != 0 {
		resp.QuizTitle = attempt.Quiz.Title
	}
	return resp, nil
}

func (s *submissionService) GetAccountAttemptsForQuiz(quizID, accountID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByQuizAndAccount(quizID, accountID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("accountID", accountID).Msg("GetAccountAttemptsForQuiz: repository error")
		return nil, fmt.Errorf("error fetching attempts for quiz %d: %w", quizID, err)
	}

	var dtos []dto.AttemptSummaryDTO
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("GetAccountAttemptsForQuiz: error copying attempt to summary DTO")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

// buildDetailDTO copies an attempt into its response DTO with answers ordered
// by question position.
func (s *submissionService) buildDetailDTO(attempt *model.Attempt, questionMap map[uint]model.Question) (*dto.AttemptDetailDTO, error) {
	var resp dto.AttemptDetailDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Msg("Failed to copy attempt model to DTO")
		return nil, fmt.Errorf("error preparing attempt response: %w", err)
	}

	ordered := make([]model.Answer, len(attempt.Answers))
	copy(ordered, attempt.Answers)
	if len(questionMap) > 0 {
		sort.SliceStable(ordered, func(i, j int) bool {
			qi, oki := questionMap[ordered[i].QuestionID]
			qj, okj := questionMap[ordered[j].QuestionID]
			if !oki || !okj {
				return false
			}
			return qi.Position < qj.Position
		})
	}

	resp.Answers = make([]dto.AnswerResponseDTO, len(ordered))
	for i, ans := range ordered {
		resp.Answers[i] = dto.AnswerResponseDTO{
			ID:         ans.ID,
			QuestionID: ans.QuestionID,
			OptionID:   ans.OptionID,
			Correct:    ans.Correct,
		}
	}
	return &resp, nil
}

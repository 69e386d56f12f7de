package service

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"quizforge/internal/dto"
	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// Learning speed classification thresholds, in mean seconds per answered
// question.
const (
	fastSpeedThreshold   = 20.0
	steadySpeedThreshold = 45.0
)

// weakAreaAccuracy is the historical accuracy below which a question kind is
// reported as a weak area.
const weakAreaAccuracy = 0.5

// RecommendationService derives per-account statistics from attempt history
// and recommends quizzes at the account's preferred difficulty. This is a
// single-pass heuristic, not a trained model.
type RecommendationService interface {
	GetAccountStats(accountID uint) (*dto.AccountStatsDTO, error)
	Recommend(accountID uint, limit int) ([]dto.QuizSummaryDTO, error)
}

type recommendationService struct {
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

func NewRecommendationService(
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
) RecommendationService {
	return &recommendationService{
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
	}
}

func (s *recommendationService) GetAccountStats(accountID uint) (*dto.AccountStatsDTO, error) {
	attempts, err := s.attemptRepo.FindAllByAccountWithQuiz(accountID)
	if err != nil {
		log.Error().Err(err).Uint("accountID", accountID).Msg("GetAccountStats: failed to load attempts")
		return nil, fmt.Errorf("error loading attempts for account %d: %w", accountID, err)
	}
	answers, err := s.answerRepo.FindAllByAccountWithQuestion(accountID)
	if err != nil {
		log.Error().Err(err).Uint("accountID", accountID).Msg("GetAccountStats: failed to load answers")
		return nil, fmt.Errorf("error loading answers for account %d: %w", accountID, err)
	}

	stats := dto.AccountStatsDTO{
		TotalAttempts:       len(attempts),
		MeanScore:           meanScore(attempts),
		PreferredDifficulty: preferredDifficulty(attempts),
		LearningSpeed:       learningSpeed(attempts, len(answers)),
		WeakAreas:           weakAreas(answers),
	}
	return &stats, nil
}

func (s *recommendationService) Recommend(accountID uint, limit int) ([]dto.QuizSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByAccountWithQuiz(accountID)
	if err != nil {
		log.Error().Err(err).Uint("accountID", accountID).Msg("Recommend: failed to load attempts")
		return nil, fmt.Errorf("error loading attempts for account %d: %w", accountID, err)
	}

	preferred := preferredDifficulty(attempts)

	attemptedIDs := make([]uint, 0, len(attempts))
	seen := make(map[uint]bool, len(attempts))
	for _, a := range attempts {
		if !seen[a.QuizID] {
			seen[a.QuizID] = true
			attemptedIDs = append(attemptedIDs, a.QuizID)
		}
	}

	quizzes, err := s.quizRepo.FindByDifficulty(preferred, attemptedIDs, limit)
	if err != nil {
		log.Error().Err(err).Str("difficulty", preferred).Msg("Recommend: failed to load quizzes")
		return nil, fmt.Errorf("error loading %s quizzes: %w", preferred, err)
	}

	dtos := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		count, err := s.questionRepo.CountByQuizID(quiz.ID)
		if err != nil {
			log.Warn().Err(err).Uint("quizID", quiz.ID).Msg("Recommend: failed to count questions, leaving count at zero")
		}
		dtos = append(dtos, dto.QuizSummaryDTO{
			ID:            quiz.ID,
			Title:         quiz.Title,
			Description:   quiz.Description,
			Difficulty:    quiz.Difficulty,
			QuestionCount: int(count),
			CreatedAt:     quiz.CreatedAt,
		})
	}

	log.Info().
		Uint("accountID", accountID).
		Str("preferred", preferred).
		Int("count", len(dtos)).
		Msg("Recommendations computed")
	return dtos, nil
}

func meanScore(attempts []model.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	total := 0
	for _, a := range attempts {
		total += a.Score
	}
	mean := float64(total) / float64(len(attempts))
	return math.Round(mean*100) / 100
}

// preferredDifficulty is the difficulty tag at which the account historically
// scores highest on average. Ties are broken deterministically by difficulty
// order (beginner < intermediate < advanced). Accounts without attempts fall
// back to beginner.
func preferredDifficulty(attempts []model.Attempt) string {
	if len(attempts) == 0 {
		return model.DifficultyBeginner
	}

	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, a := range attempts {
		tag := a.Quiz.Difficulty
		if !model.ValidDifficulty(tag) {
			continue
		}
		totals[tag] += a.Score
		counts[tag]++
	}

	best := model.DifficultyBeginner
	bestMean := -1.0
	for _, tag := range model.Difficulties {
		if counts[tag] == 0 {
			continue
		}
		mean := float64(totals[tag]) / float64(counts[tag])
		if mean > bestMean {
			best = tag
			bestMean = mean
		}
	}
	return best
}

// learningSpeed classifies the mean seconds spent per answered question.
func learningSpeed(attempts []model.Attempt, answerCount int) string {
	if answerCount == 0 {
		return "steady"
	}
	totalSeconds := 0
	for _, a := range attempts {
		totalSeconds += a.DurationSeconds
	}
	perQuestion := float64(totalSeconds) / float64(answerCount)
	switch {
	case perQuestion < fastSpeedThreshold:
		return "fast"
	case perQuestion < steadySpeedThreshold:
		return "steady"
	default:
		return "deliberate"
	}
}

// weakAreas reports the question kinds where the account's answer accuracy is
// below 50%, in a fixed kind order.
func weakAreas(answers []model.Answer) []string {
	totals := make(map[string]int)
	correct := make(map[string]int)
	for _, ans := range answers {
		kind := ans.Question.Kind
		if kind == "" {
			continue
		}
		totals[kind]++
		if ans.Correct {
			correct[kind]++
		}
	}

	weak := []string{}
	for _, kind := range []string{model.KindSingleChoice, model.KindTrueFalse} {
		if totals[kind] == 0 {
			continue
		}
		if float64(correct[kind])/float64(totals[kind]) < weakAreaAccuracy {
			weak = append(weak, kind)
		}
	}
	return weak
}

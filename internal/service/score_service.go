package service

import (
	"fmt"
	"math"
)

const (
	MinScore = 0
	MaxScore = 100
)

// ScoreCalculatorService converts a count of correct answers into the 0-100
// attempt score. No partial credit: an answer is either correct or not.
type ScoreCalculatorService interface {
	Score(correct, total int) (int, error)
}

type scoreCalculatorService struct{}

func NewScoreCalculatorService() ScoreCalculatorService {
	return &scoreCalculatorService{}
}

// Score is round(100 * correct / total). 3 correct of 5 yields 60.
func (s *scoreCalculatorService) Score(correct, total int) (int, error) {
	if total <= 0 {
		return 0, fmt.Errorf("total question count must be positive, got %d", total)
	}
	if correct < 0 || correct > total {
		return 0, fmt.Errorf("correct count %d is out of valid range (0-%d)", correct, total)
	}

	score := int(math.Round(float64(correct) / float64(total) * float64(MaxScore)))
	if score > MaxScore {
		score = MaxScore
	}
	if score < MinScore {
		score = MinScore
	}
	return score, nil
}

package service

import "testing"

func TestScoreCalculator(t *testing.T) {
	calc := NewScoreCalculatorService()

	tests := []struct {
		name    string
		correct int
		total   int
		want    int
	}{
		{"three of five", 3, 5, 60},
		{"all correct", 2, 2, 100},
		{"none correct", 0, 4, 0},
		{"one of three rounds", 1, 3, 33},
		{"two of three rounds", 2, 3, 67},
		{"single question correct", 1, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Score(tt.correct, tt.total)
			if err != nil {
				t.Fatalf("Score(%d, %d) returned error: %v", tt.correct, tt.total, err)
			}
			if got != tt.want {
				t.Errorf("Score(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestScoreCalculatorMonotonic(t *testing.T) {
	calc := NewScoreCalculatorService()

	prev := -1
	for correct := 0; correct <= 10; correct++ {
		got, err := calc.Score(correct, 10)
		if err != nil {
			t.Fatalf("Score(%d, 10) returned error: %v", correct, err)
		}
		if got < prev {
			t.Fatalf("score decreased from %d to %d at correct=%d", prev, got, correct)
		}
		prev = got
	}
}

func TestScoreCalculatorRejectsInvalidInput(t *testing.T) {
	calc := NewScoreCalculatorService()

	if _, err := calc.Score(1, 0); err == nil {
		t.Errorf("expected error for zero total")
	}
	if _, err := calc.Score(-1, 5); err == nil {
		t.Errorf("expected error for negative correct count")
	}
	if _, err := calc.Score(6, 5); err == nil {
		t.Errorf("expected error for correct count above total")
	}
}

package service

import (
	"testing"

	"quizforge/internal/model"
)

func attemptFor(accountID uint, quizID uint, difficulty string, score, durationSeconds int) *model.Attempt {
	return &model.Attempt{
		AccountID:       accountID,
		QuizID:          quizID,
		Quiz:            model.Quiz{ID: quizID, Difficulty: difficulty},
		Score:           score,
		DurationSeconds: durationSeconds,
	}
}

func seedQuiz(t *testing.T, repo *fakeQuizRepo, title, difficulty string) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{Title: title, Difficulty: difficulty, CreatedBy: 1}
	if err := repo.Create(quiz); err != nil {
		t.Fatalf("seeding quiz %q: %v", title, err)
	}
	return quiz
}

func newRecommendationService(quizRepo *fakeQuizRepo, attemptRepo *fakeAttemptRepo, answerRepo *fakeAnswerRepo) RecommendationService {
	return NewRecommendationService(attemptRepo, answerRepo, quizRepo, newFakeQuestionRepo())
}

func TestRecommendFallsBackToBeginnerWithoutAttempts(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	seedQuiz(t, quizRepo, "Easy A", model.DifficultyBeginner)
	seedQuiz(t, quizRepo, "Hard A", model.DifficultyAdvanced)
	svc := newRecommendationService(quizRepo, newFakeAttemptRepo(), &fakeAnswerRepo{})

	got, err := svc.Recommend(7, 10)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(got))
	}
	if got[0].Difficulty != model.DifficultyBeginner {
		t.Errorf("difficulty = %q, want beginner", got[0].Difficulty)
	}
}

func TestRecommendFiltersByPreferredDifficulty(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	taken := seedQuiz(t, quizRepo, "Easy A", model.DifficultyBeginner)
	seedQuiz(t, quizRepo, "Easy B", model.DifficultyBeginner)
	seedQuiz(t, quizRepo, "Mid A", model.DifficultyIntermediate)

	attemptRepo := newFakeAttemptRepo()
	if err := attemptRepo.Create(attemptFor(7, taken.ID, model.DifficultyBeginner, 80, 60)); err != nil {
		t.Fatal(err)
	}
	svc := newRecommendationService(quizRepo, attemptRepo, &fakeAnswerRepo{})

	got, err := svc.Recommend(7, 10)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	for _, q := range got {
		if q.Difficulty != model.DifficultyBeginner {
			t.Errorf("recommended %q with difficulty %q, want beginner only", q.Title, q.Difficulty)
		}
		if q.ID == taken.ID {
			t.Errorf("already-attempted quiz %q was recommended", q.Title)
		}
	}
	if len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1 (the unattempted beginner quiz)", len(got))
	}
}

func TestRecommendHonoursLimit(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	for _, title := range []string{"Easy A", "Easy B", "Easy C"} {
		seedQuiz(t, quizRepo, title, model.DifficultyBeginner)
	}
	svc := newRecommendationService(quizRepo, newFakeAttemptRepo(), &fakeAnswerRepo{})

	got, err := svc.Recommend(7, 2)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got))
	}
}

func TestPreferredDifficultyPicksHighestMean(t *testing.T) {
	attempts := []model.Attempt{
		*attemptFor(7, 1, model.DifficultyBeginner, 60, 0),
		*attemptFor(7, 2, model.DifficultyIntermediate, 90, 0),
		*attemptFor(7, 3, model.DifficultyIntermediate, 70, 0),
	}
	if got := preferredDifficulty(attempts); got != model.DifficultyIntermediate {
		t.Errorf("preferredDifficulty = %q, want intermediate", got)
	}
}

func TestPreferredDifficultyTieBreaksTowardsEasier(t *testing.T) {
	attempts := []model.Attempt{
		*attemptFor(7, 1, model.DifficultyAdvanced, 80, 0),
		*attemptFor(7, 2, model.DifficultyBeginner, 80, 0),
	}
	if got := preferredDifficulty(attempts); got != model.DifficultyBeginner {
		t.Errorf("preferredDifficulty = %q, want beginner on tie", got)
	}
}

func TestGetAccountStats(t *testing.T) {
	attemptRepo := newFakeAttemptRepo()
	if err := attemptRepo.Create(attemptFor(7, 1, model.DifficultyBeginner, 100, 30)); err != nil {
		t.Fatal(err)
	}
	if err := attemptRepo.Create(attemptFor(7, 2, model.DifficultyBeginner, 50, 90)); err != nil {
		t.Fatal(err)
	}

	answerRepo := &fakeAnswerRepo{answers: []model.Answer{
		{Question: model.Question{Kind: model.KindSingleChoice}, Correct: true},
		{Question: model.Question{Kind: model.KindSingleChoice}, Correct: true},
		{Question: model.Question{Kind: model.KindTrueFalse}, Correct: false},
		{Question: model.Question{Kind: model.KindTrueFalse}, Correct: false},
	}}

	svc := newRecommendationService(newFakeQuizRepo(), attemptRepo, answerRepo)
	stats, err := svc.GetAccountStats(7)
	if err != nil {
		t.Fatalf("GetAccountStats returned error: %v", err)
	}

	if stats.TotalAttempts != 2 {
		t.Errorf("total attempts = %d, want 2", stats.TotalAttempts)
	}
	if stats.MeanScore != 75 {
		t.Errorf("mean score = %v, want 75", stats.MeanScore)
	}
	if stats.PreferredDifficulty != model.DifficultyBeginner {
		t.Errorf("preferred difficulty = %q, want beginner", stats.PreferredDifficulty)
	}
	// 120 seconds over 4 answers = 30s/question.
	if stats.LearningSpeed != "steady" {
		t.Errorf("learning speed = %q, want steady", stats.LearningSpeed)
	}
	if len(stats.WeakAreas) != 1 || stats.WeakAreas[0] != model.KindTrueFalse {
		t.Errorf("weak areas = %v, want [true_false]", stats.WeakAreas)
	}
}

func TestGetAccountStatsEmptyHistory(t *testing.T) {
	svc := newRecommendationService(newFakeQuizRepo(), newFakeAttemptRepo(), &fakeAnswerRepo{})

	stats, err := svc.GetAccountStats(7)
	if err != nil {
		t.Fatalf("GetAccountStats returned error: %v", err)
	}
	if stats.TotalAttempts != 0 || stats.MeanScore != 0 {
		t.Errorf("empty history stats = %+v, want zero counts", stats)
	}
	if stats.PreferredDifficulty != model.DifficultyBeginner {
		t.Errorf("preferred difficulty = %q, want beginner fallback", stats.PreferredDifficulty)
	}
	if len(stats.WeakAreas) != 0 {
		t.Errorf("weak areas = %v, want empty", stats.WeakAreas)
	}
}

func TestLearningSpeedClassification(t *testing.T) {
	tests := []struct {
		name        string
		duration    int
		answerCount int
		want        string
	}{
		{"fast", 30, 3, "fast"},
		{"steady", 90, 3, "steady"},
		{"deliberate", 300, 3, "deliberate"},
		{"no answers", 0, 0, "steady"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := []model.Attempt{{DurationSeconds: tt.duration}}
			if got := learningSpeed(attempts, tt.answerCount); got != tt.want {
				t.Errorf("learningSpeed = %q, want %q", got, tt.want)
			}
		})
	}
}

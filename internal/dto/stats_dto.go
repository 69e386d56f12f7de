package dto

// AccountStatsDTO summarises an account's attempt history.
type AccountStatsDTO struct {
	TotalAttempts       int      `json:"total_attempts"`
	MeanScore           float64  `json:"mean_score"`
	PreferredDifficulty string   `json:"preferred_difficulty"`
	LearningSpeed       string   `json:"learning_speed"` // "fast", "steady", "deliberate"
	WeakAreas           []string `json:"weak_areas"`     // question kinds with accuracy below 50%
}

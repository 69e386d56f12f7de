package model

// Difficulty is the closed set of quiz difficulty tags. Arbitrary strings are
// rejected at the binding layer.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Difficulties is ordered from easiest to hardest. The order doubles as the
// deterministic tie-break when two tags have the same mean score.
var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Question kinds.
const (
	KindSingleChoice = "single_choice"
	KindTrueFalse    = "true_false"
)

func ValidDifficulty(tag string) bool {
	for _, d := range Difficulties {
		if d == tag {
			return true
		}
	}
	return false
}

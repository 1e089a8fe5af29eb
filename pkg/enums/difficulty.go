package enums

import "fmt"

// Difficulty grades how demanding a project is for participants.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether the difficulty is one of the known grades.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty converts a raw string into a Difficulty.
func ParseDifficulty(value string) (Difficulty, error) {
	d := Difficulty(value)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid difficulty %q", value)
	}
	return d, nil
}

package bot

import (
	"fmt"
)

// BotLevel selects a strategy tier.
type BotLevel int

// The zero value is the normal tier, matching LevelFromDifficulty's default.
const (
	BotLevelNormal BotLevel = iota
	BotLevelEasy
	BotLevelHard
)

// LevelFromDifficulty maps an identity's difficulty string to a strategy
// tier, defaulting to normal for unknown values.
func LevelFromDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "easy":
		return BotLevelEasy
	case "hard":
		return BotLevelHard
	default:
		return BotLevelNormal
	}
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return &EasyBot{}, nil
	case BotLevelNormal:
		return &NormalBot{}, nil
	case BotLevelHard:
		return &HardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent playing at the identity's resolved tier.
func NewAgent(identity BotIdentity) (*Agent, error) {
	brain, err := NewBrain(identity.Level)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       identity.UserID,
		Name:     identity.DisplayName,
		Strategy: brain,
	}, nil
}

package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// botUserIDPrefix marks every user id the bot pool hands out, including
// synthesized stand-ins.
const botUserIDPrefix = "bot_"

// BotIdentity is one profile from the roster file.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "normal", "hard"
	AvatarIndex int    `json:"avatar_index"`

	// Level is resolved from Difficulty when the roster is built.
	Level BotLevel `json:"-"`
}

// Roster is the pool of bot profiles a match draws its agents from.
type Roster struct {
	pool []BotIdentity
	byID map[string]BotIdentity
}

// LoadRoster reads bot profiles from a JSON file and resolves each
// profile's strategy tier.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bot roster: %w", err)
	}
	var pool []BotIdentity
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("unmarshal bot roster: %w", err)
	}
	return NewRoster(pool), nil
}

// NewRoster indexes the given profiles. Profiles without a user id are
// dropped.
func NewRoster(pool []BotIdentity) *Roster {
	r := &Roster{byID: make(map[string]BotIdentity)}
	for _, identity := range pool {
		if identity.UserID == "" {
			continue
		}
		identity.Level = LevelFromDifficulty(identity.Difficulty)
		r.pool = append(r.pool, identity)
		r.byID[identity.UserID] = identity
	}
	return r
}

// Size returns the number of profiles in the pool.
func (r *Roster) Size() int {
	if r == nil {
		return 0
	}
	return len(r.pool)
}

// Identity returns the profile for a seat index, wrapping around the pool.
// An empty roster synthesizes a normal-tier stand-in.
func (r *Roster) Identity(index int) BotIdentity {
	if r.Size() == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("%sfill-%d", botUserIDPrefix, index),
			DisplayName: fmt.Sprintf("AI Player %d", index+1),
			Level:       BotLevelNormal,
		}
	}
	return r.pool[index%len(r.pool)]
}

// Lookup returns the profile registered under the given user id.
func (r *Roster) Lookup(userID string) (BotIdentity, bool) {
	if r == nil {
		return BotIdentity{}, false
	}
	identity, ok := r.byID[userID]
	return identity, ok
}

// DisplayName returns the profile's display name, falling back to the
// username. Empty string when the id is not in the pool.
func (r *Roster) DisplayName(userID string) string {
	identity, ok := r.Lookup(userID)
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// IsBot reports whether the given user id was handed out by a bot roster.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, botUserIDPrefix)
}

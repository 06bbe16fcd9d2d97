package ports

import "context"

// PlayerSnapshot captures one seat's game state for persistence.
type PlayerSnapshot struct {
	UserID    string   `json:"user_id"`
	Seat      int      `json:"seat"`
	Hand      []string `json:"hand"` // canonical card ids
	HasPassed bool     `json:"has_passed"`
	Finished  bool     `json:"finished"`
}

// MatchSnapshot is the persisted form of an in-flight match, sufficient to
// restore the authoritative game after a handler restart. Timer state is
// stored as wire values so the countdown resumes against the original
// deadline rather than restarting.
type MatchSnapshot struct {
	MatchID     string           `json:"match_id"`
	Phase       string           `json:"phase"`
	Seats       []string         `json:"seats"`
	OwnerSeat   int              `json:"owner_seat"`
	CurrentTurn int              `json:"current_turn"`
	FirstPlay   bool             `json:"first_play"`
	Players     []PlayerSnapshot `json:"players"`

	LastPlaySeat  int      `json:"last_play_seat"`
	LastPlayCards []string `json:"last_play_cards"`
	PlayedCards   []string `json:"played_cards"`
	FinishOrder   []string `json:"finish_order"`

	AutoPassStartedAtMs int64 `json:"auto_pass_started_at_ms"`
	AutoPassDurationMs  int64 `json:"auto_pass_duration_ms"`

	SavedAtMs int64 `json:"saved_at_ms"`
}

// SnapshotStore persists match snapshots between handler invocations.
type SnapshotStore interface {
	// Save writes the snapshot, replacing any previous one for the match.
	Save(ctx context.Context, snapshot *MatchSnapshot) error

	// Load returns the snapshot for a match, or nil when none exists.
	Load(ctx context.Context, matchID string) (*MatchSnapshot, error)

	// Delete removes the snapshot once the match has concluded.
	Delete(ctx context.Context, matchID string) error
}

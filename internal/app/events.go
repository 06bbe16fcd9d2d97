package app

import (
	"time"

	"bigtwo/internal/domain"
)

// EventKind identifies emitted domain events for dispatch.
type EventKind string

const (
	EventHandDealt     EventKind = "hand_dealt"
	EventGameStarted   EventKind = "game_started"
	EventCardPlayed    EventKind = "card_played"
	EventTurnPassed    EventKind = "turn_passed"
	EventAutoPassArmed EventKind = "auto_pass_armed"
	EventGameEnded     EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type HandDealtPayload struct {
	UserID string
	Hand   []domain.Card
}

type GameStartedPayload struct {
	FirstTurnSeat int
	FirstPlay     bool // true when the opening play must include the 3 of diamonds
}

type CardPlayedPayload struct {
	Seat         int
	Cards        []domain.Card
	ComboType    domain.ComboType
	NextTurnSeat int
	NewRound     bool
}

type TurnPassedPayload struct {
	Seat         int
	NextTurnSeat int
	NewRound     bool
	Auto         bool // pass issued by the auto-pass countdown
}

type AutoPassArmedPayload struct {
	Seat      int // seat whose play nothing can beat
	StartedAt time.Time
	Duration  time.Duration
}

type GameEndedPayload struct {
	FinishOrderSeats []int
}

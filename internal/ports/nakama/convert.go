package nakama

import (
	"bigtwo/internal/domain"
)

// Wire messages exchanged with clients. Cards travel as canonical ids
// ("3D", "10H", "2S") so payloads stay human-readable in logs and debuggers.

type playCardsRequest struct {
	Cards []string `json:"cards"`
}

type playerStateMsg struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
}

type matchStateMsg struct {
	Seats     []string         `json:"seats"`
	OwnerSeat int              `json:"owner_seat"`
	State     string           `json:"state"`
	Players   []playerStateMsg `json:"players"`
}

type gameStartedMsg struct {
	FirstTurnSeat int  `json:"first_turn_seat"`
	FirstPlay     bool `json:"first_play"`
}

type handDealtMsg struct {
	Hand []string `json:"hand"`
}

type cardPlayedMsg struct {
	Seat         int      `json:"seat"`
	Cards        []string `json:"cards"`
	ComboType    string   `json:"combo_type"`
	NextTurnSeat int      `json:"next_turn_seat"`
	NewRound     bool     `json:"new_round"`
}

type turnPassedMsg struct {
	Seat         int  `json:"seat"`
	NextTurnSeat int  `json:"next_turn_seat"`
	NewRound     bool `json:"new_round"`
	Auto         bool `json:"auto"`
}

type autoPassArmedMsg struct {
	Seat        int   `json:"seat"`
	StartedAtMs int64 `json:"started_at_ms"`
	DurationMs  int64 `json:"duration_ms"`
	RemainingMs int64 `json:"remaining_ms"`
}

type gameEndedMsg struct {
	FinishOrderSeats []int `json:"finish_order_seats"`
}

type gameErrorMsg struct {
	Code         int    `json:"code"`
	Message      string `json:"message"`
	RequiredCard string `json:"required_card,omitempty"`
}

// matchLabel is the searchable label attached to the match.
type matchLabel struct {
	Game  string `json:"game"`
	Open  int    `json:"open"`
	State string `json:"state"`
}

func cardsToWire(cards []domain.Card) []string {
	return domain.CardIDs(cards)
}

func cardsFromWire(ids []string) ([]domain.Card, error) {
	return domain.ParseCardIDs(ids)
}

package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a game concludes.
	PhaseEnded Phase = "ended"
)

// Player holds state for a participant in the game.
type Player struct {
	UserID    string
	Seat      int // 0-based seat index
	Hand      []Card
	HasPassed bool // passed in the current round
	Finished  bool // emptied their hand
}

// Game holds the authoritative state for one Big Two game.
type Game struct {
	Phase   Phase
	Players map[string]*Player // userId -> player
	Seats   [4]string          // seat index -> userId or ""

	CurrentTurn int // seat index of the player to act
	LastPlay    *LastPlay

	// PlayedCards is the append-only ledger of every card played by anyone
	// so far. It accumulates for the whole game and is what the
	// highest-remaining-play detector reads.
	PlayedCards []Card

	// FirstPlay is true until the opening play of the game has been made.
	FirstPlay bool

	FinishOrder []string // userIds in the order they went out
}

// PlayerAtSeat returns the player occupying the seat, or nil.
func (g *Game) PlayerAtSeat(seat int) *Player {
	if seat < 0 || seat >= len(g.Seats) {
		return nil
	}
	userID := g.Seats[seat]
	if userID == "" {
		return nil
	}
	return g.Players[userID]
}

// CountPlayersWithCards returns the number of players still holding cards.
func (g *Game) CountPlayersWithCards() int {
	count := 0
	for _, pl := range g.Players {
		if !pl.Finished && len(pl.Hand) > 0 {
			count++
		}
	}
	return count
}

// NextUnfinishedSeat returns the next occupied seat clockwise from the given
// seat whose player has not finished, or -1 if none exists.
func (g *Game) NextUnfinishedSeat(from int) int {
	for i := 1; i <= len(g.Seats); i++ {
		seat := (from + i) % len(g.Seats)
		if pl := g.PlayerAtSeat(seat); pl != nil && !pl.Finished {
			return seat
		}
	}
	return -1
}

// NextEligibleSeat returns the next occupied seat clockwise from the given
// seat whose player can still act in the current round (not finished, not
// passed), or -1 if none exists.
func (g *Game) NextEligibleSeat(from int) int {
	for i := 1; i <= len(g.Seats); i++ {
		seat := (from + i) % len(g.Seats)
		if seat == from {
			continue
		}
		if pl := g.PlayerAtSeat(seat); pl != nil && !pl.Finished && !pl.HasPassed {
			return seat
		}
	}
	return -1
}

// NextPlayerCardCount returns the hand size of the player who acts after the
// given seat, for the one-card-left constraint. Returns 0 when no opponent
// remains.
func (g *Game) NextPlayerCardCount(from int) int {
	seat := g.NextUnfinishedSeat(from)
	if seat < 0 {
		return 0
	}
	pl := g.PlayerAtSeat(seat)
	if pl == nil {
		return 0
	}
	return len(pl.Hand)
}

// ResetRound clears the table and round passes so the leader may play any
// combo. The caller decides the new leader seat.
func (g *Game) ResetRound(leaderSeat int) {
	g.LastPlay = nil
	for _, pl := range g.Players {
		pl.HasPassed = false
	}
	g.CurrentTurn = leaderSeat
}

// RecordPlayed appends cards to the played ledger.
func (g *Game) RecordPlayed(cards []Card) {
	g.PlayedCards = append(g.PlayedCards, cards...)
}

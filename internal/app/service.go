package app

import (
	"errors"
	"math/rand"
	"time"

	"bigtwo/internal/domain"
)

// Service contains the Big Two use-cases operating on domain state.
type Service struct {
	rng              *rand.Rand
	now              func() time.Time
	autoPassDuration time.Duration
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:              rng,
		now:              time.Now,
		autoPassDuration: DefaultAutoPassDuration,
	}
}

// WithClock overrides the service clock. Used by tests and by handlers that
// drive time from match ticks.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithAutoPassDuration overrides the auto-pass countdown length.
func (s *Service) WithAutoPassDuration(d time.Duration) *Service {
	if d > 0 {
		s.autoPassDuration = d
	}
	return s
}

var (
	ErrNotPlaying      = errors.New("match not in playing phase")
	ErrTooFewPlayers   = errors.New("not enough players to start")
	ErrUnknownPlayer   = errors.New("player not found")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrPlayerFinished  = errors.New("player already finished")
	ErrNoCardsSelected = errors.New("no cards selected")
	ErrCardsNotInHand  = errors.New("selected cards not in hand")
	ErrInvalidCombo    = errors.New("selection is not a valid combination")
)

// StartGame deals a fresh game for the occupied seats. The first turn goes
// to the holder of the 3 of diamonds, whose opening play must include it;
// in short-handed games where the 3 of diamonds was not dealt, the holder
// of the lowest dealt card leads instead with no card requirement.
func (s *Service) StartGame(seats []string) (*domain.Game, []Event, error) {
	game := &domain.Game{
		Phase:   domain.PhasePlaying,
		Players: make(map[string]*domain.Player),
	}

	var order []string
	for i, userID := range seats {
		if userID == "" || i >= len(game.Seats) {
			continue
		}
		game.Seats[i] = userID
		game.Players[userID] = &domain.Player{UserID: userID, Seat: i}
		order = append(order, userID)
	}
	if len(order) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}

	deck := domain.NewDeck()
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	events := make([]Event, 0, len(order)+1)
	cardIdx := 0
	for _, userID := range order {
		pl := game.Players[userID]
		pl.Hand = domain.SortedCopy(deck[cardIdx : cardIdx+HandSize])
		cardIdx += HandSize

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: pl.UserID, Hand: pl.Hand},
			Recipients: []string{pl.UserID},
		})
	}

	firstSeat, firstPlay := s.openingSeat(game, order)
	game.CurrentTurn = firstSeat
	game.FirstPlay = firstPlay

	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{FirstTurnSeat: firstSeat, FirstPlay: firstPlay},
	})

	return game, events, nil
}

// openingSeat picks the leading seat: the 3-of-diamonds holder when the card
// was dealt, else the holder of the lowest dealt card.
func (s *Service) openingSeat(game *domain.Game, order []string) (int, bool) {
	for _, userID := range order {
		pl := game.Players[userID]
		for _, c := range pl.Hand {
			if c == domain.ThreeOfDiamonds {
				return pl.Seat, true
			}
		}
	}

	lowestSeat := game.Players[order[0]].Seat
	lowestPower := int(^uint(0) >> 1)
	for _, userID := range order {
		pl := game.Players[userID]
		if p := domain.LowestCard(pl.Hand).Power(); p < lowestPower {
			lowestPower = p
			lowestSeat = pl.Seat
		}
	}
	return lowestSeat, false
}

// PlayCards processes a play action and emits resulting events.
func (s *Service) PlayCards(game *domain.Game, seat int, cards []domain.Card) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl := game.PlayerAtSeat(seat)
	if pl == nil {
		return nil, ErrUnknownPlayer
	}
	if pl.Finished {
		return nil, ErrPlayerFinished
	}
	if game.CurrentTurn != seat {
		return nil, ErrNotYourTurn
	}
	if len(cards) == 0 {
		return nil, ErrNoCardsSelected
	}
	if !domain.ContainsAll(pl.Hand, cards) {
		return nil, ErrCardsNotInHand
	}

	combo := domain.Classify(cards)
	if combo.Type == domain.ComboInvalid {
		return nil, ErrInvalidCombo
	}

	if game.FirstPlay && !domain.ContainsAll(cards, []domain.Card{domain.ThreeOfDiamonds}) {
		return nil, &domain.RuleViolation{
			Reason:       "first play of the game must include the 3 of diamonds",
			RequiredCard: domain.ThreeOfDiamonds.ID(),
		}
	}

	if !domain.CanBeat(cards, game.LastPlay) {
		return nil, &domain.RuleViolation{Reason: "selection does not beat the current play"}
	}

	if !s.oneCardRuleSuspended(game) {
		nextCount := game.NextPlayerCardCount(seat)
		if err := domain.ValidatePlayAgainstRule(cards, pl.Hand, nextCount, game.LastPlay); err != nil {
			return nil, err
		}
	}

	// Detect supremacy against the ledger as it stood before this play.
	unbeatable := domain.IsHighestPossiblePlay(cards, game.PlayedCards)

	pl.Hand = domain.RemoveCards(pl.Hand, cards)
	game.RecordPlayed(cards)
	game.LastPlay = domain.NewLastPlay(cards, seat)
	game.FirstPlay = false

	if len(pl.Hand) == 0 {
		pl.Finished = true
		game.FinishOrder = append(game.FinishOrder, pl.UserID)
	}

	if game.CountPlayersWithCards() <= 1 {
		game.Phase = domain.PhaseEnded
		for _, holdout := range s.remainingSeatsInOrder(game) {
			game.FinishOrder = append(game.FinishOrder, holdout)
		}
	}

	events := []Event{}
	if game.Phase == domain.PhaseEnded {
		events = append(events, Event{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{Seat: seat, Cards: combo.Cards, ComboType: combo.Type, NextTurnSeat: -1},
		})
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{FinishOrderSeats: s.finishOrderSeats(game)},
		})
		return events, nil
	}

	newRound := false
	next := game.NextEligibleSeat(seat)
	if next == -1 {
		leader := seat
		if pl.Finished {
			leader = game.NextUnfinishedSeat(seat)
		}
		game.ResetRound(leader)
		newRound = true
	} else {
		game.CurrentTurn = next
	}

	events = append(events, Event{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:         seat,
			Cards:        combo.Cards,
			ComboType:    combo.Type,
			NextTurnSeat: game.CurrentTurn,
			NewRound:     newRound,
		},
	})

	if unbeatable && !newRound {
		timer := NewAutoPassTimer(s.now(), s.autoPassDuration)
		events = append(events, Event{
			Kind: EventAutoPassArmed,
			Payload: AutoPassArmedPayload{
				Seat:      seat,
				StartedAt: timer.StartedAt,
				Duration:  timer.Duration,
			},
		})
	}

	return events, nil
}

// PassTurn marks a player's pass action.
func (s *Service) PassTurn(game *domain.Game, seat int) ([]Event, error) {
	return s.passTurn(game, seat, false)
}

func (s *Service) passTurn(game *domain.Game, seat int, auto bool) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl := game.PlayerAtSeat(seat)
	if pl == nil {
		return nil, ErrUnknownPlayer
	}
	if pl.Finished {
		return nil, ErrPlayerFinished
	}
	if game.CurrentTurn != seat {
		return nil, ErrNotYourTurn
	}

	if s.oneCardRuleSuspended(game) {
		// The maker of the table play already emptied their hand; nothing is
		// left to block. Passing stays illegal only when leading.
		if game.LastPlay == nil {
			return nil, &domain.RuleViolation{Reason: "cannot pass while leading"}
		}
	} else {
		nextCount := game.NextPlayerCardCount(seat)
		if err := domain.ValidatePassAgainstRule(pl.Hand, nextCount, game.LastPlay); err != nil {
			return nil, err
		}
	}

	pl.HasPassed = true

	newRound := false
	next := game.NextEligibleSeat(seat)
	if next == -1 || (game.LastPlay != nil && next == game.LastPlay.Seat) {
		game.ResetRound(s.roundLeaderSeat(game))
		newRound = true
	} else {
		game.CurrentTurn = next
	}

	return []Event{{
		Kind: EventTurnPassed,
		Payload: TurnPassedPayload{
			Seat:         seat,
			NextTurnSeat: game.CurrentTurn,
			NewRound:     newRound,
			Auto:         auto,
		},
	}}, nil
}

// ExpireAutoPass forces a pass for every player still due to act against the
// current table play. The loop ends when the round resets back to the
// unbeatable play's maker (or their successor if they finished).
func (s *Service) ExpireAutoPass(game *domain.Game) ([]Event, error) {
	var events []Event
	for game.Phase == domain.PhasePlaying && game.LastPlay != nil {
		evs, err := s.passTurn(game, game.CurrentTurn, true)
		if err != nil {
			return events, err
		}
		events = append(events, evs...)
	}
	return events, nil
}

// oneCardRuleSuspended reports whether the one-card-left constraint is
// lifted: the player who made the table play already finished the game, so
// there is no opponent-with-one-card threat left to block.
func (s *Service) oneCardRuleSuspended(game *domain.Game) bool {
	if game.LastPlay == nil {
		return false
	}
	maker := game.PlayerAtSeat(game.LastPlay.Seat)
	return maker != nil && maker.Finished
}

// roundLeaderSeat picks who leads after a round closes: the maker of the
// last play, or the next unfinished seat when the maker already went out.
func (s *Service) roundLeaderSeat(game *domain.Game) int {
	if game.LastPlay == nil {
		return game.CurrentTurn
	}
	if maker := game.PlayerAtSeat(game.LastPlay.Seat); maker != nil && !maker.Finished {
		return game.LastPlay.Seat
	}
	return game.NextUnfinishedSeat(game.LastPlay.Seat)
}

// remainingSeatsInOrder lists userIds still holding cards, in seat order.
func (s *Service) remainingSeatsInOrder(game *domain.Game) []string {
	var out []string
	for seat := range game.Seats {
		if pl := game.PlayerAtSeat(seat); pl != nil && !pl.Finished && len(pl.Hand) > 0 {
			out = append(out, pl.UserID)
		}
	}
	return out
}

func (s *Service) finishOrderSeats(game *domain.Game) []int {
	seats := make([]int, 0, len(game.FinishOrder))
	for _, userID := range game.FinishOrder {
		if pl, ok := game.Players[userID]; ok {
			seats = append(seats, pl.Seat)
		}
	}
	return seats
}

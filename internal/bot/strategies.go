package bot

import (
	"math/rand"
	"time"

	"bigtwo/internal/domain"
)

// legalMove picks the candidate play for the acting player, honoring the
// one-card-left constraint: a forced blocking single overrides the weakest
// recommendation whenever the rule binds.
func legalMove(game *domain.Game, player *domain.Player) []domain.Card {
	rec := domain.FindRecommendedPlay(player.Hand, game.LastPlay, game.FirstPlay)
	if rec == nil {
		return nil
	}
	if len(rec) == 1 && !game.FirstPlay {
		if forced := forcedBlockingSingle(game, player); forced != nil {
			return forced
		}
	}
	return rec
}

// forcedBlockingSingle returns the single the one-card rule demands, or nil
// when the rule does not bind.
func forcedBlockingSingle(game *domain.Game, player *domain.Player) []domain.Card {
	if game.NextPlayerCardCount(player.Seat) != 1 {
		return nil
	}
	last := game.LastPlay
	if last != nil && len(last.Cards) != 1 {
		return nil
	}
	if c := domain.FindHighestBeatingSingle(player.Hand, last); c != nil {
		return []domain.Card{*c}
	}
	return nil
}

func passIsLegal(game *domain.Game, player *domain.Player) bool {
	nextCount := game.NextPlayerCardCount(player.Seat)
	return domain.ValidatePassAgainstRule(player.Hand, nextCount, game.LastPlay) == nil
}

// EasyBot plays the weakest legal move but folds early: roughly a quarter of
// the time it passes even though it could beat the table.
type EasyBot struct {
	Rng *rand.Rand
}

func (b *EasyBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if player == nil || len(player.Hand) == 0 {
		return Move{Pass: true}, nil
	}

	cards := legalMove(game, player)
	if cards == nil {
		return Move{Pass: true}, nil
	}

	if b.Rng == nil {
		b.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if b.Rng.Intn(4) == 0 && passIsLegal(game, player) {
		return Move{Pass: true}, nil
	}
	return Move{Cards: cards}, nil
}

// NormalBot always plays the weakest legal move that beats the table.
type NormalBot struct{}

func (b *NormalBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if player == nil || len(player.Hand) == 0 {
		return Move{Pass: true}, nil
	}

	cards := legalMove(game, player)
	if cards == nil {
		return Move{Pass: true}, nil
	}
	return Move{Cards: cards}, nil
}

// HardBot plays the weakest legal move most of the game, but near the end it
// hunts for a single nothing left in the deck can beat and plays that
// instead, seizing the lead for its remaining cards.
type HardBot struct{}

const hardBotEndgameHandSize = 3

func (b *HardBot) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if player == nil || len(player.Hand) == 0 {
		return Move{Pass: true}, nil
	}

	cards := legalMove(game, player)
	if cards == nil {
		return Move{Pass: true}, nil
	}

	if len(player.Hand) <= hardBotEndgameHandSize && len(cards) == 1 && forcedBlockingSingle(game, player) == nil {
		top := domain.HighestCard(player.Hand)
		single := []domain.Card{top}
		if domain.CanBeat(single, game.LastPlay) && domain.IsHighestPossiblePlay(single, game.PlayedCards) {
			return Move{Cards: single}, nil
		}
	}
	return Move{Cards: cards}, nil
}

package bot

import (
	"bigtwo/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		// Agent is not part of this game
		return Move{Pass: true}, nil
	}

	move, err := a.Strategy.CalculateMove(game, player)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}

// PlayAtSeat asks the agent to act for a specific seat, for callers that
// track seating rather than user IDs.
func (a *Agent) PlayAtSeat(game *domain.Game, seat int) (Move, error) {
	player := game.PlayerAtSeat(seat)
	if player == nil {
		return Move{Pass: true}, nil
	}
	return a.Strategy.CalculateMove(game, player)
}

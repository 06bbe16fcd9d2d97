package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/config"
	"bigtwo/internal/domain"
	"bigtwo/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string // user IDs, empty string means the seat is open
	OwnerSeat int       // seat index of the match owner
	MatchID   string
	Tick      int64

	Presences map[string]runtime.Presence // userId -> presence for targeted messaging
	App       *app.Service
	Game      *domain.Game // nil while in lobby

	// AutoPass is the live countdown armed after an unbeatable play, nil when
	// no countdown is running.
	AutoPass *app.AutoPassTimer

	BotsEnabled          bool
	BotMinDelay          int   // min seconds a bot waits before acting
	BotMaxDelay          int   // max seconds a bot waits before acting
	BotAutoFillDelay     int   // seconds before filling a solo lobby with bots
	BotWaitUntil         int64 // tick when the current bot should act
	LastSinglePlayerTick int64 // tick when a single human started waiting
	Roster               *bot.Roster
	Bots                 map[string]*bot.Agent

	Store ports.SnapshotStore
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	roster, err := bot.LoadRoster("data/bot_identities.json")
	if err != nil {
		logger.Warn("MatchInit: Could not load bot roster: %v", err)
		roster = bot.NewRoster(nil)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	svc := app.NewService(nil)
	if cfg.AutoPassDurationMs > 0 {
		svc.WithAutoPassDuration(time.Duration(cfg.AutoPassDurationMs) * time.Millisecond)
	}

	state := &MatchState{
		OwnerSeat:        -1,
		Presences:        make(map[string]runtime.Presence),
		App:              svc,
		Roster:           roster,
		Bots:             make(map[string]*bot.Agent),
		BotsEnabled:      cfg.BotsEnabled,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		Store:            NewNakamaStorageAdapter(nk),
	}

	if matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok {
		state.MatchID = matchID
	}

	// Environment overrides beat the config file.
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["bigtwo_bots_enabled"]; ok {
			state.BotsEnabled = val == "true"
		}
		if val, ok := env["bigtwo_bot_min_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMinDelay = i
			}
		}
		if val, ok := env["bigtwo_bot_max_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotMaxDelay = i
			}
		}
		if val, ok := env["bigtwo_bot_auto_fill_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.BotAutoFillDelay = i
			}
		}
	}

	if state.BotMinDelay <= 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay + 2
	}
	if state.BotAutoFillDelay <= 0 {
		state.BotAutoFillDelay = 5
	}

	if state.MatchID != "" {
		if snapshot, err := state.Store.Load(ctx, state.MatchID); err != nil {
			logger.Warn("MatchInit: Failed to load snapshot: %v", err)
		} else if snapshot != nil {
			restoreFromSnapshot(snapshot, state, logger)
		}
	}

	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A seated player keeps their claim on the seat, so a mid-game
	// reconnect is admitted even when the match shows no openings.
	if seatOf(matchState, presence.GetUserId()) >= 0 {
		return matchState, true, ""
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started)
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// A seated player reconnecting keeps their seat and gets their hand back.
		if seat := seatOf(matchState, p.GetUserId()); seat >= 0 {
			mh.resendPrivateState(matchState, dispatcher, logger, p.GetUserId())
			continue
		}

		// Assign seat: try empty seats first, then bots (if lobby)
		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		// Seats stay assigned during a game so a reconnect can resume; only
		// lobby seats are freed immediately.
		if matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if seatUserId == p.GetUserId() {
					matchState.Seats[i] = ""
					logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
					break
				}
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) && len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		if matchState.Store != nil && matchState.MatchID != "" {
			if err := matchState.Store.Delete(context.Background(), matchState.MatchID); err != nil {
				logger.Warn("MatchLeave: Failed to delete snapshot: %v", err)
			}
		}
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(ctx, matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.tickAutoPass(ctx, matchState, dispatcher, logger)

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// tickAutoPass fires the armed countdown once it runs out, force-passing
// every player still due to act against the unbeatable play.
func (mh *matchHandler) tickAutoPass(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.AutoPass == nil || state.Game == nil || state.Game.Phase != domain.PhasePlaying {
		return
	}
	if !state.AutoPass.Expired(time.Now()) {
		return
	}

	state.AutoPass = nil
	events, err := state.App.ExpireAutoPass(state.Game)
	if err != nil {
		logger.Error("tickAutoPass: Failed to expire auto-pass: %v", err)
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistSnapshot(ctx, state, logger)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Game == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := state.Roster.Identity(i)
						agent, err := bot.NewAgent(identity)
						if err != nil {
							logger.Error("processBots: Failed to create bot agent for %s: %v", identity.UserID, err)
							continue
						}
						state.Seats[i] = identity.UserID
						state.Bots[identity.UserID] = agent
						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Handle bot turns in-game
	if state.Game != nil && state.Game.Phase == domain.PhasePlaying {
		currentTurn := state.Game.CurrentTurn
		currentUserID := state.Seats[currentTurn]

		if isBotUserId(currentUserID) {
			if state.BotWaitUntil == 0 {
				delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
				state.BotWaitUntil = state.Tick + int64(delay)
				logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, currentTurn, state.BotWaitUntil, state.Tick)
			}

			if state.Tick >= state.BotWaitUntil {
				state.BotWaitUntil = 0

				agent, exists := state.Bots[currentUserID]
				if !exists {
					identity, ok := state.Roster.Lookup(currentUserID)
					if !ok {
						logger.Error("processBots: No identity for bot %s", currentUserID)
						return
					}
					var err error
					agent, err = bot.NewAgent(identity)
					if err != nil {
						logger.Error("processBots: Failed to create fallback agent: %v", err)
						return
					}
					state.Bots[currentUserID] = agent
				}

				move, err := agent.Play(state.Game)
				if err != nil {
					logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
					return
				}

				var events []app.Event
				if move.Pass {
					events, err = state.App.PassTurn(state.Game, currentTurn)
				} else {
					events, err = state.App.PlayCards(state.Game, currentTurn, move.Cards)
				}
				if err != nil {
					logger.Warn("processBots: Bot %s move rejected: %v", currentUserID, err)
					return
				}
				for _, ev := range events {
					mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
				}
				mh.persistSnapshot(ctx, state, logger)
			}
		} else {
			state.BotWaitUntil = 0
		}
	}
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var players []playerStateMsg
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if name := state.Roster.DisplayName(userId); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		if state.Game != nil {
			if pl := state.Game.PlayerAtSeat(i); pl != nil {
				cardsRemaining = len(pl.Hand)
			}
		}

		players = append(players, playerStateMsg{
			UserID:         userId,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          isBotUserId(userId),
			DisplayName:    displayName,
			CardsRemaining: cardsRemaining,
		})
	}

	snapshot := matchStateMsg{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		State:     matchPhaseLabel(state),
		Players:   players,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true)
}

// resendPrivateState delivers the hand and any running countdown to a
// reconnecting player.
func (mh *matchHandler) resendPrivateState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	if state.Game == nil {
		return
	}
	pl, ok := state.Game.Players[userID]
	if !ok {
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}

	handBytes, err := json.Marshal(handDealtMsg{Hand: cardsToWire(pl.Hand)})
	if err != nil {
		logger.Error("resendPrivateState: Failed to marshal hand: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpHandDealt, handBytes, []runtime.Presence{presence}, nil, true)

	if state.AutoPass != nil && state.Game.LastPlay != nil {
		timerBytes, err := json.Marshal(autoPassArmedMsg{
			Seat:        state.Game.LastPlay.Seat,
			StartedAtMs: state.AutoPass.StartedAtMs(),
			DurationMs:  state.AutoPass.DurationMs(),
			RemainingMs: state.AutoPass.Remaining(time.Now()).Milliseconds(),
		})
		if err != nil {
			logger.Error("resendPrivateState: Failed to marshal timer: %v", err)
			return
		}
		dispatcher.BroadcastMessage(OpAutoPassArmed, timerBytes, []runtime.Presence{presence}, nil, true)
	}
}

func seatOf(state *MatchState, userID string) int {
	for i, seatUserId := range state.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state, senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil && state.Game.Phase == domain.PhasePlaying {
		mh.sendError(state, dispatcher, logger, senderID, 400, "game already in progress", nil)
		return
	}

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the owner can start the game", nil)
		return
	}

	activeCount := state.GetOccupiedSeatCount()
	if activeCount < app.MinPlayersToStartGame {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", activeCount, app.MinPlayersToStartGame)
		mh.sendError(state, dispatcher, logger, senderID, 400, "not enough players to start", nil)
		return
	}

	game, events, err := state.App.StartGame(state.Seats[:])
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 500, err.Error(), nil)
		return
	}

	state.Game = game
	state.AutoPass = nil

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistSnapshot(ctx, state, logger)

	logger.Info("StartGame: Game started with %d players.", activeCount)
}

func (mh *matchHandler) handlePlayCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state, senderID)

	if state.Game == nil {
		logger.Warn("handlePlayCards: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, 400, "game not started", nil)
		return
	}

	var request playCardsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCards: Failed to unmarshal request: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid request payload", nil)
		return
	}

	cards, err := cardsFromWire(request.Cards)
	if err != nil {
		logger.Warn("handlePlayCards: Invalid card ids from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid card ids", nil)
		return
	}

	events, err := state.App.PlayCards(state.Game, senderSeat, cards)
	if err != nil {
		logger.Warn("handlePlayCards: User %s (seat %d) failed to play %v: %v", senderID, senderSeat, request.Cards, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error(), err)
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistSnapshot(ctx, state, logger)
}

func (mh *matchHandler) handlePassTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state, senderID)

	if state.Game == nil {
		logger.Warn("handlePassTurn: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, 400, "game not started", nil)
		return
	}

	events, err := state.App.PassTurn(state.Game, senderSeat)
	if err != nil {
		logger.Warn("handlePassTurn: User %s (seat %d) failed to pass turn: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error(), err)
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
	mh.persistSnapshot(ctx, state, logger)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload interface{}

	switch ev.Kind {
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = handDealtMsg{Hand: cardsToWire(p.Hand)}
	case app.EventGameStarted:
		opCode = OpGameStarted
		p := ev.Payload.(app.GameStartedPayload)
		payload = gameStartedMsg{
			FirstTurnSeat: p.FirstTurnSeat,
			FirstPlay:     p.FirstPlay,
		}
	case app.EventCardPlayed:
		opCode = OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		if p.NewRound {
			// A closed round consumes any running countdown.
			state.AutoPass = nil
		}
		payload = cardPlayedMsg{
			Seat:         p.Seat,
			Cards:        cardsToWire(p.Cards),
			ComboType:    p.ComboType.String(),
			NextTurnSeat: p.NextTurnSeat,
			NewRound:     p.NewRound,
		}
	case app.EventTurnPassed:
		opCode = OpTurnPassed
		p := ev.Payload.(app.TurnPassedPayload)
		if p.NewRound {
			state.AutoPass = nil
		}
		payload = turnPassedMsg{
			Seat:         p.Seat,
			NextTurnSeat: p.NextTurnSeat,
			NewRound:     p.NewRound,
			Auto:         p.Auto,
		}
	case app.EventAutoPassArmed:
		opCode = OpAutoPassArmed
		p := ev.Payload.(app.AutoPassArmedPayload)
		timer := app.NewAutoPassTimer(p.StartedAt, p.Duration)
		state.AutoPass = &timer
		payload = autoPassArmedMsg{
			Seat:        p.Seat,
			StartedAtMs: timer.StartedAtMs(),
			DurationMs:  timer.DurationMs(),
			RemainingMs: timer.DurationMs(),
		}
	case app.EventGameEnded:
		opCode = OpGameEnded
		p := ev.Payload.(app.GameEndedPayload)
		payload = gameEndedMsg{FinishOrderSeats: p.FinishOrderSeats}

		// Game over: clear state, drop the snapshot, back to lobby.
		state.Game = nil
		state.AutoPass = nil
		if state.Store != nil && state.MatchID != "" {
			if err := state.Store.Delete(ctx, state.MatchID); err != nil {
				logger.Warn("broadcastEvent: Failed to delete snapshot: %v", err)
			}
		}
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are
		// bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a game error to a specific user. When the cause is a rule
// violation the demanded card travels with the message.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string, cause error) {
	payload := gameErrorMsg{
		Code:    code,
		Message: message,
	}
	var rv *domain.RuleViolation
	if errors.As(cause, &rv) {
		payload.RequiredCard = rv.RequiredCard
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal game error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

// persistSnapshot saves the current game to storage so a restarted handler
// can resume the match.
func (mh *matchHandler) persistSnapshot(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Store == nil || state.MatchID == "" || state.Game == nil {
		return
	}

	snapshot := &ports.MatchSnapshot{
		MatchID:     state.MatchID,
		Phase:       string(state.Game.Phase),
		Seats:       state.Seats[:],
		OwnerSeat:   state.OwnerSeat,
		CurrentTurn: state.Game.CurrentTurn,
		FirstPlay:   state.Game.FirstPlay,
		PlayedCards: cardsToWire(state.Game.PlayedCards),
		FinishOrder: append([]string(nil), state.Game.FinishOrder...),

		LastPlaySeat: -1,
	}
	for _, pl := range state.Game.Players {
		snapshot.Players = append(snapshot.Players, ports.PlayerSnapshot{
			UserID:    pl.UserID,
			Seat:      pl.Seat,
			Hand:      cardsToWire(pl.Hand),
			HasPassed: pl.HasPassed,
			Finished:  pl.Finished,
		})
	}
	if state.Game.LastPlay != nil {
		snapshot.LastPlaySeat = state.Game.LastPlay.Seat
		snapshot.LastPlayCards = cardsToWire(state.Game.LastPlay.Cards)
	}
	if state.AutoPass != nil {
		snapshot.AutoPassStartedAtMs = state.AutoPass.StartedAtMs()
		snapshot.AutoPassDurationMs = state.AutoPass.DurationMs()
	}

	if err := state.Store.Save(ctx, snapshot); err != nil {
		logger.Warn("persistSnapshot: Failed to save snapshot: %v", err)
	}
}

// restoreFromSnapshot rebuilds an in-flight game after a handler restart.
// The auto-pass countdown resumes against its original deadline.
func restoreFromSnapshot(snapshot *ports.MatchSnapshot, state *MatchState, logger runtime.Logger) {
	if snapshot.Phase != string(domain.PhasePlaying) {
		return
	}

	game := &domain.Game{
		Phase:       domain.PhasePlaying,
		Players:     make(map[string]*domain.Player),
		CurrentTurn: snapshot.CurrentTurn,
		FirstPlay:   snapshot.FirstPlay,
		FinishOrder: append([]string(nil), snapshot.FinishOrder...),
	}
	copy(game.Seats[:], snapshot.Seats)

	for _, ps := range snapshot.Players {
		hand, err := cardsFromWire(ps.Hand)
		if err != nil {
			logger.Warn("restoreFromSnapshot: Bad hand for %s: %v", ps.UserID, err)
			return
		}
		game.Players[ps.UserID] = &domain.Player{
			UserID:    ps.UserID,
			Seat:      ps.Seat,
			Hand:      hand,
			HasPassed: ps.HasPassed,
			Finished:  ps.Finished,
		}
	}

	played, err := cardsFromWire(snapshot.PlayedCards)
	if err != nil {
		logger.Warn("restoreFromSnapshot: Bad played ledger: %v", err)
		return
	}
	game.PlayedCards = played

	if snapshot.LastPlaySeat >= 0 && len(snapshot.LastPlayCards) > 0 {
		cards, err := cardsFromWire(snapshot.LastPlayCards)
		if err != nil {
			logger.Warn("restoreFromSnapshot: Bad last play: %v", err)
			return
		}
		game.LastPlay = domain.NewLastPlay(cards, snapshot.LastPlaySeat)
	}

	copy(state.Seats[:], snapshot.Seats)
	state.OwnerSeat = snapshot.OwnerSeat
	state.Game = game
	if snapshot.AutoPassDurationMs > 0 {
		timer := app.ResumeAutoPassTimer(snapshot.AutoPassStartedAtMs, snapshot.AutoPassDurationMs)
		state.AutoPass = &timer
	}

	logger.Info("restoreFromSnapshot: Restored in-flight game (turn seat %d).", game.CurrentTurn)
}

func matchPhaseLabel(state *MatchState) string {
	if state.Game != nil && state.Game.Phase == domain.PhasePlaying {
		return "playing"
	}
	return "lobby"
}

func marshalLabel(state *MatchState) (string, error) {
	label := matchLabel{
		Game:  "bigtwo",
		Open:  state.GetOpenSeatsCount(),
		State: matchPhaseLabel(state),
	}
	bytes, err := json.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := marshalLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

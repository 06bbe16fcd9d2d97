package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call to obtain a voice access token.
	RpcVoiceToken = "voice_token"

	// MatchNameBigTwo is the authoritative match handler name registered with Nakama.
	MatchNameBigTwo = "bigtwo_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCards int64 = 2
	OpPassTurn  int64 = 3

	// Server -> Client events
	OpMatchState    int64 = 101
	OpGameStarted   int64 = 102
	OpHandDealt     int64 = 103 // sent privately
	OpCardPlayed    int64 = 104
	OpTurnPassed    int64 = 105
	OpAutoPassArmed int64 = 106
	OpGameEnded     int64 = 107
	OpGameError     int64 = 108 // sent privately
)

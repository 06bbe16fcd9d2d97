package app

import "time"

// MinPlayersToStartGame defines the minimum number of occupied seats required
// to start a game. Centralized so tests or local runs can adjust the rule
// without touching multiple call sites.
const MinPlayersToStartGame = 2

// HandSize is the number of cards dealt to each player.
const HandSize = 13

// DefaultAutoPassDuration is how long the auto-pass countdown runs once a
// play is detected as unbeatable.
const DefaultAutoPassDuration = 10 * time.Second

package bot

import (
	"os"
	"path/filepath"
	"testing"
)

const rosterFixture = `[
  {"user_id": "bot_vela", "username": "vela", "display_name": "Vela", "difficulty": "easy", "avatar_index": 1},
  {"user_id": "bot_wren", "username": "wren", "display_name": "", "difficulty": "hard", "avatar_index": 2},
  {"user_id": "", "username": "ghost", "display_name": "Ghost", "difficulty": "normal", "avatar_index": 3}
]`

func writeRosterFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte(rosterFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadRosterResolvesLevels(t *testing.T) {
	roster, err := LoadRoster(writeRosterFixture(t))
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}

	if roster.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (profile without user id dropped)", roster.Size())
	}

	vela, ok := roster.Lookup("bot_vela")
	if !ok {
		t.Fatal("bot_vela not indexed")
	}
	if vela.Level != BotLevelEasy {
		t.Fatalf("bot_vela level = %d, want easy", vela.Level)
	}

	wren, ok := roster.Lookup("bot_wren")
	if !ok {
		t.Fatal("bot_wren not indexed")
	}
	if wren.Level != BotLevelHard {
		t.Fatalf("bot_wren level = %d, want hard", wren.Level)
	}

	if _, ok := roster.Lookup("user-1"); ok {
		t.Fatal("Lookup must miss for non-roster ids")
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	if _, err := LoadRoster(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing roster file")
	}
}

func TestRosterIdentityWrapsAround(t *testing.T) {
	roster, err := LoadRoster(writeRosterFixture(t))
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}

	if got := roster.Identity(0).UserID; got != "bot_vela" {
		t.Fatalf("Identity(0) = %s, want bot_vela", got)
	}
	if got := roster.Identity(3).UserID; got != "bot_wren" {
		t.Fatalf("Identity(3) = %s, want bot_wren", got)
	}
}

func TestEmptyRosterSynthesizesStandIn(t *testing.T) {
	roster := NewRoster(nil)

	identity := roster.Identity(2)
	if !IsBot(identity.UserID) {
		t.Fatalf("stand-in id %s must carry the bot prefix", identity.UserID)
	}
	if identity.Level != BotLevelNormal {
		t.Fatalf("stand-in level = %d, want normal", identity.Level)
	}
	if identity.DisplayName == "" {
		t.Fatal("stand-in needs a display name")
	}
}

func TestRosterDisplayName(t *testing.T) {
	roster, err := LoadRoster(writeRosterFixture(t))
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}

	tests := []struct {
		name   string
		userID string
		want   string
	}{
		{name: "DisplayNameSet", userID: "bot_vela", want: "Vela"},
		{name: "FallsBackToUsername", userID: "bot_wren", want: "wren"},
		{name: "UnknownID", userID: "user-1", want: ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := roster.DisplayName(test.userID); got != test.want {
				t.Fatalf("DisplayName(%q) = %q, want %q", test.userID, got, test.want)
			}
		})
	}
}

func TestIsBot(t *testing.T) {
	if !IsBot("bot_vela") {
		t.Fatal("roster ids must be recognized as bots")
	}
	if IsBot("user-1") {
		t.Fatal("human ids must not be recognized as bots")
	}
}

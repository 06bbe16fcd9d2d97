package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"bigtwo/internal/app"
	"bigtwo/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

type voiceTokenRequest struct {
	Action  string `json:"action"` // "login" or "join"
	Channel string `json:"channel,omitempty"`
}

type voiceTokenResponse struct {
	Token string `json:"token"`
}

// rpcVoiceToken signs a voice access token for the calling user. The signing
// secret comes from the runtime environment; issuer and domain fall back to
// the game config when unset.
func rpcVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("user id missing from context", 16) // UNAUTHENTICATED
	}

	var req voiceTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}

	var secret, issuer, domain string
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		secret = env["voice_secret"]
		issuer = env["voice_issuer"]
		domain = env["voice_domain"]
	}
	cfg := config.GetGameConfig()
	if issuer == "" {
		issuer = cfg.VoiceIssuer
	}
	if domain == "" {
		domain = cfg.VoiceDomain
	}

	svc := app.NewVoiceService(secret, issuer, domain)
	token, err := svc.GenerateToken(userID, req.Action, req.Channel)
	if err != nil {
		logger.Warn("rpcVoiceToken: Failed to generate token for %s: %v", userID, err)
		return "", runtime.NewError(err.Error(), 3)
	}

	b, _ := json.Marshal(voiceTokenResponse{Token: token})
	return string(b), nil
}

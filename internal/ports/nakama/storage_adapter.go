package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bigtwo/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	matchSnapshotCollection = "bigtwo_matches"
)

// NakamaStorageAdapter persists match snapshots in Nakama storage. Objects
// are system-owned so clients can neither read nor tamper with them.
type NakamaStorageAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStorageAdapter creates a new snapshot store adapter.
func NewNakamaStorageAdapter(nk runtime.NakamaModule) *NakamaStorageAdapter {
	return &NakamaStorageAdapter{nk: nk}
}

// Save writes the snapshot, replacing any previous one for the match.
func (a *NakamaStorageAdapter) Save(ctx context.Context, snapshot *ports.MatchSnapshot) error {
	if snapshot == nil || snapshot.MatchID == "" {
		return fmt.Errorf("snapshot with match id is required")
	}
	snapshot.SavedAtMs = time.Now().UnixMilli()

	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal match snapshot: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      matchSnapshotCollection,
			Key:             snapshot.MatchID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write match snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot for a match, or nil when none exists.
func (a *NakamaStorageAdapter) Load(ctx context.Context, matchID string) (*ports.MatchSnapshot, error) {
	if matchID == "" {
		return nil, fmt.Errorf("match id is required")
	}

	reads := []*runtime.StorageRead{
		{
			Collection: matchSnapshotCollection,
			Key:        matchID,
		},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return nil, fmt.Errorf("failed to read match snapshot: %w", err)
	}
	if len(objects) == 0 {
		return nil, nil
	}

	var snapshot ports.MatchSnapshot
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match snapshot: %w", err)
	}
	return &snapshot, nil
}

// Delete removes the snapshot once the match has concluded.
func (a *NakamaStorageAdapter) Delete(ctx context.Context, matchID string) error {
	if matchID == "" {
		return fmt.Errorf("match id is required")
	}

	deletes := []*runtime.StorageDelete{
		{
			Collection: matchSnapshotCollection,
			Key:        matchID,
		},
	}
	if err := a.nk.StorageDelete(ctx, deletes); err != nil {
		return fmt.Errorf("failed to delete match snapshot: %w", err)
	}
	return nil
}

var _ ports.SnapshotStore = (*NakamaStorageAdapter)(nil)

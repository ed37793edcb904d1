// mzizi/sessions/persistence.go
package sessions

import (
	"context"
	"encoding/json"
	"fmt"

	"mzizi/mzizi/utils/logging"

	"go.uber.org/zap"
)

// KV is the durable key-value substrate the adapter persists into. It is
// injected so tests and the CLI can swap in an in-memory store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func sessionsKey(profileID string) string {
	return fmt.Sprintf("sessions:%s", profileID)
}

func legacyChatKey(profileID string) string {
	return fmt.Sprintf("chat:%s", profileID)
}

// MigratedSessionTitle names the session a legacy single-thread chat log is
// wrapped into.
const MigratedSessionTitle = "Previous Conversation"

// Adapter maps a profile id to its serialized session collection.
// All failure paths are non-fatal: a collection that cannot be read or
// written degrades to "absent" plus a log line.
type Adapter struct {
	kv KV
}

func NewAdapter(kv KV) *Adapter {
	return &Adapter{kv: kv}
}

// Load returns the profile's session collection, or ok=false when none
// exists or it cannot be parsed. When no collection exists but a legacy
// single-thread chat log does, the log is wrapped into one session, saved
// under the new schema and the legacy entry deleted, so the migration runs
// at most once per profile. A legacy log that cannot be parsed is left in
// place untouched.
func (a *Adapter) Load(ctx context.Context, profileID string) ([]Session, bool) {
	raw, found, err := a.kv.Get(ctx, sessionsKey(profileID))
	if err != nil {
		logging.ErrorLogger.Error("sessions load failed",
			zap.String("profile_id", profileID), zap.Error(err))
		return nil, false
	}
	if found {
		var list []Session
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			logging.ErrorLogger.Error("sessions parse failed",
				zap.String("profile_id", profileID), zap.Error(err))
			return nil, false
		}
		return list, true
	}

	// No collection yet; check for a pre-sessions chat log.
	legacyRaw, legacyFound, err := a.kv.Get(ctx, legacyChatKey(profileID))
	if err != nil || !legacyFound {
		if err != nil {
			logging.ErrorLogger.Error("legacy chat load failed",
				zap.String("profile_id", profileID), zap.Error(err))
		}
		return nil, false
	}
	var legacyMessages []Message
	if err := json.Unmarshal([]byte(legacyRaw), &legacyMessages); err != nil {
		logging.ErrorLogger.Error("legacy chat parse failed, leaving entry in place",
			zap.String("profile_id", profileID), zap.Error(err))
		return nil, false
	}

	now := NowMillis()
	migrated := Session{
		ID:           NextID(),
		Title:        MigratedSessionTitle,
		Messages:     cloneMessages(legacyMessages),
		CreatedAt:    now,
		LastModified: now,
	}
	list := []Session{migrated}
	a.Save(ctx, profileID, list)
	if err := a.kv.Delete(ctx, legacyChatKey(profileID)); err != nil {
		logging.ErrorLogger.Error("legacy chat cleanup failed",
			zap.String("profile_id", profileID), zap.Error(err))
	}
	logging.AppLogger.Info("migrated legacy chat log",
		zap.String("profile_id", profileID), zap.Int("messages", len(legacyMessages)))
	return list, true
}

// Save persists the collection, sorted most-recently-modified first.
// It is best-effort: a write failure is logged and the mutation that
// triggered it is simply lost, matching the substrate's contract.
func (a *Adapter) Save(ctx context.Context, profileID string, list []Session) {
	sorted := cloneSessions(list)
	SortByLastModified(sorted)
	payload, err := json.Marshal(sorted)
	if err != nil {
		logging.ErrorLogger.Error("sessions marshal failed",
			zap.String("profile_id", profileID), zap.Error(err))
		return
	}
	if err := a.kv.Set(ctx, sessionsKey(profileID), string(payload)); err != nil {
		logging.ErrorLogger.Error("sessions save failed",
			zap.String("profile_id", profileID), zap.Error(err))
	}
}

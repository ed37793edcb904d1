package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"mzizi/mzizi/sources/kv"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(kv.NewMemory())

	older := Session{ID: "1", Title: "older", CreatedAt: 100, LastModified: 100,
		Messages: []Message{{ID: "m1", Role: RoleModel, Text: "hi", Timestamp: 100}}}
	newer := Session{ID: "2", Title: "newer", CreatedAt: 200, LastModified: 300,
		Messages: []Message{{ID: "m2", Role: RoleUser, Text: "yo", Timestamp: 200}}}

	a.Save(ctx, "p1", []Session{older, newer})

	got, ok := a.Load(ctx, "p1")
	if !ok {
		t.Fatal("expected collection after save")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "1" {
		t.Errorf("expected lastModified-desc order, got %q then %q", got[0].ID, got[1].ID)
	}
	if got[1].Messages[0].Text != "hi" || got[1].Title != "older" {
		t.Errorf("field values changed in round-trip: %+v", got[1])
	}
}

func TestLoadAbsent(t *testing.T) {
	a := NewAdapter(kv.NewMemory())
	if _, ok := a.Load(context.Background(), "nobody"); ok {
		t.Error("expected absent for unknown profile")
	}
}

func TestLegacyMigrationRunsOnce(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	a := NewAdapter(store)

	legacy := []Message{
		{ID: "m1", Role: RoleModel, Text: "welcome", Timestamp: 10},
		{ID: "m2", Role: RoleUser, Text: "hello", Timestamp: 20},
	}
	raw, _ := json.Marshal(legacy)
	store.Set(ctx, "chat:p1", string(raw))

	got, ok := a.Load(ctx, "p1")
	if !ok || len(got) != 1 {
		t.Fatalf("expected one migrated session, got ok=%v len=%d", ok, len(got))
	}
	if got[0].Title != MigratedSessionTitle {
		t.Errorf("expected title %q, got %q", MigratedSessionTitle, got[0].Title)
	}
	if len(got[0].Messages) != 2 || got[0].Messages[0].ID != "m1" || got[0].Messages[1].Timestamp != 20 {
		t.Errorf("legacy messages not preserved: %+v", got[0].Messages)
	}

	if _, found, _ := store.Get(ctx, "chat:p1"); found {
		t.Error("legacy entry survived migration")
	}
	if _, found, _ := store.Get(ctx, "sessions:p1"); !found {
		t.Error("migrated collection not persisted")
	}

	// Second load must come from the new schema, not migrate again.
	again, ok := a.Load(ctx, "p1")
	if !ok || len(again) != 1 || again[0].ID != got[0].ID {
		t.Errorf("second load differs from first: %+v", again)
	}
}

func TestCorruptCollectionIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	a := NewAdapter(store)

	store.Set(ctx, "sessions:p1", "{not json")
	if _, ok := a.Load(ctx, "p1"); ok {
		t.Error("expected absent for unparseable collection")
	}
}

func TestCorruptLegacyLeftInPlace(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	a := NewAdapter(store)

	store.Set(ctx, "chat:p1", "][")
	if _, ok := a.Load(ctx, "p1"); ok {
		t.Error("expected absent for unparseable legacy log")
	}
	if _, found, _ := store.Get(ctx, "chat:p1"); !found {
		t.Error("unparseable legacy entry was deleted")
	}
}

// brokenKV fails every operation.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("kv down")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("kv down") }
func (brokenKV) Delete(context.Context, string) error      { return errors.New("kv down") }

func TestPersistenceFailuresAreNonFatal(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(brokenKV{})

	if _, ok := a.Load(ctx, "p1"); ok {
		t.Error("expected absent when the substrate errors")
	}
	// Save is fire-and-forget; must not panic or return.
	a.Save(ctx, "p1", []Session{{ID: "1"}})
}

func TestSaveSortIsStable(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(kv.NewMemory())

	var list []Session
	for i := 0; i < 5; i++ {
		list = append(list, Session{ID: fmt.Sprintf("s%d", i), CreatedAt: 1, LastModified: 50})
	}
	a.Save(ctx, "p1", list)
	got, _ := a.Load(ctx, "p1")
	for i, s := range got {
		if s.ID != fmt.Sprintf("s%d", i) {
			t.Fatalf("equal-lastModified order not preserved at %d: %q", i, s.ID)
		}
	}
}

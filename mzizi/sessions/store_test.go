package sessions

import (
	"os"
	"testing"

	"mzizi/mzizi/utils/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger() // ensures package loggers aren't nil
	os.Exit(m.Run())
}

func TestCreateSession(t *testing.T) {
	s := NewStore()
	seed := NewModelMessage("hello")
	sess := s.Create([]Message{seed}, "New Conversation")

	if sess.ID == "" {
		t.Fatal("expected a session id")
	}
	if sess.LastModified != sess.CreatedAt {
		t.Errorf("expected lastModified == createdAt, got %d != %d", sess.LastModified, sess.CreatedAt)
	}
	if len(sess.Messages) != 1 || sess.Messages[0].ID != seed.ID {
		t.Errorf("expected exactly the seed message, got %+v", sess.Messages)
	}
	if sess.Title != "New Conversation" {
		t.Errorf("unexpected title %q", sess.Title)
	}
}

func TestCreateInsertsAtHead(t *testing.T) {
	s := NewStore()
	first := s.Create(nil, "first")
	second := s.Create(nil, "second")

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("expected newest first, got %q then %q", list[0].Title, list[1].Title)
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("nope"); ok {
		t.Error("expected ok=false for unknown id")
	}
}

func TestUpdateMessagesBumpsLastModified(t *testing.T) {
	s := NewStore()
	sess := s.Create([]Message{NewModelMessage("hi")}, "t")

	s.UpdateMessages(sess.ID, func(msgs []Message) []Message {
		return append(msgs, NewUserMessage("question"))
	})

	got, ok := s.Get(sess.ID)
	if !ok {
		t.Fatal("session disappeared")
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got.Messages))
	}
	if got.LastModified < sess.LastModified {
		t.Errorf("lastModified went backwards: %d < %d", got.LastModified, sess.LastModified)
	}
	if got.LastModified < got.CreatedAt {
		t.Errorf("lastModified %d below createdAt %d", got.LastModified, got.CreatedAt)
	}
}

func TestUpdateMessagesUnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	s.Create(nil, "t")

	called := false
	s.UpdateMessages("missing", func(msgs []Message) []Message {
		called = true
		return msgs
	})
	if called {
		t.Error("transform ran for an unknown session id")
	}
}

func TestSetTitleDoesNotBumpLastModified(t *testing.T) {
	s := NewStore()
	sess := s.Create(nil, "before")

	s.SetTitle(sess.ID, "after")

	got, _ := s.Get(sess.ID)
	if got.Title != "after" {
		t.Errorf("title not updated, got %q", got.Title)
	}
	if got.LastModified != sess.LastModified {
		t.Errorf("setTitle bumped lastModified: %d -> %d", sess.LastModified, got.LastModified)
	}
}

func TestDeleteSessionFromStore(t *testing.T) {
	s := NewStore()
	a := s.Create(nil, "a")
	b := s.Create(nil, "b")

	s.Delete(a.ID)

	if _, ok := s.Get(a.ID); ok {
		t.Error("deleted session still resolvable")
	}
	if _, ok := s.Get(b.ID); !ok {
		t.Error("unrelated session was removed")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 session left, got %d", s.Len())
	}
}

func TestDeleteMessage(t *testing.T) {
	s := NewStore()
	m1 := NewModelMessage("one")
	m2 := NewUserMessage("two")
	sess := s.Create([]Message{m1, m2}, "t")

	s.DeleteMessage(sess.ID, m1.ID)

	got, _ := s.Get(sess.ID)
	if len(got.Messages) != 1 || got.Messages[0].ID != m2.ID {
		t.Errorf("expected only %q to remain, got %+v", m2.ID, got.Messages)
	}
}

func TestEditMessageKeepsOrderAndTimestamps(t *testing.T) {
	s := NewStore()
	m1 := NewUserMessage("original")
	m2 := NewModelMessage("reply")
	sess := s.Create([]Message{m1, m2}, "t")

	s.EditMessage(sess.ID, m1.ID, "edited")

	got, _ := s.Get(sess.ID)
	if got.Messages[0].Text != "edited" {
		t.Errorf("text not edited, got %q", got.Messages[0].Text)
	}
	if got.Messages[0].ID != m1.ID || got.Messages[0].Timestamp != m1.Timestamp {
		t.Error("edit changed id or timestamp")
	}
	if got.Messages[1].ID != m2.ID || got.Messages[1].Text != "reply" {
		t.Error("edit touched the downstream message")
	}
}

func TestTimestampsNonDecreasing(t *testing.T) {
	s := NewStore()
	sess := s.Create(nil, "t")
	for i := 0; i < 20; i++ {
		s.UpdateMessages(sess.ID, func(msgs []Message) []Message {
			return append(msgs, NewUserMessage("m"))
		})
	}
	got, _ := s.Get(sess.ID)
	for i := 1; i < len(got.Messages); i++ {
		if got.Messages[i].Timestamp < got.Messages[i-1].Timestamp {
			t.Fatalf("timestamps decreased at %d", i)
		}
		if got.Messages[i].ID <= got.Messages[i-1].ID {
			t.Fatalf("ids not strictly increasing at %d", i)
		}
	}
}

func TestOnChangeSeesWholeCollection(t *testing.T) {
	s := NewStore()
	var lastSnapshot []Session
	s.SetOnChange(func(snap []Session) { lastSnapshot = snap })

	sess := s.Create([]Message{NewModelMessage("hi")}, "t")
	if len(lastSnapshot) != 1 {
		t.Fatalf("expected snapshot of 1 session, got %d", len(lastSnapshot))
	}
	s.UpdateMessages(sess.ID, func(msgs []Message) []Message {
		return append(msgs, NewUserMessage("q"))
	})
	if len(lastSnapshot) != 1 || len(lastSnapshot[0].Messages) != 2 {
		t.Errorf("snapshot not updated after mutation: %+v", lastSnapshot)
	}

	// The snapshot must be detached from store internals.
	lastSnapshot[0].Messages[0].Text = "tampered"
	got, _ := s.Get(sess.ID)
	if got.Messages[0].Text == "tampered" {
		t.Error("snapshot aliases store memory")
	}
}

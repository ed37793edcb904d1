package controllers

import (
	"context"
	"testing"

	"mzizi/mzizi/catalog"
	"mzizi/mzizi/services/advisor"
	"mzizi/mzizi/sessions"
	"mzizi/mzizi/sources/kv"
	"mzizi/mzizi/sources/psql/dao"
	"mzizi/mzizi/sources/psql/models"
	"mzizi/mzizi/types"
	"mzizi/mzizi/utils/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logging.InitLogger()
	m.Run()
}

func setupChat(t *testing.T) (*ChatController, string) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.KVEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	profileDAO := dao.NewProfileDAO(db)
	profile, err := profileDAO.CreateProfile(context.Background(), types.BusinessProfile{
		OwnerName: "Amina", BusinessName: "Baraka Bakery",
		BusinessType: "bakery", Country: "Kenya", Currency: "KES",
	})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	adapter := sessions.NewAdapter(kv.NewMemory())
	mock := &advisor.Mock{Replies: []sessions.Reply{{Text: "Here's one idea."}}}
	cc := NewChatController(adapter, profileDAO, catalog.Defaults(), mock)
	return cc, profile.ID
}

func TestStateHydratesLazily(t *testing.T) {
	cc, pid := setupChat(t)

	st, err := cc.State(context.Background(), pid)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st.State != sessions.StateActive {
		t.Errorf("state %q", st.State)
	}
	if len(st.Sessions) != 1 {
		t.Fatalf("expected the seeded session, got %d", len(st.Sessions))
	}
	if st.ActiveSessionID != st.Sessions[0].ID {
		t.Error("active session id must point at the seed")
	}
	if len(st.Suggestions) != 3 || len(st.Tools) != 4 {
		t.Errorf("suggestions=%d tools=%d", len(st.Suggestions), len(st.Tools))
	}
}

func TestStateUnknownProfileFails(t *testing.T) {
	cc, _ := setupChat(t)
	if _, err := cc.State(context.Background(), "ghost"); err == nil {
		t.Error("unknown profile must surface the lookup error")
	}
}

func TestSendFlow(t *testing.T) {
	cc, pid := setupChat(t)
	ctx := context.Background()

	st, _ := cc.State(ctx, pid)
	msg, ok, err := cc.Send(ctx, pid, st.ActiveSessionID, "How do I price bread?")
	if err != nil || !ok {
		t.Fatalf("send: ok=%v err=%v", ok, err)
	}
	if msg.Text != "Here's one idea." {
		t.Errorf("reply %q", msg.Text)
	}

	msgs, found, _ := cc.Messages(ctx, pid, st.ActiveSessionID)
	if !found || len(msgs) != 3 {
		t.Fatalf("expected 3 messages, found=%v len=%d", found, len(msgs))
	}
}

func TestSendUnknownSession(t *testing.T) {
	cc, pid := setupChat(t)
	_, ok, err := cc.Send(context.Background(), pid, "missing", "hi")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if ok {
		t.Error("unknown session must report ok=false")
	}
}

func TestNewChatWithToolContext(t *testing.T) {
	cc, pid := setupChat(t)
	ctx := context.Background()

	sess, err := cc.NewChat(ctx, pid, "pricing")
	if err != nil {
		t.Fatalf("new chat: %v", err)
	}
	if sess.Title != "Pricing Calculator" {
		t.Errorf("title %q", sess.Title)
	}

	plain, _ := cc.NewChat(ctx, pid, "")
	if plain.Title != "New Conversation" {
		t.Errorf("plain title %q", plain.Title)
	}
}

func TestQuickAskAndBranchEndpoints(t *testing.T) {
	cc, pid := setupChat(t)
	ctx := context.Background()

	_, fired, err := cc.QuickAsk(ctx, pid, sessions.QuickAsk{Token: "tok", Prompt: "Explain cash flow to me"})
	if err != nil || !fired {
		t.Fatalf("quick-ask: fired=%v err=%v", fired, err)
	}
	if _, fired, _ = cc.QuickAsk(ctx, pid, sessions.QuickAsk{Token: "tok", Prompt: "Explain cash flow to me"}); fired {
		t.Error("replayed token must not fire")
	}
	st, _ := cc.State(ctx, pid)
	if st.PendingInput != "Explain cash flow to me" {
		t.Errorf("pending %q", st.PendingInput)
	}

	cc.Send(ctx, pid, st.ActiveSessionID, "first question")
	branch, ok, err := cc.Branch(ctx, pid, st.ActiveSessionID, st.Sessions[0].Messages[0].ID)
	if err != nil || !ok {
		t.Fatalf("branch: ok=%v err=%v", ok, err)
	}
	if branch.Messages[len(branch.Messages)-1].Text != sessions.BranchMarkerText {
		t.Error("branch must end with the marker message")
	}
}

func TestDeleteAndSelect(t *testing.T) {
	cc, pid := setupChat(t)
	ctx := context.Background()

	first, _ := cc.NewChat(ctx, pid, "")
	second, _ := cc.NewChat(ctx, pid, "")

	if ok, _ := cc.Select(ctx, pid, first.ID); !ok {
		t.Fatal("select failed")
	}
	if err := cc.DeleteSession(ctx, pid, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := cc.Sessions(ctx, pid)
	for _, s := range list {
		if s.ID == second.ID {
			t.Error("deleted session still listed")
		}
	}
}

func TestEditAndDeleteMessageEndpoints(t *testing.T) {
	cc, pid := setupChat(t)
	ctx := context.Background()

	st, _ := cc.State(ctx, pid)
	sid := st.ActiveSessionID
	cc.Send(ctx, pid, sid, "typo hree")

	msgs, _, _ := cc.Messages(ctx, pid, sid)
	userID := msgs[1].ID
	if err := cc.EditMessage(ctx, pid, sid, userID, "typo here"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	msgs, _, _ = cc.Messages(ctx, pid, sid)
	if msgs[1].Text != "typo here" {
		t.Errorf("edit did not land: %q", msgs[1].Text)
	}

	if err := cc.DeleteMessage(ctx, pid, sid, userID); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	msgs, _, _ = cc.Messages(ctx, pid, sid)
	if len(msgs) != 2 {
		t.Errorf("expected 2 messages after delete, got %d", len(msgs))
	}
}

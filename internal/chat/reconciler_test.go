package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dukerupert/overhill/internal/api"
	"github.com/dukerupert/overhill/internal/database"
	"github.com/dukerupert/overhill/internal/model"
	"github.com/dukerupert/overhill/internal/snapshot"
	"github.com/dukerupert/overhill/internal/store"
	"github.com/dukerupert/overhill/internal/syncer"
)

func int64p(v int64) *int64 { return &v }

type chatServer struct {
	*httptest.Server
	creates atomic.Int64
	fail    atomic.Bool
}

func newChatServer(t *testing.T) *chatServer {
	t.Helper()
	cs := &chatServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/chats" && r.Method == http.MethodPost:
			if cs.fail.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			cs.creates.Add(1)
			var in api.ChatInput
			json.NewDecoder(r.Body).Decode(&in)
			chat := model.Chat{ID: 99, IsGroup: in.IsGroup, ParticipantIDs: in.ParticipantIDs}
			if len(in.HouseIDs) > 0 {
				chat.HouseID = &in.HouseIDs[0]
			}
			json.NewEncoder(w).Encode(chat)
		case r.URL.Path == "/chats/message" && r.Method == http.MethodPost:
			var in api.MessageInput
			json.NewDecoder(r.Body).Decode(&in)
			json.NewEncoder(w).Encode(model.Message{ID: 500, ChatID: in.ChatID, ClientID: in.ClientID, Content: in.Content, SenderID: 1})
		case r.URL.Path == "/chats" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]model.Chat{})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(cs.Close)
	return cs
}

func setupReconciler(t *testing.T, server *chatServer) (*Reconciler, *store.Store) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New()
	st.Auth.Succeed(&model.Session{User: model.User{ID: 1, Name: "Frodo", Email: "frodo@shire.example"}})
	st.Users.Succeed([]model.User{
		{ID: 1, Name: "Frodo"}, {ID: 2, Name: "Sam"}, {ID: 3, Name: "Merry"}, {ID: 4, Name: "Pippin"},
	})
	st.Houses.Succeed([]model.House{
		{ID: 5, Name: "Bag End", OccupantIDs: []int64{1, 2, 3}},
		{ID: 6, Name: "Crickhollow", OccupantIDs: []int64{2, 4}},
		{ID: 7, Name: "Brandy Hall", OccupantIDs: []int64{3, 4}},
	})
	st.Chats.Succeed([]model.Chat{
		{ID: 40, HouseID: int64p(5), IsGroup: true, ParticipantIDs: []int64{1, 2, 3}},
	})

	client := api.NewClient(server.URL)
	snaps := snapshot.NewStore(db)
	chats := syncer.New("chats", snapshot.KeyChats, st.Chats, snaps, client.ListChats, slog.Default())
	return NewReconciler(client, st, chats, slog.Default()), st
}

func TestInitReusesExactMatch(t *testing.T) {
	server := newChatServer(t)
	r, _ := setupReconciler(t, server)

	// House 5 occupants resolve to exactly {1,2,3}.
	chat, err := r.Init(context.Background(), Target{HouseIDs: []int64{5}})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if chat.ID != 40 {
		t.Errorf("chat id = %d, want existing 40", chat.ID)
	}
	if server.creates.Load() != 0 {
		t.Errorf("creation calls = %d, want 0", server.creates.Load())
	}
	if r.State() != StateReady {
		t.Errorf("state = %q, want %q", r.State(), StateReady)
	}
}

func TestInitCreatesOnMismatch(t *testing.T) {
	server := newChatServer(t)
	r, st := setupReconciler(t, server)

	// {1,2,4} differs from the existing {1,2,3}.
	chat, err := r.Init(context.Background(), Target{UserIDs: []int64{2, 4}})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if chat.ID != 99 {
		t.Errorf("chat id = %d, want created 99", chat.ID)
	}
	if server.creates.Load() != 1 {
		t.Errorf("creation calls = %d, want 1", server.creates.Load())
	}
	if len(st.Chats.Get()) != 2 {
		t.Errorf("chats in store = %d, want 2", len(st.Chats.Get()))
	}
}

func TestResolveDiscardsInvalidAndDuplicates(t *testing.T) {
	server := newChatServer(t)
	r, _ := setupReconciler(t, server)

	resolved, err := r.Resolve(Target{UserIDs: []int64{2, 2, 0, -7}, HouseIDs: []int64{5}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []int64{1, 2, 3}
	if len(resolved) != len(want) {
		t.Fatalf("resolved = %v, want ids %v", resolved, want)
	}
	for _, id := range want {
		if _, ok := resolved[id]; !ok {
			t.Errorf("resolved set missing %d", id)
		}
	}
}

func TestGroupFlag(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   bool
	}{
		{"single member", Target{UserIDs: []int64{2}}, false},
		{"two members", Target{UserIDs: []int64{2, 4}}, true},
		{"one house", Target{HouseIDs: []int64{6}}, false},
		{"two houses", Target{HouseIDs: []int64{6, 7}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newChatServer(t)
			r, _ := setupReconciler(t, server)

			chat, err := r.Init(context.Background(), tt.target)
			if err != nil {
				t.Fatalf("init: %v", err)
			}
			if chat.IsGroup != tt.want {
				t.Errorf("isGroup = %v, want %v", chat.IsGroup, tt.want)
			}
		})
	}
}

func TestInitGuardRejectsReentry(t *testing.T) {
	server := newChatServer(t)
	r, _ := setupReconciler(t, server)

	r.mu.Lock()
	r.state = StateInitializing
	r.mu.Unlock()

	if _, err := r.Init(context.Background(), Target{UserIDs: []int64{2}}); !errors.Is(err, ErrInitInFlight) {
		t.Errorf("err = %v, want ErrInitInFlight", err)
	}
}

func TestInitFailureAllowsRetry(t *testing.T) {
	server := newChatServer(t)
	server.fail.Store(true)
	r, _ := setupReconciler(t, server)

	if _, err := r.Init(context.Background(), Target{UserIDs: []int64{4}}); err == nil {
		t.Fatal("expected failure")
	}
	if r.State() != StateFailed {
		t.Fatalf("state = %q, want %q", r.State(), StateFailed)
	}

	server.fail.Store(false)
	chat, err := r.Init(context.Background(), Target{UserIDs: []int64{4}})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if chat.ID != 99 {
		t.Errorf("chat id = %d, want 99", chat.ID)
	}
}

func TestResetAllowsFreshVisit(t *testing.T) {
	server := newChatServer(t)
	r, _ := setupReconciler(t, server)

	if _, err := r.Init(context.Background(), Target{HouseIDs: []int64{5}}); err != nil {
		t.Fatalf("init: %v", err)
	}
	r.Reset()

	if r.State() != StateIdle {
		t.Errorf("state = %q, want %q", r.State(), StateIdle)
	}
	if _, ok := r.Active(); ok {
		t.Error("expected no active chat after reset")
	}
	if _, err := r.Init(context.Background(), Target{HouseIDs: []int64{5}}); err != nil {
		t.Errorf("init after reset: %v", err)
	}
}

func TestReloadChatsDebounced(t *testing.T) {
	server := newChatServer(t)
	r, st := setupReconciler(t, server)

	if err := r.ReloadChats(context.Background()); err != nil {
		t.Fatalf("first reload: %v", err)
	}
	first := st.Chats.Status()

	// A second reload inside the window is dropped without a load.
	if err := r.ReloadChats(context.Background()); err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if st.Chats.Status() != first {
		t.Errorf("debounced reload changed status to %q", st.Chats.Status())
	}
}

func TestSendFoldsMessage(t *testing.T) {
	server := newChatServer(t)
	r, st := setupReconciler(t, server)

	if _, err := r.Init(context.Background(), Target{HouseIDs: []int64{5}}); err != nil {
		t.Fatalf("init: %v", err)
	}

	msg, err := r.Send(context.Background(), "supper at six", "")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.ClientID == "" {
		t.Error("expected a client id on the outbound message")
	}

	chat, _ := st.ChatByID(40)
	if len(chat.Messages) != 1 || chat.Messages[0].Content != "supper at six" {
		t.Errorf("messages = %v", chat.Messages)
	}

	// A replayed copy of the same message must not duplicate.
	st.Chats.Update(func(chats []model.Chat) []model.Chat {
		return foldMessage(chats, msg)
	})
	chat, _ = st.ChatByID(40)
	if len(chat.Messages) != 1 {
		t.Errorf("messages after replay = %d, want 1", len(chat.Messages))
	}
}

func TestSendWithoutInit(t *testing.T) {
	server := newChatServer(t)
	r, _ := setupReconciler(t, server)

	if _, err := r.Send(context.Background(), "hello", ""); !errors.Is(err, ErrNotReady) {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}

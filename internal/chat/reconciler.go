package chat

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/overhill/internal/api"
	"github.com/dukerupert/overhill/internal/model"
	"github.com/dukerupert/overhill/internal/store"
	"github.com/dukerupert/overhill/internal/syncer"
)

// reloadWindow is how long repeat chat-list reloads for the same
// identity are dropped after an accepted one.
const reloadWindow = 10 * time.Second

// InitState is the reconciler's initialization lifecycle.
type InitState string

const (
	StateIdle         InitState = "idle"
	StateInitializing InitState = "initializing"
	StateReady        InitState = "ready"
	StateFailed       InitState = "failed"
)

// ErrInitInFlight is returned when Init is called while a prior attempt
// is still running.
var ErrInitInFlight = errors.New("chat initialization already in flight")

// ErrNotReady is returned by message operations before Init succeeds.
var ErrNotReady = errors.New("no active chat")

// Target is the requested participant specification: explicit user ids
// plus house ids, where each house expands to all of its occupants.
type Target struct {
	UserIDs  []int64
	HouseIDs []int64
}

// Reconciler decides create-vs-reuse for conversation threads. Given a
// target participant set it reuses an existing chat whose participants
// match exactly, and requests creation otherwise, so the same parties
// never end up with duplicate conversations.
//
// Init runs at most once per screen visit: a re-entrant call while one
// is in flight is rejected, a failure resets the guard for one retry,
// and Reset clears it when the screen is left.
type Reconciler struct {
	client   *api.Client
	store    *store.Store
	chats    *syncer.Synchronizer[[]model.Chat]
	debounce *syncer.Debouncer
	logger   *slog.Logger

	mu       sync.Mutex
	state    InitState
	activeID int64
}

func NewReconciler(client *api.Client, st *store.Store, chats *syncer.Synchronizer[[]model.Chat], logger *slog.Logger) *Reconciler {
	return &Reconciler{
		client:   client,
		store:    st,
		chats:    chats,
		debounce: syncer.NewDebouncer(reloadWindow),
		logger:   logger,
		state:    StateIdle,
	}
}

func (r *Reconciler) State() InitState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Active returns the chat activated by the last successful Init.
func (r *Reconciler) Active() (model.Chat, bool) {
	r.mu.Lock()
	id := r.activeID
	r.mu.Unlock()
	if id == 0 {
		return model.Chat{}, false
	}
	return r.store.ChatByID(id)
}

// Reset clears the initialization guard. Call it when the screen that
// owns this reconciler is left, so the next visit starts fresh.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	r.state = StateIdle
	r.activeID = 0
	r.mu.Unlock()
}

// Resolve computes the deduplicated participant set for the current
// user: the user themselves, the explicit user ids, and every occupant
// of each named house. Ids that are zero or negative are discarded.
func (r *Reconciler) Resolve(target Target) (map[int64]struct{}, error) {
	sess := r.store.Auth.Get()
	if sess == nil {
		return nil, &api.AuthError{Message: "not logged in"}
	}

	resolved := map[int64]struct{}{sess.User.ID: {}}
	for _, id := range target.UserIDs {
		if id > 0 {
			resolved[id] = struct{}{}
		}
	}
	for _, houseID := range target.HouseIDs {
		house, ok := r.store.HouseByID(houseID)
		if !ok {
			continue
		}
		for _, id := range house.OccupantIDs {
			if id > 0 {
				resolved[id] = struct{}{}
			}
		}
	}
	return resolved, nil
}

// Init activates the conversation for the target participant set,
// reusing an existing chat when one matches exactly and creating one
// otherwise.
func (r *Reconciler) Init(ctx context.Context, target Target) (model.Chat, error) {
	r.mu.Lock()
	if r.state == StateInitializing {
		r.mu.Unlock()
		return model.Chat{}, ErrInitInFlight
	}
	r.state = StateInitializing
	r.mu.Unlock()

	chat, err := r.initialize(ctx, target)
	r.mu.Lock()
	if err != nil {
		// Guard resets to allow one retry.
		r.state = StateFailed
	} else {
		r.state = StateReady
		r.activeID = chat.ID
	}
	r.mu.Unlock()
	return chat, err
}

func (r *Reconciler) initialize(ctx context.Context, target Target) (model.Chat, error) {
	resolved, err := r.Resolve(target)
	if err != nil {
		return model.Chat{}, err
	}

	if existing, ok := r.findExisting(target, resolved); ok {
		return existing, nil
	}

	if err := ctx.Err(); err != nil {
		return model.Chat{}, err
	}

	ids := make([]int64, 0, len(resolved))
	for id := range resolved {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	in := api.ChatInput{
		IsGroup:        len(target.HouseIDs) > 1 || len(target.UserIDs) > 1,
		HouseIDs:       target.HouseIDs,
		ParticipantIDs: ids,
	}
	chat, err := r.client.CreateChat(ctx, in)
	if err != nil {
		return model.Chat{}, err
	}
	if err := ctx.Err(); err != nil {
		// Cancelled mid-create: the server may have the chat, but this
		// screen is gone. Discard without touching the slice.
		return model.Chat{}, err
	}

	r.store.Chats.Update(func(chats []model.Chat) []model.Chat {
		return append(chats, chat)
	})
	return chat, nil
}

// findExisting searches known chats for an exact participant-set match.
// When the target names houses, the chat's house association must match
// the first one.
func (r *Reconciler) findExisting(target Target, resolved map[int64]struct{}) (model.Chat, bool) {
	for _, chat := range r.store.Chats.Get() {
		if len(target.HouseIDs) > 0 {
			if chat.HouseID == nil || *chat.HouseID != target.HouseIDs[0] {
				continue
			}
		}
		if chat.HasParticipants(resolved) {
			return chat, true
		}
	}
	return model.Chat{}, false
}

// ReloadChats refreshes the chat list, dropping requests that arrive
// within the debounce window of the previous reload for this identity.
func (r *Reconciler) ReloadChats(ctx context.Context) error {
	sess := r.store.Auth.Get()
	if sess == nil {
		return &api.AuthError{Message: "not logged in"}
	}
	if !r.debounce.Allow(sess.User.Email) {
		r.logger.Debug("chat reload debounced", "user", sess.User.ID)
		return nil
	}
	return r.chats.Load(ctx)
}

// Send posts a message to the active chat and folds it into the read
// model. The client id makes a retried send idempotent server-side.
func (r *Reconciler) Send(ctx context.Context, content, imageURL string) (model.Message, error) {
	active, ok := r.Active()
	if !ok {
		return model.Message{}, ErrNotReady
	}

	msg, err := r.client.SendMessage(ctx, api.MessageInput{
		ChatID:   active.ID,
		ClientID: uuid.NewString(),
		Content:  content,
		ImageURL: imageURL,
	})
	if err != nil {
		return model.Message{}, err
	}

	r.store.Chats.Update(func(chats []model.Chat) []model.Chat {
		return foldMessage(chats, msg)
	})
	return msg, nil
}

// MarkRead records the current user as caught up on the active chat.
func (r *Reconciler) MarkRead(ctx context.Context) error {
	active, ok := r.Active()
	if !ok {
		return ErrNotReady
	}
	if len(active.Messages) == 0 {
		return nil
	}
	last := active.Messages[len(active.Messages)-1]
	return r.client.MarkMessagesRead(ctx, active.ID, last.ID)
}

// foldMessage appends msg to its chat, replacing an optimistic entry
// with the same client id and dropping exact duplicates.
func foldMessage(chats []model.Chat, msg model.Message) []model.Chat {
	for i := range chats {
		if chats[i].ID != msg.ChatID {
			continue
		}
		for j, existing := range chats[i].Messages {
			if existing.ID == msg.ID || (msg.ClientID != "" && existing.ClientID == msg.ClientID) {
				chats[i].Messages[j] = msg
				return chats
			}
		}
		chats[i].Messages = append(chats[i].Messages, msg)
		return chats
	}
	return chats
}

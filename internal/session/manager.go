package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/overhill/internal/api"
	"github.com/dukerupert/overhill/internal/model"
	"github.com/dukerupert/overhill/internal/snapshot"
	"github.com/dukerupert/overhill/internal/store"
)

// Manager owns the authenticated identity. The auth slice is the only
// one rehydrated from durable storage at startup; its snapshot is
// sealed at rest under a device passphrase.
type Manager struct {
	client     *api.Client
	snapshots  *snapshot.Store
	slice      *store.Slice[*model.Session]
	passphrase string
	logger     *slog.Logger
}

func NewManager(client *api.Client, snapshots *snapshot.Store, st *store.Store, passphrase string, logger *slog.Logger) *Manager {
	return &Manager{
		client:     client,
		snapshots:  snapshots,
		slice:      st.Auth,
		passphrase: passphrase,
		logger:     logger,
	}
}

// RestoreFromSnapshot rehydrates the identity from durable storage. Call
// it once at process start, before anything renders. A missing snapshot
// leaves the session unauthenticated; an unreadable one is cleared and
// likewise treated as logged out.
func (m *Manager) RestoreFromSnapshot() error {
	sealed, err := m.snapshots.Get(snapshot.KeyAuth)
	if err != nil {
		return fmt.Errorf("read auth snapshot: %w", err)
	}
	if sealed == nil {
		return nil
	}

	plain, err := snapshot.Open(sealed, m.passphrase)
	if err != nil {
		m.logger.Warn("unsealing auth snapshot failed, clearing", "error", err)
		return m.snapshots.Clear(snapshot.KeyAuth)
	}

	var sess model.Session
	if err := json.Unmarshal(plain, &sess); err != nil {
		m.logger.Warn("decoding auth snapshot failed, clearing", "error", err)
		return m.snapshots.Clear(snapshot.KeyAuth)
	}

	m.client.SetToken(sess.Token)
	m.slice.Succeed(&sess)
	return nil
}

// Login authenticates and establishes the session. Invalid credentials
// surface as *api.AuthError.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.Session, error) {
	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := &model.Session{
		User:       res.User,
		Token:      res.Token,
		DeviceID:   uuid.NewString(),
		LoggedInAt: time.Now(),
	}

	m.client.SetToken(sess.Token)
	m.slice.Succeed(sess)

	if err := m.persist(sess); err != nil {
		m.logger.Warn("persist auth snapshot", "error", err)
	}
	return sess, nil
}

// Logout clears the durable snapshot and the in-memory identity. It is
// idempotent: calling it while already logged out is a no-op.
func (m *Manager) Logout() error {
	m.client.SetToken("")
	m.slice.Reset()
	if err := m.snapshots.Clear(snapshot.KeyAuth); err != nil {
		return fmt.Errorf("clear auth snapshot: %w", err)
	}
	return nil
}

// Current returns the authenticated session, if any.
func (m *Manager) Current() (*model.Session, bool) {
	sess := m.slice.Get()
	return sess, sess != nil
}

func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}

// UpdateUser merges a partial update into the current identity without a
// round trip. The patch is not re-validated against the server.
func (m *Manager) UpdateUser(patch api.UserPatch) error {
	if _, ok := m.Current(); !ok {
		return &api.AuthError{Message: "not logged in"}
	}

	m.slice.Update(func(s *model.Session) *model.Session {
		if s == nil {
			return s
		}
		next := *s
		applyPatch(&next.User, patch)
		return &next
	})

	sess, _ := m.Current()
	if err := m.persist(sess); err != nil {
		return fmt.Errorf("persist auth snapshot: %w", err)
	}
	return nil
}

// RegisterPushToken attaches an opaque push token to the identity and
// forwards it to the backend.
func (m *Manager) RegisterPushToken(ctx context.Context, token string) error {
	sess, ok := m.Current()
	if !ok {
		return &api.AuthError{Message: "not logged in"}
	}

	if _, err := m.client.UpdateUser(ctx, sess.User.ID, api.UserPatch{PushToken: &token}); err != nil {
		return err
	}

	m.slice.Update(func(s *model.Session) *model.Session {
		if s == nil {
			return s
		}
		next := *s
		next.PushToken = token
		next.User.PushToken = token
		return &next
	})

	sess, _ = m.Current()
	if err := m.persist(sess); err != nil {
		m.logger.Warn("persist auth snapshot", "error", err)
	}
	return nil
}

// Validate checks the session against the server. An auth rejection
// downgrades to unauthenticated; the caller redirects to login. A
// transport failure keeps the session as-is.
func (m *Manager) Validate(ctx context.Context) error {
	sess, ok := m.Current()
	if !ok {
		return nil
	}

	_, err := m.client.GetUser(ctx, sess.User.ID)
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		if lerr := m.Logout(); lerr != nil {
			m.logger.Warn("logout after failed validation", "error", lerr)
		}
		return err
	}
	return err
}

func (m *Manager) persist(sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	sealed, err := snapshot.Seal(data, m.passphrase)
	if err != nil {
		return err
	}
	return m.snapshots.Set(snapshot.KeyAuth, sealed)
}

func applyPatch(u *model.User, patch api.UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Gender != nil {
		u.Gender = *patch.Gender
	}
	if patch.HouseID != nil {
		u.HouseID = patch.HouseID
	}
	if patch.PushToken != nil {
		u.PushToken = *patch.PushToken
	}
}

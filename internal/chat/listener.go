package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	ws "github.com/coder/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/dukerupert/overhill/internal/model"
	"github.com/dukerupert/overhill/internal/store"
)

const reconnectBase = time.Second

// event is one realtime notification from the message stream.
type event struct {
	Type    string        `json:"type"`
	Message model.Message `json:"message"`
}

// Listener tails the realtime message stream and folds inbound messages
// into the chats slice, so an open conversation updates without a
// reload.
type Listener struct {
	url    string
	token  string
	store  *store.Store
	logger *slog.Logger
}

func NewListener(url, token string, st *store.Store, logger *slog.Logger) *Listener {
	return &Listener{
		url:    url,
		token:  token,
		store:  st,
		logger: logger,
	}
}

// Run connects and reads until ctx is cancelled, reconnecting with
// capped exponential backoff after a dropped connection.
func (l *Listener) Run(ctx context.Context) error {
	backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(reconnectBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Warn("message stream dropped, reconnecting", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (l *Listener) listen(ctx context.Context) error {
	conn, _, err := ws.Dial(ctx, l.url, &ws.DialOptions{
		HTTPHeader: map[string][]string{
			"Authorization": {"Bearer " + l.token},
		},
	})
	if err != nil {
		return err
	}
	defer conn.Close(ws.StatusNormalClosure, "")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			l.logger.Warn("bad stream payload", "error", err)
			continue
		}
		if ev.Type != "message" {
			continue
		}

		l.store.Chats.Update(func(chats []model.Chat) []model.Chat {
			return foldMessage(chats, ev.Message)
		})
	}
}

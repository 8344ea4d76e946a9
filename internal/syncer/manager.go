package syncer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dukerupert/overhill/internal/api"
	"github.com/dukerupert/overhill/internal/model"
	"github.com/dukerupert/overhill/internal/snapshot"
	"github.com/dukerupert/overhill/internal/store"
)

// Manager bundles one synchronizer per resource type over a shared
// gateway, snapshot store and read model.
type Manager struct {
	Users      *Synchronizer[[]model.User]
	Tasks      *Synchronizer[[]model.Task]
	Chores     *Synchronizer[[]model.Chore]
	Houses     *Synchronizer[[]model.House]
	Scriptures *Synchronizer[[]model.Scripture]
	Feedback   *Synchronizer[[]model.Feedback]
	Chats      *Synchronizer[[]model.Chat]
}

func NewManager(client *api.Client, snapshots *snapshot.Store, st *store.Store, logger *slog.Logger) *Manager {
	return &Manager{
		Users:      New("users", snapshot.KeyUsers, st.Users, snapshots, client.ListUsers, logger),
		Tasks:      New("tasks", snapshot.KeyTasks, st.Tasks, snapshots, client.ListTasks, logger),
		Chores:     New("chores", snapshot.KeyChores, st.Chores, snapshots, client.ListChores, logger),
		Houses:     New("houses", snapshot.KeyHouses, st.Houses, snapshots, client.ListHouses, logger),
		Scriptures: New("scriptures", snapshot.KeyScriptures, st.Scriptures, snapshots, client.ListScriptures, logger),
		Feedback:   New("feedback", snapshot.KeyFeedback, st.Feedback, snapshots, client.ListFeedback, logger),
		Chats:      New("chats", snapshot.KeyChats, st.Chats, snapshots, client.ListChats, logger),
	}
}

// LoadAll runs every resource synchronizer concurrently and waits for
// all of them. Resources are independent: one failure never blocks or
// clears another, so errors are only logged by the individual loads.
func (m *Manager) LoadAll(ctx context.Context) {
	var wg sync.WaitGroup
	loads := []func(context.Context) error{
		m.Users.Load,
		m.Tasks.Load,
		m.Chores.Load,
		m.Houses.Load,
		m.Scriptures.Load,
		m.Feedback.Load,
		m.Chats.Load,
	}
	for _, load := range loads {
		wg.Add(1)
		go func(load func(context.Context) error) {
			defer wg.Done()
			load(ctx)
		}(load)
	}
	wg.Wait()
}

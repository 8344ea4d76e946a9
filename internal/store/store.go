package store

import "github.com/dukerupert/overhill/internal/model"

// Store is the process-wide read model: one slice per resource type plus
// the auth session. Consumers subscribe to exactly the slices they need.
// Only Auth is restored from durable storage at startup; every other
// slice starts idle and is populated by its synchronizer on first access.
type Store struct {
	Users      *Slice[[]model.User]
	Tasks      *Slice[[]model.Task]
	Chores     *Slice[[]model.Chore]
	Houses     *Slice[[]model.House]
	Scriptures *Slice[[]model.Scripture]
	Feedback   *Slice[[]model.Feedback]
	Chats      *Slice[[]model.Chat]
	Auth       *Slice[*model.Session]
}

func New() *Store {
	return &Store{
		Users:      NewSlice[[]model.User](),
		Tasks:      NewSlice[[]model.Task](),
		Chores:     NewSlice[[]model.Chore](),
		Houses:     NewSlice[[]model.House](),
		Scriptures: NewSlice[[]model.Scripture](),
		Feedback:   NewSlice[[]model.Feedback](),
		Chats:      NewSlice[[]model.Chat](),
		Auth:       NewSlice[*model.Session](),
	}
}

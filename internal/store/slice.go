package store

import "sync"

// Status is the lifecycle of a slice's data.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Slice is one independently-updatable partition of the read model. It
// owns a single value plus its load status and last error, and notifies
// only its own subscribers; updates to one slice never touch another.
type Slice[T any] struct {
	mu      sync.RWMutex
	value   T
	status  Status
	prev    Status
	err     error
	subs    map[int]func()
	nextSub int
}

func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{
		status: StatusIdle,
		subs:   make(map[int]func()),
	}
}

// Get returns the current value. Consumers treat it as read-only.
func (s *Slice[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *Slice[T]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the error recorded by the last failed load, or nil.
func (s *Slice[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// BeginLoad transitions to loading and reports whether the transition
// happened. It returns false when a load is already in flight, which is
// how callers guarantee at most one concurrent fetch per slice.
func (s *Slice[T]) BeginLoad() bool {
	s.mu.Lock()
	if s.status == StatusLoading {
		s.mu.Unlock()
		return false
	}
	s.prev = s.status
	s.status = StatusLoading
	s.mu.Unlock()
	s.notify()
	return true
}

// Abort restores the status in effect before BeginLoad, leaving value
// and error untouched. Used when a load is cancelled and its result
// discarded.
func (s *Slice[T]) Abort() {
	s.mu.Lock()
	if s.status == StatusLoading {
		s.status = s.prev
	}
	s.mu.Unlock()
	s.notify()
}

// Succeed stores a new value and transitions to succeeded.
func (s *Slice[T]) Succeed(value T) {
	s.mu.Lock()
	s.value = value
	s.status = StatusSucceeded
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// SucceedUnchanged transitions to succeeded without replacing the
// exposed value, so consumers sensitive to referential stability do not
// see a structurally identical but distinct instance.
func (s *Slice[T]) SucceedUnchanged() {
	s.mu.Lock()
	s.status = StatusSucceeded
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// Fail records the error and transitions to failed. The previously
// exposed value is left untouched (stale-but-available).
func (s *Slice[T]) Fail(err error) {
	s.mu.Lock()
	s.status = StatusFailed
	s.err = err
	s.mu.Unlock()
	s.notify()
}

// Update applies fn to the current value in place. The slice's status is
// unchanged; used for optimistic patches and live message folds.
func (s *Slice[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.mu.Unlock()
	s.notify()
}

// Reset clears the slice back to its zero value and idle status.
func (s *Slice[T]) Reset() {
	var zero T
	s.mu.Lock()
	s.value = zero
	s.status = StatusIdle
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe function.
func (s *Slice[T]) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Slice[T]) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	// Run outside the lock so a subscriber may read the slice.
	for _, fn := range fns {
		fn()
	}
}

package store

import (
	"errors"
	"testing"

	"github.com/dukerupert/overhill/internal/model"
)

func TestSliceLifecycle(t *testing.T) {
	s := NewSlice[[]model.User]()

	if s.Status() != StatusIdle {
		t.Fatalf("status = %q, want %q", s.Status(), StatusIdle)
	}

	if !s.BeginLoad() {
		t.Fatal("expected BeginLoad to succeed from idle")
	}
	if s.Status() != StatusLoading {
		t.Fatalf("status = %q, want %q", s.Status(), StatusLoading)
	}

	users := []model.User{{ID: 1, Name: "Frodo"}}
	s.Succeed(users)
	if s.Status() != StatusSucceeded {
		t.Fatalf("status = %q, want %q", s.Status(), StatusSucceeded)
	}
	if got := s.Get(); len(got) != 1 || got[0].Name != "Frodo" {
		t.Errorf("value = %v", got)
	}
}

func TestBeginLoadDropsDuplicate(t *testing.T) {
	s := NewSlice[[]model.Task]()

	if !s.BeginLoad() {
		t.Fatal("first BeginLoad should succeed")
	}
	if s.BeginLoad() {
		t.Error("second BeginLoad during loading should be dropped")
	}

	s.Succeed(nil)
	if !s.BeginLoad() {
		t.Error("BeginLoad after success should succeed")
	}
}

func TestFailKeepsValue(t *testing.T) {
	s := NewSlice[[]model.Task]()
	s.BeginLoad()
	s.Succeed([]model.Task{{ID: 7}})

	s.BeginLoad()
	wantErr := errors.New("boom")
	s.Fail(wantErr)

	if s.Status() != StatusFailed {
		t.Fatalf("status = %q, want %q", s.Status(), StatusFailed)
	}
	if !errors.Is(s.Err(), wantErr) {
		t.Errorf("err = %v, want %v", s.Err(), wantErr)
	}
	if got := s.Get(); len(got) != 1 || got[0].ID != 7 {
		t.Errorf("stale value lost: %v", got)
	}
}

func TestAbortRestoresPriorStatus(t *testing.T) {
	s := NewSlice[[]model.Task]()
	s.BeginLoad()
	s.Succeed([]model.Task{{ID: 1}})

	s.BeginLoad()
	s.Abort()

	if s.Status() != StatusSucceeded {
		t.Errorf("status = %q, want %q", s.Status(), StatusSucceeded)
	}
	if got := s.Get(); len(got) != 1 {
		t.Errorf("value lost on abort: %v", got)
	}
}

func TestSucceedUnchangedKeepsInstance(t *testing.T) {
	s := NewSlice[[]model.User]()
	s.BeginLoad()
	first := []model.User{{ID: 1}}
	s.Succeed(first)

	s.BeginLoad()
	s.SucceedUnchanged()

	got := s.Get()
	if len(got) != 1 || &got[0] != &first[0] {
		t.Error("expected the originally exposed instance, not a copy")
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := NewSlice[[]model.User]()

	var calls int
	unsub := s.Subscribe(func() { calls++ })

	s.BeginLoad()
	s.Succeed(nil)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	unsub()
	s.BeginLoad()
	if calls != 2 {
		t.Errorf("calls after unsubscribe = %d, want 2", calls)
	}
}

func TestSlicesAreIndependent(t *testing.T) {
	st := New()

	var userCalls, taskCalls int
	st.Users.Subscribe(func() { userCalls++ })
	st.Tasks.Subscribe(func() { taskCalls++ })

	st.Users.BeginLoad()
	st.Users.Succeed([]model.User{{ID: 1}})

	if userCalls != 2 {
		t.Errorf("user subscriber calls = %d, want 2", userCalls)
	}
	if taskCalls != 0 {
		t.Errorf("task subscriber notified by user update: %d calls", taskCalls)
	}
	if st.Tasks.Status() != StatusIdle {
		t.Errorf("tasks status = %q, want %q", st.Tasks.Status(), StatusIdle)
	}
}

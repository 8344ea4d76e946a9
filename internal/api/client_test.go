package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/overhill/internal/model"
)

func TestListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]model.User{{ID: 1, Name: "Frodo", Role: model.RoleResident}})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Frodo" {
		t.Errorf("users = %v", users)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q, want %q", got, "Bearer tok-123")
		}
		json.NewEncoder(w).Encode([]model.User{})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.SetToken("tok-123")
	if _, err := c.ListUsers(context.Background()); err != nil {
		t.Fatalf("list users: %v", err)
	}
}

func TestHTTPErrorWithServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "house name taken"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.CreateHouse(context.Background(), HouseInput{Name: "Bag End", Capacity: 4})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *HTTPError", err)
	}
	if httpErr.Status != http.StatusConflict || httpErr.Message != "house name taken" {
		t.Errorf("got %d %q", httpErr.Status, httpErr.Message)
	}
}

func TestUnauthorizedIsAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.ListTasks(context.Background())

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("err = %v, want *AuthError", err)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewClient(server.URL)
	_, err := c.ListTasks(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if !IsRetryable(err) {
		t.Error("network errors must be retryable")
	}
}

func TestHTTPErrorNotRetryable(t *testing.T) {
	err := &HTTPError{Status: 500, Message: "boom"}
	if IsRetryable(err) {
		t.Error("server rejections must not be retryable")
	}
}

func TestValidationNeverReachesGateway(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := NewClient(server.URL)
	ctx := context.Background()

	var valErr *ValidationError
	if _, err := c.CreateHouse(ctx, HouseInput{Name: "Bag End", Capacity: 0}); !errors.As(err, &valErr) {
		t.Errorf("capacity 0: err = %v, want *ValidationError", err)
	}
	if _, err := c.CreateHouse(ctx, HouseInput{Name: "  ", Capacity: 2}); !errors.As(err, &valErr) {
		t.Errorf("blank name: err = %v, want *ValidationError", err)
	}
	if _, err := c.Login(ctx, "", "secret"); !errors.As(err, &valErr) {
		t.Errorf("blank email: err = %v, want *ValidationError", err)
	}
	if _, err := c.SendMessage(ctx, MessageInput{ChatID: 1}); !errors.As(err, &valErr) {
		t.Errorf("empty message: err = %v, want *ValidationError", err)
	}
	if _, err := c.CreateFeedback(ctx, FeedbackInput{Message: "hi", Type: "Rant"}); !errors.As(err, &valErr) {
		t.Errorf("unknown feedback type: err = %v, want *ValidationError", err)
	}

	if requests != 0 {
		t.Errorf("gateway received %d requests, want 0", requests)
	}
}

func TestLoginReturnsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "frodo@shire.example" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(LoginResult{
			User:  model.User{ID: 1, Name: "Frodo", Email: req.Email},
			Token: "tok-abc",
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	res, err := c.Login(context.Background(), "frodo@shire.example", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.User.ID != 1 || res.Token != "tok-abc" {
		t.Errorf("result = %+v", res)
	}

	var authErr *AuthError
	if _, err := c.Login(context.Background(), "sam@shire.example", "wrong"); !errors.As(err, &authErr) {
		t.Errorf("bad credentials: err = %v, want *AuthError", err)
	}
}

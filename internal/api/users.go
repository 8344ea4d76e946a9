package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/overhill/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the identity payload returned by the authentication endpoint.
type LoginResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login authenticates against POST /users/login. Invalid credentials
// surface as *AuthError; transport failures as *NetworkError.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return LoginResult{}, &ValidationError{Field: "email", Message: "required"}
	}
	if password == "" {
		return LoginResult{}, &ValidationError{Field: "password", Message: "required"}
	}

	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/users/login", loginRequest{Email: email, Password: password}, &res); err != nil {
		return LoginResult{}, err
	}
	return res, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserPatch is a partial update applied to a user. Nil fields are left
// untouched server-side.
type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	HouseID   *int64  `json:"houseId,omitempty"`
	PushToken *string `json:"pushToken,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, id int64, patch UserPatch) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), patch, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

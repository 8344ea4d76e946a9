package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/overhill/internal/model"
)

func (c *Client) ListChores(ctx context.Context) ([]model.Chore, error) {
	var chores []model.Chore
	if err := c.do(ctx, http.MethodGet, "/chores", nil, &chores); err != nil {
		return nil, err
	}
	return chores, nil
}

type ChoreInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HouseID     int64  `json:"houseId"`
	IsPrimary   bool   `json:"isPrimary"`
	AssigneeID  *int64 `json:"assigneeId,omitempty"`
}

func (in ChoreInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if in.HouseID <= 0 {
		return &ValidationError{Field: "houseId", Message: "required"}
	}
	return nil
}

func (c *Client) CreateChore(ctx context.Context, in ChoreInput) (model.Chore, error) {
	if err := in.validate(); err != nil {
		return model.Chore{}, err
	}
	var chore model.Chore
	if err := c.do(ctx, http.MethodPost, "/chores", in, &chore); err != nil {
		return model.Chore{}, err
	}
	return chore, nil
}

func (c *Client) UpdateChore(ctx context.Context, id int64, in ChoreInput) (model.Chore, error) {
	if err := in.validate(); err != nil {
		return model.Chore{}, err
	}
	var chore model.Chore
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/chores/%d", id), in, &chore); err != nil {
		return model.Chore{}, err
	}
	return chore, nil
}

// SetChoreStatus moves a chore through its review cycle.
func (c *Client) SetChoreStatus(ctx context.Context, id int64, status model.ChoreStatus) (model.Chore, error) {
	if model.ParseChoreStatus(string(status)) == model.ChoreUnknown {
		return model.Chore{}, &ValidationError{Field: "status", Message: "unknown status value"}
	}
	body := map[string]model.ChoreStatus{"status": status}
	var chore model.Chore
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/chores/%d", id), body, &chore); err != nil {
		return model.Chore{}, err
	}
	return chore, nil
}

func (c *Client) DeleteChore(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/chores/%d", id), nil, nil)
}

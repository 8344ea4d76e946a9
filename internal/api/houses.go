package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/overhill/internal/model"
)

func (c *Client) ListHouses(ctx context.Context) ([]model.House, error) {
	var houses []model.House
	if err := c.do(ctx, http.MethodGet, "/houses", nil, &houses); err != nil {
		return nil, err
	}
	return houses, nil
}

type HouseInput struct {
	Name         string            `json:"name"`
	Abbreviation string            `json:"abbreviation"`
	Capacity     int               `json:"capacity"`
	WorkPeriod   *model.WorkPeriod `json:"workPeriod,omitempty"`
}

func (in HouseInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if in.Capacity < 1 {
		return &ValidationError{Field: "capacity", Message: "must be a positive number"}
	}
	return nil
}

func (c *Client) CreateHouse(ctx context.Context, in HouseInput) (model.House, error) {
	if err := in.validate(); err != nil {
		return model.House{}, err
	}
	var house model.House
	if err := c.do(ctx, http.MethodPost, "/houses", in, &house); err != nil {
		return model.House{}, err
	}
	return house, nil
}

func (c *Client) UpdateHouse(ctx context.Context, id int64, in HouseInput) (model.House, error) {
	if err := in.validate(); err != nil {
		return model.House{}, err
	}
	var house model.House
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/houses/%d", id), in, &house); err != nil {
		return model.House{}, err
	}
	return house, nil
}

func (c *Client) DeleteHouse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/houses/%d", id), nil, nil)
}

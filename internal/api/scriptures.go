package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/dukerupert/overhill/internal/model"
)

func (c *Client) ListScriptures(ctx context.Context) ([]model.Scripture, error) {
	var scriptures []model.Scripture
	if err := c.do(ctx, http.MethodGet, "/scriptures", nil, &scriptures); err != nil {
		return nil, err
	}
	return scriptures, nil
}

type ScriptureInput struct {
	Book    string `json:"book"`
	Version string `json:"version"`
	Verse   string `json:"verse"`
	Body    string `json:"body"`
}

func (c *Client) CreateScripture(ctx context.Context, in ScriptureInput) (model.Scripture, error) {
	if strings.TrimSpace(in.Book) == "" {
		return model.Scripture{}, &ValidationError{Field: "book", Message: "required"}
	}
	if strings.TrimSpace(in.Body) == "" {
		return model.Scripture{}, &ValidationError{Field: "body", Message: "required"}
	}
	var scripture model.Scripture
	if err := c.do(ctx, http.MethodPost, "/scriptures", in, &scripture); err != nil {
		return model.Scripture{}, err
	}
	return scripture, nil
}

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/dukerupert/overhill/internal/model"
)

func (c *Client) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	var feedback []model.Feedback
	if err := c.do(ctx, http.MethodGet, "/feedback", nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

type FeedbackInput struct {
	Message string             `json:"message"`
	Type    model.FeedbackType `json:"type"`
	TaskID  *int64             `json:"taskId,omitempty"`
}

func (c *Client) CreateFeedback(ctx context.Context, in FeedbackInput) (model.Feedback, error) {
	if strings.TrimSpace(in.Message) == "" {
		return model.Feedback{}, &ValidationError{Field: "message", Message: "required"}
	}
	if model.ParseFeedbackType(string(in.Type)) == model.FeedbackUnknown {
		return model.Feedback{}, &ValidationError{Field: "type", Message: "unknown feedback type"}
	}
	var fb model.Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback", in, &fb); err != nil {
		return model.Feedback{}, err
	}
	return fb, nil
}

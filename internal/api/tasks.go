package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/overhill/internal/model"
)

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TaskInput carries the fields for creating or replacing a task.
type TaskInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    model.TaskCategory `json:"category"`
	AssigneeID  *int64             `json:"assigneeId,omitempty"`
	ChoreID     *int64             `json:"choreId,omitempty"`
	Instruction string             `json:"instruction,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty"`
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if model.ParseTaskCategory(string(in.Category)) == model.CategoryUnknown {
		return &ValidationError{Field: "category", Message: "unknown category"}
	}
	return nil
}

func (c *Client) CreateTask(ctx context.Context, in TaskInput) (model.Task, error) {
	if err := in.validate(); err != nil {
		return model.Task{}, err
	}
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, in TaskInput) (model.Task, error) {
	if err := in.validate(); err != nil {
		return model.Task{}, err
	}
	var task model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), in, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// SetTaskProgress moves a task's completion state, e.g. when a resident
// marks their assignment done.
func (c *Client) SetTaskProgress(ctx context.Context, id int64, progress model.Progress) (model.Task, error) {
	if model.ParseProgress(string(progress)) == model.ProgressUnknown {
		return model.Task{}, &ValidationError{Field: "progress", Message: "unknown progress value"}
	}
	body := map[string]model.Progress{"progress": progress}
	var task model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), body, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

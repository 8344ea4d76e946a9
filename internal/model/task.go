package model

import "time"

type TaskCategory string

const (
	CategoryPrimary     TaskCategory = "PRIMARY"
	CategoryMaintenance TaskCategory = "MAINTENANCE"
	CategorySpecial     TaskCategory = "SPECIAL"
	CategoryUnknown     TaskCategory = "UNKNOWN"
)

func ParseTaskCategory(s string) TaskCategory {
	switch TaskCategory(s) {
	case CategoryPrimary, CategoryMaintenance, CategorySpecial:
		return TaskCategory(s)
	default:
		return CategoryUnknown
	}
}

// TaskStatus is the review state a manager moves a task through.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskReviewing TaskStatus = "REVIEWING"
	TaskApproved  TaskStatus = "APPROVED"
	TaskUnknown   TaskStatus = "UNKNOWN"
)

func ParseTaskStatus(s string) TaskStatus {
	switch TaskStatus(s) {
	case TaskPending, TaskReviewing, TaskApproved:
		return TaskStatus(s)
	default:
		return TaskUnknown
	}
}

// Progress is the completion state used for dashboard aggregation.
type Progress string

const (
	ProgressPending   Progress = "PENDING"
	ProgressCompleted Progress = "COMPLETED"
	ProgressOverdue   Progress = "OVERDUE"
	ProgressUnknown   Progress = "UNKNOWN"
)

func ParseProgress(s string) Progress {
	switch Progress(s) {
	case ProgressPending, ProgressCompleted, ProgressOverdue:
		return Progress(s)
	default:
		return ProgressUnknown
	}
}

type Task struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Status      TaskStatus   `json:"status"`
	Progress    Progress     `json:"progress"`
	AssigneeID  *int64       `json:"assigneeId"`
	ChoreID     *int64       `json:"choreId"`
	Instruction string       `json:"instruction,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

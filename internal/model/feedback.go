package model

import "time"

type FeedbackType string

const (
	FeedbackComment    FeedbackType = "Comment"
	FeedbackSuggestion FeedbackType = "Suggestion"
	FeedbackUnknown    FeedbackType = "Unknown"
)

func ParseFeedbackType(s string) FeedbackType {
	switch FeedbackType(s) {
	case FeedbackComment, FeedbackSuggestion:
		return FeedbackType(s)
	default:
		return FeedbackUnknown
	}
}

type Feedback struct {
	ID        int64        `json:"id"`
	Message   string       `json:"message"`
	AuthorID  int64        `json:"authorId"`
	Type      FeedbackType `json:"type"`
	TaskID    *int64       `json:"taskId"`
	CreatedAt time.Time    `json:"createdAt"`
}

package progress

import (
	"math"

	"github.com/dukerupert/overhill/internal/model"
)

// Summary holds the per-dashboard progress counters for a task set.
type Summary struct {
	Pending         int `json:"pending"`
	Completed       int `json:"completed"`
	Overdue         int `json:"overdue"`
	Total           int `json:"total"`
	PercentComplete int `json:"percentComplete"`
}

// Aggregate folds tasks into progress counters. Only the three known
// progress values count toward the total; unrecognized or missing
// values are excluded from the denominator. Percent is 0 when the total
// is 0.
func Aggregate(tasks []model.Task) Summary {
	var s Summary
	for _, t := range tasks {
		switch model.ParseProgress(string(t.Progress)) {
		case model.ProgressPending:
			s.Pending++
		case model.ProgressCompleted:
			s.Completed++
		case model.ProgressOverdue:
			s.Overdue++
		default:
			continue
		}
		s.Total++
	}
	if s.Total > 0 {
		s.PercentComplete = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// ByHouse aggregates every house's tasks for the dashboard.
func ByHouse(st interface {
	TasksByHouse(houseID int64) []model.Task
}, houseIDs []int64) map[int64]Summary {
	out := make(map[int64]Summary, len(houseIDs))
	for _, id := range houseIDs {
		out[id] = Aggregate(st.TasksByHouse(id))
	}
	return out
}

// ByAssignee aggregates every user's assigned tasks.
func ByAssignee(st interface {
	TasksByAssignee(userID int64) []model.Task
}, userIDs []int64) map[int64]Summary {
	out := make(map[int64]Summary, len(userIDs))
	for _, id := range userIDs {
		out[id] = Aggregate(st.TasksByAssignee(id))
	}
	return out
}

package model

import "time"

type ChoreStatus string

const (
	ChorePending   ChoreStatus = "PENDING"
	ChoreReviewing ChoreStatus = "REVIEWING"
	ChoreApproved  ChoreStatus = "APPROVED"
	ChoreRejected  ChoreStatus = "REJECTED"
	ChoreUnknown   ChoreStatus = "UNKNOWN"
)

func ParseChoreStatus(s string) ChoreStatus {
	switch ChoreStatus(s) {
	case ChorePending, ChoreReviewing, ChoreApproved, ChoreRejected:
		return ChoreStatus(s)
	default:
		return ChoreUnknown
	}
}

type Chore struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	HouseID     int64       `json:"houseId"`
	Status      ChoreStatus `json:"status"`
	IsPrimary   bool        `json:"isPrimary"`
	AssigneeID  *int64      `json:"assigneeId"`
	TaskIDs     []int64     `json:"taskIds"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

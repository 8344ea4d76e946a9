package model

import "time"

type House struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Abbreviation string      `json:"abbreviation"`
	Capacity     int         `json:"capacity"`
	OccupantIDs  []int64     `json:"occupantIds"`
	WorkPeriod   *WorkPeriod `json:"workPeriod"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// WorkPeriod is the active work window for a house's chore rotation.
type WorkPeriod struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CarryOver bool      `json:"carryOver"`
}

// OverCapacity reports whether the house holds more occupants than its
// capacity. Advisory only; nothing enforces it client-side.
func (h House) OverCapacity() bool {
	return h.Capacity >= 1 && len(h.OccupantIDs) > h.Capacity
}

package model

import "time"

type Scripture struct {
	ID        int64     `json:"id"`
	Book      string    `json:"book"`
	Version   string    `json:"version"`
	Verse     string    `json:"verse"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

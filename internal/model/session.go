package model

import "time"

// Session is the authenticated identity persisted across restarts. It is
// the only snapshot restored automatically at startup; every other
// resource starts empty and loads on first access.
type Session struct {
	User       User      `json:"user"`
	Token      string    `json:"token"`
	PushToken  string    `json:"pushToken,omitempty"`
	DeviceID   string    `json:"deviceId"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

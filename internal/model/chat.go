package model

import "time"

type Chat struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name,omitempty"`
	IsGroup        bool      `json:"isGroup"`
	HouseID        *int64    `json:"houseId"`
	ParticipantIDs []int64   `json:"participantIds"`
	Messages       []Message `json:"messages"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasParticipants reports whether the chat's participant set is exactly
// the given set: same cardinality, same membership, order ignored.
func (c Chat) HasParticipants(ids map[int64]struct{}) bool {
	if len(c.ParticipantIDs) != len(ids) {
		return false
	}
	for _, id := range c.ParticipantIDs {
		if _, ok := ids[id]; !ok {
			return false
		}
	}
	return true
}

type Message struct {
	ID        int64     `json:"id"`
	ClientID  string    `json:"clientId,omitempty"`
	ChatID    int64     `json:"chatId"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	SenderID  int64     `json:"senderId"`
	ReadBy    []int64   `json:"readBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReadByUser reports whether the given user has read the message.
func (m Message) ReadByUser(userID int64) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/overhill/internal/model"
)

func (c *Client) ListChats(ctx context.Context) ([]model.Chat, error) {
	var chats []model.Chat
	if err := c.do(ctx, http.MethodGet, "/chats", nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// ChatInput describes a conversation to create: the fully resolved
// participant set plus the house ids it was resolved from.
type ChatInput struct {
	Name           string  `json:"name,omitempty"`
	IsGroup        bool    `json:"isGroup"`
	HouseIDs       []int64 `json:"houseIds,omitempty"`
	ParticipantIDs []int64 `json:"participantIds"`
}

func (c *Client) CreateChat(ctx context.Context, in ChatInput) (model.Chat, error) {
	if len(in.ParticipantIDs) < 2 {
		return model.Chat{}, &ValidationError{Field: "participantIds", Message: "at least two participants required"}
	}
	var chat model.Chat
	if err := c.do(ctx, http.MethodPost, "/chats", in, &chat); err != nil {
		return model.Chat{}, err
	}
	return chat, nil
}

func (c *Client) ListMessages(ctx context.Context, chatID int64) ([]model.Message, error) {
	var messages []model.Message
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/chats/%d/messages", chatID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MessageInput carries an outbound message. ClientID is a caller-chosen
// unique id so a retried send is idempotent server-side.
type MessageInput struct {
	ChatID   int64  `json:"chatId"`
	ClientID string `json:"clientId"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, in MessageInput) (model.Message, error) {
	if in.ChatID <= 0 {
		return model.Message{}, &ValidationError{Field: "chatId", Message: "required"}
	}
	if strings.TrimSpace(in.Content) == "" && in.ImageURL == "" {
		return model.Message{}, &ValidationError{Field: "content", Message: "message is empty"}
	}
	var msg model.Message
	if err := c.do(ctx, http.MethodPost, "/chats/message", in, &msg); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}

// MarkMessagesRead records the current user as having read every message
// in the chat up to and including lastMessageID.
func (c *Client) MarkMessagesRead(ctx context.Context, chatID, lastMessageID int64) error {
	body := map[string]int64{"lastMessageId": lastMessageID}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/chats/%d/messages", chatID), body, nil)
}

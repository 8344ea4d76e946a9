package chat

import (
	"testing"

	"github.com/dukerupert/overhill/internal/model"
	"github.com/dukerupert/overhill/internal/store"
)

func TestDisplayName(t *testing.T) {
	st := store.New()
	st.Users.Succeed([]model.User{
		{ID: 1, Name: "Frodo"}, {ID: 2, Name: "Sam"},
	})
	st.Houses.Succeed([]model.House{
		{ID: 5, Name: "Bag End"},
	})

	tests := []struct {
		name string
		chat model.Chat
		want string
	}{
		{
			"explicit name wins",
			model.Chat{Name: "Planning", IsGroup: true, HouseID: int64p(5), ParticipantIDs: []int64{1, 2}},
			"Planning",
		},
		{
			"two-party shows the other participant",
			model.Chat{ParticipantIDs: []int64{1, 2}},
			"Sam",
		},
		{
			"house-linked group shows the house",
			model.Chat{IsGroup: true, HouseID: int64p(5), ParticipantIDs: []int64{1, 2, 3}},
			"Bag End",
		},
		{
			"fallback label",
			model.Chat{IsGroup: true, ParticipantIDs: []int64{1, 2, 3}},
			"Group Chat",
		},
		{
			"unknown other participant falls through",
			model.Chat{ParticipantIDs: []int64{1, 9}},
			"Group Chat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(st, tt.chat, 1); got != tt.want {
				t.Errorf("DisplayName = %q, want %q", got, tt.want)
			}
		})
	}
}

package chat

import (
	"github.com/dukerupert/overhill/internal/model"
	"github.com/dukerupert/overhill/internal/store"
)

// DisplayName derives a chat's label for the given viewer. Precedence:
// the chat's explicit name, then the other participant's name for a
// two-party chat, then the house name for a house-linked group, then a
// generic label. Derivation only; never persisted.
func DisplayName(st *store.Store, chat model.Chat, viewerID int64) string {
	if chat.Name != "" {
		return chat.Name
	}

	if !chat.IsGroup && len(chat.ParticipantIDs) == 2 {
		for _, id := range chat.ParticipantIDs {
			if id == viewerID {
				continue
			}
			if u, ok := st.UserByID(id); ok {
				return u.Name
			}
		}
	}

	if chat.HouseID != nil {
		if h, ok := st.HouseByID(*chat.HouseID); ok {
			return h.Name
		}
	}

	return "Group Chat"
}

package store

import "github.com/dukerupert/overhill/internal/model"

// Relationship accessors. Entities hold ids; these resolve them against
// the current slice values and report whether the target exists.

func (s *Store) UserByID(id int64) (model.User, bool) {
	for _, u := range s.Users.Get() {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) HouseByID(id int64) (model.House, bool) {
	for _, h := range s.Houses.Get() {
		if h.ID == id {
			return h, true
		}
	}
	return model.House{}, false
}

func (s *Store) TaskByID(id int64) (model.Task, bool) {
	for _, t := range s.Tasks.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *Store) ChoreByID(id int64) (model.Chore, bool) {
	for _, c := range s.Chores.Get() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Chore{}, false
}

func (s *Store) ChatByID(id int64) (model.Chat, bool) {
	for _, c := range s.Chats.Get() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Chat{}, false
}

// TasksByHouse returns the tasks whose chore belongs to the given house.
func (s *Store) TasksByHouse(houseID int64) []model.Task {
	choreHouse := make(map[int64]int64)
	for _, c := range s.Chores.Get() {
		choreHouse[c.ID] = c.HouseID
	}

	var tasks []model.Task
	for _, t := range s.Tasks.Get() {
		if t.ChoreID == nil {
			continue
		}
		if choreHouse[*t.ChoreID] == houseID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// TasksByAssignee returns the tasks assigned to the given user.
func (s *Store) TasksByAssignee(userID int64) []model.Task {
	var tasks []model.Task
	for _, t := range s.Tasks.Get() {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// OccupantsOf resolves a house's occupant ids to users. Occupants not
// present in the users slice are skipped.
func (s *Store) OccupantsOf(houseID int64) []model.User {
	house, ok := s.HouseByID(houseID)
	if !ok {
		return nil
	}
	var users []model.User
	for _, id := range house.OccupantIDs {
		if u, ok := s.UserByID(id); ok {
			users = append(users, u)
		}
	}
	return users
}

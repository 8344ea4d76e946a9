package model

import "time"

// Role is the access role assigned to a user by the backend. Unrecognized
// values parse to RoleUnknown rather than falling through as raw strings.
type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleDirector        Role = "DIRECTOR"
	RoleResidentManager Role = "RESIDENT_MANAGER"
	RoleFacilityManager Role = "FACILITY_MANAGER"
	RoleResident        Role = "RESIDENT"
	RoleIndividual      Role = "INDIVIDUAL"
	RoleManager         Role = "MANAGER"
	RoleUnknown         Role = "UNKNOWN"
)

// ParseRole maps a server-provided role string to a known Role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleSuperAdmin, RoleDirector, RoleResidentManager,
		RoleFacilityManager, RoleResident, RoleIndividual, RoleManager:
		return Role(s)
	default:
		return RoleUnknown
	}
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	Role      Role      `json:"role"`
	HouseID   *int64    `json:"houseId"`
	ChoreID   *int64    `json:"choreId"`
	PushToken string    `json:"pushToken,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsManager reports whether the user holds any managerial role.
func (u User) IsManager() bool {
	switch u.Role {
	case RoleSuperAdmin, RoleDirector, RoleResidentManager, RoleFacilityManager, RoleManager:
		return true
	default:
		return false
	}
}

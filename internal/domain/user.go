package domain

import "time"

// User is the persisted identity record for every portal account: admins,
// airport managers, ground staff, and passengers.
type User struct {
	ID             string
	Email          string
	FullName       string
	Role           Role
	PasswordHash   string
	Organization   *string
	AirportCode    *string
	WorkAssignment *string
	CreatedBy      *string
	CreatedAt      time.Time
}

// Identity is the detached, request-scoped snapshot of a User. It is
// populated once per request by the session gate and never re-fetched, so it
// stays valid after the store connection is released.
type Identity struct {
	ID             string
	Email          string
	FullName       string
	Role           Role
	Organization   string
	AirportCode    string
	WorkAssignment string
	CreatedBy      string
	CreatedAt      time.Time
}

// Snapshot materializes the immutable Identity view of a user record.
func (u *User) Snapshot() Identity {
	return Identity{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		Organization:   deref(u.Organization),
		AirportCode:    deref(u.AirportCode),
		WorkAssignment: deref(u.WorkAssignment),
		CreatedBy:      deref(u.CreatedBy),
		CreatedAt:      u.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

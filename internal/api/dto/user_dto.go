package dto

import (
	"time"

	"github.com/spec-kit/airport-dashboard/internal/domain"
)

// ManageUsersForm carries the user management page's POST body. Action is
// either "create" or "delete".
type ManageUsersForm struct {
	Action         string `json:"action" form:"action"`
	Email          string `json:"email" form:"email"`
	FullName       string `json:"full_name" form:"full_name"`
	Role           string `json:"role" form:"role"`
	Password       string `json:"password" form:"password"`
	AirportCode    string `json:"airport_code" form:"airport_code"`
	WorkAssignment string `json:"work_assignment" form:"work_assignment"`
	UserID         string `json:"user_id" form:"user_id"`
}

// NewUserResponse serializes a user record.
func NewUserResponse(u domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.Organization != nil {
		resp.Organization = *u.Organization
	}
	if u.AirportCode != nil {
		resp.AirportCode = *u.AirportCode
	}
	if u.WorkAssignment != nil {
		resp.WorkAssignment = *u.WorkAssignment
	}
	return resp
}

// NewUserResponses serializes a list of user records.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

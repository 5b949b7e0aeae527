package dto

// SignupRequest payload for passenger signup. Accepts form or JSON bodies.
type SignupRequest struct {
	FullName     string `json:"full_name" form:"full_name"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	Organization string `json:"organization" form:"organization"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

// UserResponse is the serialized view of a user record.
type UserResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	Organization   string `json:"organization,omitempty"`
	AirportCode    string `json:"airport_code,omitempty"`
	WorkAssignment string `json:"work_assignment,omitempty"`
	CreatedAt      string `json:"created_at"`
}

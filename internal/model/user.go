package model

import "time"

// User represents a registered person using the inventory app
type User struct {
	ID           string    `json:"id"`
	Seq          uint64    `json:"seq"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// UserResponse is used for API responses
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		RegisteredAt: u.RegisteredAt,
	}
}

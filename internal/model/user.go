package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRolePatient UserRole = "patient"
)

// User carries the mock credentials accepted by the login endpoint.
type User struct {
	Base
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	PatientID    uuid.UUID `json:"patient_id,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

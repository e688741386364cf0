package models

import (
	"time"
)

// UserType classifies what kind of Web3 actor an account represents
type UserType string

const (
	UserTypeStartup         UserType = "STARTUP"
	UserTypeInvestor        UserType = "INVESTOR"
	UserTypeEcosystemPlayer UserType = "ECOSYSTEM_PLAYER"
	UserTypeIndividual      UserType = "INDIVIDUAL"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email           string     `json:"email" db:"email" example:"founder@synqit.com"`            // User's email address
	Password        string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName       string     `json:"firstName" db:"first_name" example:"Ada"`                  // User's first name
	LastName        string     `json:"lastName" db:"last_name" example:"Woz"`                    // User's last name
	UserType        UserType   `json:"userType" db:"user_type" example:"STARTUP"`                // User's account type
	Bio             *string    `json:"bio,omitempty" db:"bio"`                                   // Short profile text (nullable)
	IsEmailVerified bool       `json:"isEmailVerified" db:"is_email_verified" example:"true"`    // Whether the email address has been verified
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// PublicProfile strips a user down to the fields other users may see.
func (u *User) PublicProfile() *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  u.UserType,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

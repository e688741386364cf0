package dto

import "github.com/synqit/synqit/internal/app/models"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"founder@synqit.com"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FirstName string `json:"firstName" binding:"required" example:"Ada"`
	LastName  string `json:"lastName" binding:"required" example:"Woz"`
	UserType  string `json:"userType" binding:"required,oneof=STARTUP INVESTOR ECOSYSTEM_PLAYER INDIVIDUAL" example:"STARTUP"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	UserType  *string `json:"userType,omitempty" binding:"omitempty,oneof=STARTUP INVESTOR ECOSYSTEM_PLAYER INDIVIDUAL"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	User  *models.User  `json:"user"`
	Token TokenResponse `json:"token"`
}

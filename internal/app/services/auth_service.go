package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/synqit/synqit/internal/app/models"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/app/repositories"
	"github.com/synqit/synqit/internal/pkg/apperrors"
	"github.com/synqit/synqit/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   repositories.UserStore
	tokenRepo  repositories.TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserStore,
	tokenRepo repositories.TokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user account and issues a token pair
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	s.logger.Debug().Str("email", req.Email).Msg("Registering new user")

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to check email existence")
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  models.UserType(req.UserType),
		IsActive:  true,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	s.logger.Debug().Str("email", req.Email).Msg("User login attempt")

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a wrong password so login does not leak
			// which emails are registered.
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to look up user")
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}
	user.LastLoginAt = &now

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *authServiceImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	userID, expiresAt, revoked, err := s.tokenRepo.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	if revoked {
		return nil, apperrors.ErrTokenInvalid
	}
	if time.Now().After(expiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, req.RefreshToken); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke refresh token")
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// GetProfile retrieves the caller's own profile
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile updates the caller's mutable profile fields
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.UserType != nil {
		user.UserType = models.UserType(*req.UserType)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update profile")
		return nil, err
	}

	return user, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenRepo.Create(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to store refresh token")
		return nil, err
	}

	return &dto.AuthResponse{
		User: user,
		Token: dto.TokenResponse{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			ExpiresIn:        expiresIn,
			RefreshExpiresIn: refreshExpiresIn,
		},
	}, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/pkg/apperrors"
	"github.com/synqit/synqit/internal/pkg/auth"
)

type AuthServiceTestSuite struct {
	suite.Suite
	users   *fakeUserStore
	tokens  *fakeTokenStore
	service AuthService
	ctx     context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.users = newFakeUserStore()
	s.tokens = newFakeTokenStore()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "synqit.test",
	})
	s.service = NewAuthService(s.users, s.tokens, jwtService, zerolog.Nop())
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) register(email string) *dto.AuthResponse {
	response, err := s.service.Register(s.ctx, &dto.RegisterRequest{
		Email:     email,
		Password:  "s3cret-pass",
		FirstName: "Ada",
		LastName:  "Woz",
		UserType:  "STARTUP",
	})
	s.Require().NoError(err)
	return response
}

func (s *AuthServiceTestSuite) TestRegisterAndLogin() {
	registered := s.register("founder@synqit.com")
	s.NotEmpty(registered.Token.AccessToken)
	s.NotEmpty(registered.Token.RefreshToken)
	s.NotZero(registered.User.ID)

	response, err := s.service.Login(s.ctx, &dto.LoginRequest{
		Email:    "founder@synqit.com",
		Password: "s3cret-pass",
	})
	s.Require().NoError(err)
	s.Equal(registered.User.ID, response.User.ID)
	s.NotNil(response.User.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	s.register("founder@synqit.com")

	_, err := s.service.Register(s.ctx, &dto.RegisterRequest{
		Email:     "founder@synqit.com",
		Password:  "another-pass1",
		FirstName: "Other",
		LastName:  "Person",
		UserType:  "INVESTOR",
	})
	s.ErrorIs(err, apperrors.ErrEmailAlreadyExists)
}

func (s *AuthServiceTestSuite) TestLoginBadCredentials() {
	s.register("founder@synqit.com")

	_, err := s.service.Login(s.ctx, &dto.LoginRequest{Email: "founder@synqit.com", Password: "wrong"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password
	_, err = s.service.Login(s.ctx, &dto.LoginRequest{Email: "nobody@synqit.com", Password: "whatever"})
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestRefreshRotatesToken() {
	registered := s.register("founder@synqit.com")

	refreshed, err := s.service.RefreshToken(s.ctx, &dto.RefreshTokenRequest{
		RefreshToken: registered.Token.RefreshToken,
	})
	s.Require().NoError(err)
	s.NotEqual(registered.Token.RefreshToken, refreshed.Token.RefreshToken)

	// The old token is revoked and cannot be replayed
	_, err = s.service.RefreshToken(s.ctx, &dto.RefreshTokenRequest{
		RefreshToken: registered.Token.RefreshToken,
	})
	s.ErrorIs(err, apperrors.ErrTokenInvalid)
}

func (s *AuthServiceTestSuite) TestRefreshUnknownToken() {
	_, err := s.service.RefreshToken(s.ctx, &dto.RefreshTokenRequest{RefreshToken: "never-issued"})
	s.ErrorIs(err, apperrors.ErrTokenNotFound)
}

func (s *AuthServiceTestSuite) TestUpdateProfile() {
	registered := s.register("founder@synqit.com")

	bio := "Building bridges"
	userType := "ECOSYSTEM_PLAYER"
	updated, err := s.service.UpdateProfile(s.ctx, registered.User.ID, &dto.UpdateProfileRequest{
		Bio:      &bio,
		UserType: &userType,
	})
	s.Require().NoError(err)
	s.Require().NotNil(updated.Bio)
	s.Equal("Building bridges", *updated.Bio)
	s.Equal("Ada", updated.FirstName)

	profile, err := s.service.GetProfile(s.ctx, registered.User.ID)
	s.Require().NoError(err)
	s.Require().NotNil(profile.Bio)
	s.Equal("Building bridges", *profile.Bio)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

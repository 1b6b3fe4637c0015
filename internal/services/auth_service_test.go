package services

import (
	"testing"
	"time"

	"github.com/sistersync/sistersync-backend/internal/config"
	"github.com/sistersync/sistersync-backend/internal/dto"
	"github.com/sistersync/sistersync-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.SharedAchievement{}))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 30 * 24 * time.Hour,
	}
	return NewAuthService(db, cfg)
}

func registerReq(name, email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{Name: name, Email: email, Password: "password123"}
}

func TestRegisterAndLogin(t *testing.T) {
	s := setupAuthService(t)

	resp, err := s.Register(registerReq("Priya", "priya@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Priya", resp.User.Name)

	login, err := s.Login(&dto.LoginRequest{Email: "priya@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterCapsAtTwoAccounts(t *testing.T) {
	s := setupAuthService(t)

	_, err := s.Register(registerReq("Priya", "priya@example.com"))
	require.NoError(t, err)
	_, err = s.Register(registerReq("Anu", "anu@example.com"))
	require.NoError(t, err)

	_, err = s.Register(registerReq("Third", "third@example.com"))
	assert.ErrorIs(t, err, ErrHouseholdFull)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := setupAuthService(t)

	_, err := s.Register(registerReq("Priya", "priya@example.com"))
	require.NoError(t, err)

	_, err = s.Register(registerReq("Other", "priya@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Register(registerReq("Priya", "other@example.com"))
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	s := setupAuthService(t)

	_, err := s.Register(registerReq("Priya", "priya@example.com"))
	require.NoError(t, err)

	_, err = s.Login(&dto.LoginRequest{Email: "priya@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	s := setupAuthService(t)

	resp, err := s.Register(registerReq("Priya", "priya@example.com"))
	require.NoError(t, err)

	refreshed, err := s.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked on use.
	_, err = s.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := setupAuthService(t)

	resp, err := s.Register(registerReq("Priya", "priya@example.com"))
	require.NoError(t, err)

	require.NoError(t, s.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = s.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	s := setupAuthService(t)

	resp, err := s.Register(registerReq("Priya", "priya@example.com"))
	require.NoError(t, err)

	err = s.DeleteAccount(resp.User.ID, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, s.DeleteAccount(resp.User.ID, "password123"))

	_, err = s.Login(&dto.LoginRequest{Email: "priya@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

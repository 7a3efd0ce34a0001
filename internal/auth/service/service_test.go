package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	"github.com/smallbiznis/waterline/internal/auth/repository"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (authdomain.Service, *clock.FakeClock, *gorm.DB) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC))
	return New(zap.NewNop(), repo, sessionRepo, node, clk), clk, dbConn
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if user == nil {
		t.Fatal("expected user")
	}

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUserIsInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestCreateUserStoresOnlyHash(t *testing.T) {
	svc, _, dbConn := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "  Bob@Example.com ",
		Password: "strong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "bob", user.DisplayName)

	var stored authdomain.User
	require.NoError(t, dbConn.First(&stored, "id = ?", user.ID).Error)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "strong-password", *stored.PasswordHash)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "not-an-email", Password: "long-enough"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidEmail)

	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "short@example.com", Password: "short"})
	assert.ErrorIs(t, err, authdomain.ErrWeakPassword)

	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "dup@example.com", Password: "long-enough"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "DUP@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestSessionLifecycle(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "carol@example.com", Password: "carol-password"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, authdomain.LoginRequest{Email: "carol@example.com", Password: "carol-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RawToken)
	assert.Equal(t, clk.Now().Add(sessionTTL), result.ExpiresAt)

	session, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, session.UserID)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionRevoked)

	assert.ErrorIs(t, svc.Logout(ctx, result.RawToken), authdomain.ErrSessionRevoked)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "dave@example.com", Password: "dave-password"})
	require.NoError(t, err)
	result, err := svc.Login(ctx, authdomain.LoginRequest{Email: "dave@example.com", Password: "dave-password"})
	require.NoError(t, err)

	clk.Advance(sessionTTL + time.Minute)

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionExpired)
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "unknown")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)

	_, err = svc.Authenticate(context.Background(), "  ")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)
}

func TestAuthenticateThrottlesLastSeenWrites(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "erin@example.com", Password: "erin-password"})
	require.NoError(t, err)
	result, err := svc.Login(ctx, authdomain.LoginRequest{Email: "erin@example.com", Password: "erin-password"})
	require.NoError(t, err)
	loggedInAt := clk.Now()

	clk.Advance(10 * time.Second)
	session, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.True(t, session.LastSeenAt.Equal(loggedInAt))

	clk.Advance(2 * time.Minute)
	session, err = svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.True(t, session.LastSeenAt.Equal(clk.Now()))
}

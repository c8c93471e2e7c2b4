package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tmarin7/messagely/internal/service"
	"github.com/tmarin7/messagely/internal/token"
)

func newAuthService(userRepo *fakeUserRepo) *service.AuthService {
	return service.NewAuthService(userRepo, token.NewIssuer("test-secret"), bcrypt.MinCost)
}

func registerAlice(t *testing.T, authService *service.AuthService) *service.AuthResponse {
	t.Helper()
	resp, err := authService.Register(context.Background(), service.RegisterInput{
		Username:  "alice",
		Password:  "Password1",
		FirstName: "A",
		LastName:  "L",
		Phone:     "555",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register(t *testing.T) {
	userRepo := newFakeUserRepo()
	authService := newAuthService(userRepo)

	resp := registerAlice(t, authService)

	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "A", resp.User.FirstName)
	assert.Equal(t, "L", resp.User.LastName)
	assert.Equal(t, "555", resp.User.Phone)
	assert.False(t, resp.User.JoinAt.IsZero())
	assert.Nil(t, resp.User.LastLoginAt)
	assert.NotEmpty(t, resp.AccessToken)

	// Stored hash verifies against the raw password.
	stored := userRepo.users["alice"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Password1")))
}

func TestAuthService_Register_HashNeverSerialized(t *testing.T) {
	authService := newAuthService(newFakeUserRepo())

	resp := registerAlice(t, authService)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), resp.User.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	userRepo := newFakeUserRepo()
	authService := newAuthService(userRepo)

	registerAlice(t, authService)

	_, err := authService.Register(context.Background(), service.RegisterInput{
		Username:  "alice",
		Password:  "Different1",
		FirstName: "Other",
		LastName:  "Person",
		Phone:     "556",
	})
	require.ErrorIs(t, err, service.ErrUsernameTaken)

	// First registration is unaffected.
	assert.Equal(t, "A", userRepo.users["alice"].FirstName)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(userRepo.users["alice"].PasswordHash), []byte("Password1")))
}

func TestAuthService_Authenticate(t *testing.T) {
	authService := newAuthService(newFakeUserRepo())
	registerAlice(t, authService)
	ctx := context.Background()

	assert.NoError(t, authService.Authenticate(ctx, "alice", "Password1"))

	// Wrong password and unknown user produce the same outcome.
	assert.ErrorIs(t, authService.Authenticate(ctx, "alice", "wrong"), service.ErrInvalidCreds)
	assert.ErrorIs(t, authService.Authenticate(ctx, "nobody", "Password1"), service.ErrInvalidCreds)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := newFakeUserRepo()
	authService := newAuthService(userRepo)
	registerAlice(t, authService)

	resp, err := authService.Login(context.Background(), service.LoginInput{
		Username: "alice",
		Password: "Password1",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotNil(t, resp.User.LastLoginAt, "login should record last_login_at")
	assert.NotEmpty(t, resp.AccessToken)

	// Issued token carries the username.
	claims, err := token.NewIssuer("test-secret").Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	authService := newAuthService(newFakeUserRepo())
	registerAlice(t, authService)

	_, err := authService.Login(context.Background(), service.LoginInput{
		Username: "alice",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCreds)

	_, err = authService.Login(context.Background(), service.LoginInput{
		Username: "nobody",
		Password: "anything",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCreds)
}

func TestAuthService_UpdateLoginTimestamp_UnknownUser(t *testing.T) {
	authService := newAuthService(newFakeUserRepo())

	_, err := authService.UpdateLoginTimestamp(context.Background(), "nobody")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

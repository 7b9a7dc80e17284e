package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_service/internal/models"
	"github.com/Skotchmaster/book_service/internal/repo"
	"github.com/Skotchmaster/book_service/internal/tokens"
	"github.com/Skotchmaster/book_service/internal/transport"
)

type memBlocklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemBlocklist() *memBlocklist {
	return &memBlocklist{revoked: make(map[string]bool)}
}

func (m *memBlocklist) Add(_ context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *memBlocklist) Contains(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Review{},
		&models.Tag{},
	))
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:      repo.GormRepo{DB: newTestDB(t)},
		Codec:     tokens.NewCodec([]byte("service-test-secret"), "HS256"),
		Blocklist: newMemBlocklist(),
	}
}

func validSignup() transport.SignupRequest {
	return transport.SignupRequest{
		Username:  "reader",
		Email:     "reader@example.com",
		FirstName: "Rita",
		LastName:  "Reader",
		Password:  "long-enough-password",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validSignup())
	require.NoError(t, err)

	assert.Equal(t, "reader@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	assert.NotZero(t, user.UID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validSignup())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validSignup())
	require.Error(t, err)
	assert.True(t, IsAlreadyExists(err))
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*transport.SignupRequest)
	}{
		{name: "empty username", mutate: func(r *transport.SignupRequest) { r.Username = "" }},
		{name: "username too long", mutate: func(r *transport.SignupRequest) { r.Username = "seventeen-letters" }},
		{name: "empty email", mutate: func(r *transport.SignupRequest) { r.Email = "" }},
		{name: "email too long", mutate: func(r *transport.SignupRequest) { r.Email = "a-rather-long-address@example-mail.com" }},
		{name: "short password", mutate: func(r *transport.SignupRequest) { r.Password = "short" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validSignup()
			tt.mutate(&req)

			_, err := svc.Register(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validSignup())
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "reader@example.com", "long-enough-password")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, tokens.TokenType, pair.TokenType)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validSignup())
	require.NoError(t, err)

	// unknown email and wrong password must be indistinguishable
	_, err = svc.Login(ctx, "reader@example.com", "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "long-enough-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Revoke(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Revoke(ctx, "some-jti"))
	require.NoError(t, svc.Revoke(ctx, "some-jti"))

	revoked, err := svc.Blocklist.Contains(ctx, "some-jti")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_CurrentUser_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)

	_, err := svc.CurrentUser(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

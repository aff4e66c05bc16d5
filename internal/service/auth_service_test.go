package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/scolaria/scolaria-backend/internal/config"
	"github.com/scolaria/scolaria-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct {
	users  map[int]model.User
	nextID int
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[int]model.User), nextID: 1}
}

func (m *mockUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserStore) Create(_ context.Context, u *model.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = *u
	return nil
}

func newTestAuthService() (*AuthService, *mockUserStore) {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // bcrypt.MinCost, keeps the tests fast
	}
	store := newMockUserStore()
	return NewAuthService(cfg, store), store
}

func TestAuthServicePasswordRoundtrip(t *testing.T) {
	svc, _ := newTestAuthService()

	hash, err := svc.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, svc.CheckPassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Register(ctx, model.RegisterRequest{
		Username: "admin",
		Email:    "admin@school.example",
		Password: "s3cret-pass",
		Role:     string(model.RoleAdmin),
	})
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "admin", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, model.RoleAdmin, user.Role)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc, _ := newTestAuthService()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, _ := newTestAuthService()
		other.cfg.JWTSecret = "different-secret"

		token, err := other.generateToken(&model.User{ID: 1, Role: model.RoleAdmin})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}

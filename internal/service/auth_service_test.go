package service_test

import (
	"context"
	"testing"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/config"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// stubUserRepo keeps users in a map keyed by id.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, other := range r.users {
		if other.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active || includeInactive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = true
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret-for-signing",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func newAuthFixture(t *testing.T) (service.AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	return service.NewAuthService(repo, authTestConfig()), repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	repo.users[u.ID] = u
	return u
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct horse", "admin")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct horse", "staff")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	// Unknown user and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct horse", "manager")
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "alice", refreshed.User.Username)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Refresh(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := seedUser(t, repo, "alice", "correct horse", "staff")
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(ctx, user.ID))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "correct horse", "staff")

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "alice",
		Name:     "Another Alice",
		Password: "password123",
		Role:     "staff",
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestUpdateUserChangesPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := seedUser(t, repo, "alice", "old password", "staff")
	ctx := context.Background()

	newPassword := "new password"
	_, err := svc.UpdateUser(ctx, user.ID, dto.UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "old password"})
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "new password"})
	assert.NoError(t, err)
}

func TestDeactivateAndReactivateUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := seedUser(t, repo, "alice", "correct horse", "staff")
	ctx := context.Background()

	require.NoError(t, svc.DeactivateUser(ctx, user.ID))
	_, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "correct horse"})
	assert.ErrorIs(t, err, service.ErrValidation)

	require.NoError(t, svc.ReactivateUser(ctx, user.ID))
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "correct horse"})
	assert.NoError(t, err)
}

func TestListUsersFiltersInactive(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "alice", "pw", "staff")
	bob := seedUser(t, repo, "bob", "pw", "staff")
	require.NoError(t, repo.Deactivate(context.Background(), bob.ID))

	active, err := svc.ListUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListUsers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

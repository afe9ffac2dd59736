package service

import (
	"Viralize/internal/api/dto"
	"Viralize/internal/model"
	"Viralize/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byUsername map[string]*model.User
	created    *model.User
}

func (s *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	s.created = user
	return nil
}

func (s *fakeUserRepo) GetUserByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range s.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	return s.byUsername[username], nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &fakeUserRepo{byUsername: map[string]*model.User{}}
	svc := NewUserService(repo)

	err := svc.Register(context.Background(), &dto.RegisterDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, "alice", repo.created.Username)
	assert.NotEqual(t, "secret123", repo.created.Password)
	assert.NoError(t, security.CheckPasswordHash("secret123", repo.created.Password))
}

func TestRegisterUsernameTaken(t *testing.T) {
	repo := &fakeUserRepo{byUsername: map[string]*model.User{
		"alice": {ID: 1, Username: "alice"},
	}}
	svc := NewUserService(repo)

	err := svc.Register(context.Background(), &dto.RegisterDTO{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)
	repo := &fakeUserRepo{byUsername: map[string]*model.User{
		"alice": {ID: 42, Username: "alice", Password: hash},
	}}
	svc := NewUserService(repo)

	token, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	claims, err := security.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	hash, err := security.HashPassword("secret123")
	require.NoError(t, err)
	repo := &fakeUserRepo{byUsername: map[string]*model.User{
		"alice": {ID: 42, Username: "alice", Password: hash},
	}}
	svc := NewUserService(repo)

	// 密码错误和用户不存在返回同一个错误
	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

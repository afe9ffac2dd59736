package service

import (
	"Viralize/internal/api/dto"
	"Viralize/internal/model"
	"Viralize/internal/pkg/consts"
	"Viralize/internal/pkg/redis"
	"Viralize/internal/pkg/security"
	"Viralize/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUsernameTaken
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: regDTO.Username,
		Password: passwordHash,
	}
	return s.userRepo.CreateUser(ctx, user)
}

func (s *userServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credDTO.Username)
	if err != nil {
		return "", err
	}
	// 用户不存在和密码错误对外不做区分
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	return security.GenerateToken(user.ID)
}

// Logout 把令牌签名写入黑名单，保留时长与令牌有效期一致
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, security.JWTExpirationTime)
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	userDTO := &dto.UserDTO{}
	if err = copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	return userDTO, nil
}

package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=20"`
	Password string `json:"password" binding:"required" validate:"min=6,max=20"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO 登录成功签发的令牌
type TokenDTO struct {
	Token string `json:"token"`
}

// UserDTO 用户信息
type UserDTO struct {
	ID        uint64     `json:"id"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

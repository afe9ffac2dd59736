package handler

import (
	"Viralize/internal/api/dto"
	"Viralize/internal/pkg/response"
	"Viralize/internal/pkg/util"
	"Viralize/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	err := c.ShouldBind(&registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.TokenDTO{Token: token})
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	err := s.userSvc.Logout(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	user, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=64"`
	Name     string `json:"name" form:"name" binding:"max=32"`
}

func (s *HttpSrv) Register(c *gin.Context) {
	var req RegisterRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewAuthLogic(c, s.Core).Register(req.Email, req.Password, req.Name)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (s *HttpSrv) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewAuthLogic(c, s.Core).Login(req.Email, req.Password)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

func (s *HttpSrv) GetUser(c *gin.Context) {
	claims, _ := v1.InjectTokenClaim(c)

	user, err := v1.NewUserLogic(c, s.Core).GetUser(claims.Appid, claims.User)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, user)
}

type UpdateUserProfileRequest struct {
	UserName string `json:"user_name" form:"user_name" binding:"required,max=32"`
	Email    string `json:"email" form:"email" binding:"required,email"`
}

func (s *HttpSrv) UpdateUserProfile(c *gin.Context) {
	var (
		err error
		req UpdateUserProfileRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	err = v1.NewUserLogic(c, s.Core).UpdateUserProfile(req.UserName, req.Email)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

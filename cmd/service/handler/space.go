package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type CreateSpaceRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=64"`
	Description string `json:"description" form:"description" binding:"max=255"`
	InviteCode  string `json:"invite_code" form:"invite_code" binding:"omitempty,alphanum,max=12"`
}

func (s *HttpSrv) CreateSpace(c *gin.Context) {
	var req CreateSpaceRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	space, err := v1.NewSpaceLogic(c, s.Core).CreateSpace(req.Name, req.Description, req.InviteCode)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, space)
}

type JoinSpaceRequest struct {
	InviteCode string `json:"invite_code" form:"invite_code" binding:"required,max=12"`
}

func (s *HttpSrv) JoinSpace(c *gin.Context) {
	var req JoinSpaceRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	space, err := v1.NewSpaceLogic(c, s.Core).JoinSpaceByCode(req.InviteCode)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, space)
}

func (s *HttpSrv) ListUserSpaces(c *gin.Context) {
	list, err := v1.NewSpaceLogic(c, s.Core).ListUserSpaces()
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, list)
}

func (s *HttpSrv) LeaveSpace(c *gin.Context) {
	if err := v1.NewSpaceLogic(c, s.Core).LeaveSpace(c.Param("spaceid")); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

func (s *HttpSrv) DeleteSpace(c *gin.Context) {
	if err := v1.NewSpaceLogic(c, s.Core).DeleteSpace(c.Param("spaceid")); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type AddNoteRequest struct {
	Content string `json:"content" form:"content" binding:"required,max=2000"`
}

func (s *HttpSrv) AddNote(c *gin.Context) {
	var req AddNoteRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	note, err := v1.NewNoteLogic(c, s.Core).AddNote(c.Param("journalid"), req.Content)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, note)
}

func (s *HttpSrv) ListNotes(c *gin.Context) {
	list, err := v1.NewNoteLogic(c, s.Core).ListNotes(c.Param("journalid"))
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, list)
}

func (s *HttpSrv) StarNote(c *gin.Context) {
	result, err := v1.NewNoteLogic(c, s.Core).StarNote(c.Param("journalid"), c.Param("noteid"))
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, result)
}

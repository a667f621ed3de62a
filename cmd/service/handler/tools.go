package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

func (s *HttpSrv) DailyPrompt(c *gin.Context) {
	prompt := v1.NewToolsLogic(c, s.Core).DailyPrompt()
	response.APISuccess(c, gin.H{"prompt": prompt})
}

type SuggestTagsRequest struct {
	Content     string `json:"content" form:"content" binding:"required"`
	ContentType string `json:"content_type" form:"content_type" binding:"omitempty,oneof=text blocks"`
}

func (s *HttpSrv) SuggestTags(c *gin.Context) {
	var req SuggestTagsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	tags := v1.NewToolsLogic(c, s.Core).SuggestTags(req.Content, req.ContentType)
	response.APISuccess(c, gin.H{"tags": tags})
}

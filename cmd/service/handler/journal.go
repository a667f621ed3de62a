package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/ripplelabs/ripple-api/internal/logic/v1"
	"github.com/ripplelabs/ripple-api/internal/response"
	"github.com/ripplelabs/ripple-api/pkg/types"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

type CreateJournalRequest struct {
	Title       string   `json:"title" form:"title" binding:"required,max=120"`
	Content     string   `json:"content" form:"content" binding:"required"`
	ContentType string   `json:"content_type" form:"content_type" binding:"omitempty,oneof=text blocks"`
	Mood        string   `json:"mood" form:"mood" binding:"max=32"`
	Visibility  string   `json:"visibility" form:"visibility" binding:"omitempty,oneof=public private space"`
	SpaceID     string   `json:"space_id" form:"space_id"`
	Tags        []string `json:"tags" form:"tags"`
}

func (s *HttpSrv) CreateJournal(c *gin.Context) {
	var req CreateJournalRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	journal, err := v1.NewJournalLogic(c, s.Core).CreateJournal(v1.CreateJournalArgs{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: types.JournalContentType(req.ContentType),
		Mood:        req.Mood,
		Visibility:  types.Visibility(req.Visibility),
		SpaceID:     req.SpaceID,
		Tags:        req.Tags,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, journal)
}

func (s *HttpSrv) GetJournal(c *gin.Context) {
	journal, err := v1.NewJournalLogic(c, s.Core).GetJournal(c.Param("journalid"))
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, journal)
}

type UpdateJournalRequest struct {
	Title       string   `json:"title" form:"title" binding:"required,max=120"`
	Content     string   `json:"content" form:"content" binding:"required"`
	ContentType string   `json:"content_type" form:"content_type" binding:"omitempty,oneof=text blocks"`
	Mood        string   `json:"mood" form:"mood" binding:"max=32"`
	Visibility  string   `json:"visibility" form:"visibility" binding:"omitempty,oneof=public private space"`
	SpaceID     string   `json:"space_id" form:"space_id"`
	Tags        []string `json:"tags" form:"tags"`
}

func (s *HttpSrv) UpdateJournal(c *gin.Context) {
	var req UpdateJournalRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	journal, err := v1.NewJournalLogic(c, s.Core).UpdateJournal(c.Param("journalid"), v1.UpdateJournalArgs{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: types.JournalContentType(req.ContentType),
		Mood:        req.Mood,
		Visibility:  types.Visibility(req.Visibility),
		SpaceID:     req.SpaceID,
		Tags:        req.Tags,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, journal)
}

func (s *HttpSrv) DeleteJournal(c *gin.Context) {
	if err := v1.NewJournalLogic(c, s.Core).DeleteJournal(c.Param("journalid")); err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, nil)
}

type ListJournalRequest struct {
	Tag      string `json:"tag" form:"tag"`
	Page     uint64 `json:"page" form:"page"`
	PageSize uint64 `json:"pagesize" form:"pagesize" binding:"max=50"`
}

func (r *ListJournalRequest) paging() (uint64, uint64) {
	page, pageSize := r.Page, r.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	return page, pageSize
}

func (s *HttpSrv) ListDiscover(c *gin.Context) {
	var req ListJournalRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	page, pageSize := req.paging()
	feed, err := v1.NewJournalLogic(c, s.Core).ListDiscover(req.Tag, page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, feed)
}

func (s *HttpSrv) ListMyJournals(c *gin.Context) {
	var req ListJournalRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	page, pageSize := req.paging()
	feed, err := v1.NewJournalLogic(c, s.Core).ListMine(page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, feed)
}

func (s *HttpSrv) ListSpaceJournals(c *gin.Context) {
	var req ListJournalRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	page, pageSize := req.paging()
	feed, err := v1.NewJournalLogic(c, s.Core).ListSpaceFeed(c.Param("spaceid"), page, pageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, feed)
}

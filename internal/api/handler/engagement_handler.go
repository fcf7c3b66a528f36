package handler

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/api/middleware"
	"Touchline/internal/model"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"

	"github.com/gin-gonic/gin"
)

// EngagementHandler 点赞与评论
type EngagementHandler struct {
	engagementSvc service.EngagementService
}

func NewEngagementHandler(engagementSvc service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementSvc: engagementSvc}
}

func (s *EngagementHandler) Like(c *gin.Context) {
	ref, err := refParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	s.like(c, ref, true)
}

func (s *EngagementHandler) Unlike(c *gin.Context) {
	ref, err := refParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	s.like(c, ref, false)
}

// LikeByJSON App 端点赞，请求体 {"type": "Topic", "id": 1}
func (s *EngagementHandler) LikeByJSON(c *gin.Context) {
	if ref, ok := s.bindRef(c); ok {
		s.like(c, ref, true)
	}
}

func (s *EngagementHandler) UnlikeByJSON(c *gin.Context) {
	if ref, ok := s.bindRef(c); ok {
		s.like(c, ref, false)
	}
}

func (s *EngagementHandler) bindRef(c *gin.Context) (model.Ref, bool) {
	var req struct {
		Type string `json:"type" binding:"required"`
		ID   uint64 `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return model.Ref{}, false
	}
	kind, err := model.ParseKind(req.Type)
	if err != nil {
		response.Error(c, service.ErrUnknownKind)
		return model.Ref{}, false
	}
	return model.NewRef(kind, req.ID), true
}

func (s *EngagementHandler) like(c *gin.Context, ref model.Ref, liked bool) {
	var (
		state *dto.LikeDTO
		err   error
	)
	userID := middleware.CurrentUserID(c)
	if liked {
		state, err = s.engagementSvc.Like(c.Request.Context(), userID, ref)
	} else {
		state, err = s.engagementSvc.Unlike(c.Request.Context(), userID, ref)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// CreateComment 评论路由组对应的对象
func (s *EngagementHandler) CreateComment(c *gin.Context) {
	parent, err := refParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CommentCreateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.engagementSvc.AddComment(c.Request.Context(), middleware.CurrentUserID(c), parent, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *EngagementHandler) ListComments(c *gin.Context) {
	parent, err := refParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	comments, err := s.engagementSvc.ListComments(c.Request.Context(), middleware.CurrentUserID(c), parent, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *EngagementHandler) UpdateComment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CommentCreateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.engagementSvc.UpdateComment(c.Request.Context(), middleware.CurrentUser(c), id, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *EngagementHandler) UserComments(c *gin.Context) {
	userID, err := idParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	comments, err := s.engagementSvc.ListUserComments(c.Request.Context(), userID, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *EngagementHandler) LikedComments(c *gin.Context) {
	userID, err := idParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	comments, err := s.engagementSvc.LikedComments(c.Request.Context(), userID, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *EngagementHandler) AdminComments(c *gin.Context) {
	s.adminComments(c, false)
}

func (s *EngagementHandler) AdminTrashedComments(c *gin.Context) {
	s.adminComments(c, true)
}

func (s *EngagementHandler) adminComments(c *gin.Context, trashed bool) {
	comments, err := s.engagementSvc.AdminListComments(c.Request.Context(), scopeOf(trashed), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

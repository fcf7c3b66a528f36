package handler

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/api/middleware"
	"Touchline/internal/pkg/response"
	"Touchline/internal/repository"
	"Touchline/internal/service"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchSvc service.MatchService
}

func NewMatchHandler(matchSvc service.MatchService) *MatchHandler {
	return &MatchHandler{matchSvc: matchSvc}
}

func (s *MatchHandler) List(c *gin.Context) {
	matches, err := s.matchSvc.List(c.Request.Context(), middleware.CurrentUserID(c), repository.ScopeActive, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, matches)
}

func (s *MatchHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := s.matchSvc.Get(c.Request.Context(), middleware.CurrentUserID(c), id, uintQuery(c, "comment_id"), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// CreateSimplify 按 mongo_id 查找或创建
func (s *MatchHandler) CreateSimplify(c *gin.Context) {
	var req dto.MatchSimplifyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	match, err := s.matchSvc.CreateSimplify(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, match)
}

func (s *MatchHandler) CreateSimplifyWithLike(c *gin.Context) {
	var req dto.MatchSimplifyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	match, err := s.matchSvc.CreateSimplifyWithLike(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, match)
}

func (s *MatchHandler) Liked(c *gin.Context) {
	matches, err := s.matchSvc.Liked(c.Request.Context(), middleware.CurrentUserID(c), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, matches)
}

// LikedMongoIDs App 端用于标记赛程中已点赞的比赛
func (s *MatchHandler) LikedMongoIDs(c *gin.Context) {
	ids, err := s.matchSvc.LikedMongoIDs(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ids)
}

func (s *MatchHandler) AdminList(c *gin.Context) {
	s.adminList(c, false)
}

func (s *MatchHandler) AdminTrashed(c *gin.Context) {
	s.adminList(c, true)
}

func (s *MatchHandler) adminList(c *gin.Context, trashed bool) {
	matches, err := s.matchSvc.List(c.Request.Context(), 0, scopeOf(trashed), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, matches)
}

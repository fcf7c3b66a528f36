package handler

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/api/middleware"
	"Touchline/internal/model"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"

	"github.com/gin-gonic/gin"
)

// TopicHandler 三个板块共用，板块由路由组的 BindKind 决定
type TopicHandler struct {
	topicSvc   service.TopicService
	rankingSvc service.RankingService
	hotSize    int
}

func NewTopicHandler(topicSvc service.TopicService, rankingSvc service.RankingService, hotSize int) *TopicHandler {
	return &TopicHandler{topicSvc: topicSvc, rankingSvc: rankingSvc, hotSize: hotSize}
}

func (s *TopicHandler) List(c *gin.Context) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var q dto.TopicListQuery
	if err = c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	if slug := c.Param("slug"); slug != "" {
		q.Slug = slug
	}
	topics, err := s.topicSvc.List(c.Request.Context(), middleware.CurrentUserID(c), section, &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

// Search 板块内搜索
func (s *TopicHandler) Search(c *gin.Context) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	s.search(c, &section)
}

// SearchAll 全站搜索
func (s *TopicHandler) SearchAll(c *gin.Context) {
	s.search(c, nil)
}

func (s *TopicHandler) search(c *gin.Context, section *model.Section) {
	topics, err := s.topicSvc.Search(c.Request.Context(), middleware.CurrentUserID(c), section, c.Query("q"), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

// Get 详情；带 comment_id 时跳到该评论所在页
func (s *TopicHandler) Get(c *gin.Context) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := s.topicSvc.Get(c.Request.Context(), middleware.CurrentUser(c), section, id, uintQuery(c, "comment_id"), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (s *TopicHandler) Create(c *gin.Context) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.TopicCreateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	topic, err := s.topicSvc.Create(c.Request.Context(), middleware.CurrentUser(c), section, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topic)
}

func (s *TopicHandler) Update(c *gin.Context) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.TopicCreateDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	topic, err := s.topicSvc.Update(c.Request.Context(), middleware.CurrentUser(c), section, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topic)
}

// ListByUser 某个用户发布的话题，noflash=true 时排除含视频的话题
func (s *TopicHandler) ListByUser(c *gin.Context) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := idParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	noFlash := c.Query("noflash") == "true" || c.Query("noflash") == "1"
	topics, err := s.topicSvc.ListByUser(c.Request.Context(), middleware.CurrentUserID(c), section, userID, pageQuery(c), noFlash)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

func (s *TopicHandler) Liked(c *gin.Context) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := idParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	topics, err := s.topicSvc.Liked(c.Request.Context(), section, userID, pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

func (s *TopicHandler) AdminList(c *gin.Context) {
	s.adminList(c, false)
}

func (s *TopicHandler) AdminTrashed(c *gin.Context) {
	s.adminList(c, true)
}

func (s *TopicHandler) adminList(c *gin.Context, trashed bool) {
	section, err := sectionOf(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	topics, err := s.topicSvc.AdminList(c.Request.Context(), section, scopeOf(trashed), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}

// HotTopics 首页热门话题
func (s *TopicHandler) HotTopics(c *gin.Context) {
	feed, err := s.rankingSvc.HotFeed(c.Request.Context(), s.hotSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

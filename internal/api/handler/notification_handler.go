package handler

import (
	"Touchline/internal/api/middleware"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (s *NotificationHandler) List(c *gin.Context) {
	list, err := s.notificationSvc.List(c.Request.Context(), middleware.CurrentUserID(c), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := s.notificationSvc.UnreadCount(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, count)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) Delete(c *gin.Context) {
	if err := s.notificationSvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) Clear(c *gin.Context) {
	if err := s.notificationSvc.Clear(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

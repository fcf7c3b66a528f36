package handler

import (
	"Touchline/internal/api/middleware"
	"Touchline/internal/model"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

// LifecycleHandler 回收站操作，对象类型由路由组决定
type LifecycleHandler struct {
	lifecycleSvc service.LifecycleService
}

func NewLifecycleHandler(lifecycleSvc service.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{lifecycleSvc: lifecycleSvc}
}

// Trash 重复放入回收站不报错，返回 changed=false
func (s *LifecycleHandler) Trash(c *gin.Context) {
	s.transition(c, s.lifecycleSvc.Trash)
}

func (s *LifecycleHandler) Restore(c *gin.Context) {
	s.transition(c, s.lifecycleSvc.Restore)
}

func (s *LifecycleHandler) transition(c *gin.Context, fn func(context.Context, *model.User, model.Ref) (bool, error)) {
	ref, err := refParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	changed, err := fn(c.Request.Context(), middleware.CurrentUser(c), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"type": ref.Kind, "id": ref.ID, "changed": changed})
}

// Destroy 彻底删除
func (s *LifecycleHandler) Destroy(c *gin.Context) {
	ref, err := refParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.lifecycleSvc.Destroy(c.Request.Context(), middleware.CurrentUser(c), ref); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

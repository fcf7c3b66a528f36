package handler

import (
	"Touchline/internal/model"
	"Touchline/internal/repository"
	"Touchline/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

const ctxKindKey = "ref_kind"

// BindKind 为资源路由组标记多态类型，点赞与评论接口据此组装 model.Ref
func BindKind(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKindKey, kind)
		c.Next()
	}
}

func kindOf(c *gin.Context) (model.Kind, error) {
	kind, ok := c.Get(ctxKindKey)
	if !ok {
		return "", service.ErrUnknownKind
	}
	return kind.(model.Kind), nil
}

// sectionOf 话题路由组对应的板块
func sectionOf(c *gin.Context) (model.Section, error) {
	kind, err := kindOf(c)
	if err != nil {
		return 0, err
	}
	section, ok := model.SectionOfKind(kind)
	if !ok {
		return 0, service.ErrUnknownKind
	}
	return section, nil
}

func idParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

// refParam 路由组类型 + 路径中的 id
func refParam(c *gin.Context) (model.Ref, error) {
	kind, err := kindOf(c)
	if err != nil {
		return model.Ref{}, err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return model.Ref{}, err
	}
	return model.NewRef(kind, id), nil
}

func pageQuery(c *gin.Context) int {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		return 1
	}
	return page
}

func uintQuery(c *gin.Context, name string) uint64 {
	v, _ := strconv.ParseUint(c.Query(name), 10, 64)
	return v
}

// scopeOf 后台列表：trashed 路由只看回收站
func scopeOf(trashed bool) repository.Scope {
	if trashed {
		return repository.ScopeTrashedOnly
	}
	return repository.ScopeActive
}

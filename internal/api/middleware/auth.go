package middleware

import (
	"Touchline/internal/model"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/response"
	"Touchline/internal/pkg/security"
	"Touchline/internal/service"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// IdentityMiddleware 识别当前用户：session → remember_token cookie → Bearer JWT，均失败时视为游客
func IdentityMiddleware(userSvc service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user := fromSession(c, userSvc)
		if user == nil {
			user = fromRememberCookie(c, userSvc)
		}
		if user == nil {
			user = fromBearer(c, userSvc)
		}

		if user != nil {
			c.Set(consts.CtxUserKey, user)
			c.Set(consts.CtxUserIDKey, user.ID)
			c.Request = c.Request.WithContext(context.WithValue(ctx, consts.CtxUserIDKey, user.ID))
		}
		c.Next()
	}
}

func fromSession(c *gin.Context, userSvc service.UserService) *model.User {
	session := sessions.Default(c)
	id, ok := session.Get(consts.SessionUserKey).(uint64)
	if !ok || id == 0 {
		return nil
	}
	user, err := userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			log.ErrorContext(c.Request.Context(), "load session user error", "user_id", id, "err", err)
		}
		session.Delete(consts.SessionUserKey)
		_ = session.Save()
		return nil
	}
	return user
}

func fromRememberCookie(c *gin.Context, userSvc service.UserService) *model.User {
	token, err := c.Cookie(consts.RememberCookieName)
	if err != nil || token == "" {
		return nil
	}
	user, err := userSvc.GetByRememberToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			ClearRememberCookie(c)
		}
		return nil
	}
	session := sessions.Default(c)
	session.Set(consts.SessionUserKey, user.ID)
	_ = session.Save()
	return user
}

func fromBearer(c *gin.Context, userSvc service.UserService) *model.User {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	claims, err := security.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil
	}
	user, err := userSvc.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// CurrentUser 当前登录用户，游客返回 nil
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(consts.CtxUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUserID 游客为 0
func CurrentUserID(c *gin.Context) uint64 {
	return c.GetUint64(consts.CtxUserIDKey)
}

// LoginRequired 必须登录
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			response.Fail(c, response.Unauthorized, service.ErrLoginRequired.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}

// NoLockedRequired 被锁定的用户只能浏览，不能发帖、评论、点赞
func NoLockedRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Fail(c, response.Unauthorized, service.ErrLoginRequired.Error())
			c.Abort()
			return
		}
		if user.IsLocked() {
			response.Fail(c, response.Forbidden, service.ErrUserLocked.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired 必须是管理员
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Fail(c, response.Unauthorized, service.ErrLoginRequired.Error())
			c.Abort()
			return
		}
		if !user.Admin {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}
		c.Next()
	}
}

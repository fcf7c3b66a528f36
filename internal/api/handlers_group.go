package api

import (
	"Touchline/internal/api/handler"
	"Touchline/internal/pkg/redis"
	"Touchline/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例与路由需要的依赖
type HandlersGroup struct {
	UserSvc      service.UserService
	LoginLimiter *redis.LoginLimiter

	SessionHandler      *handler.SessionHandler
	UserHandler         *handler.UserHandler
	TopicHandler        *handler.TopicHandler
	EngagementHandler   *handler.EngagementHandler
	LifecycleHandler    *handler.LifecycleHandler
	MatchHandler        *handler.MatchHandler
	CategoryHandler     *handler.CategoryHandler
	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	AttachmentHandler   *handler.AttachmentHandler
}

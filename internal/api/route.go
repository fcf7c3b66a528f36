package api

import (
	"Touchline/internal/api/config"
	"Touchline/internal/api/handler"
	"Touchline/internal/api/middleware"
	"Touchline/internal/model"
	"Touchline/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg config.ServerConfig, group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowOrigins))
	logger.SetupGin(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.SessionMiddleware(cfg), middleware.IdentityMiddleware(group.UserSvc))
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		login := apiGroup.Group("")
		login.Use(middleware.LoginRateLimit(group.LoginLimiter))
		{
			login.GET("/login", group.SessionHandler.LoginPage)
			login.POST("/login", group.SessionHandler.Login)
			login.POST("/app/sessions", group.SessionHandler.AppLogin)
		}
		apiGroup.DELETE("/logout", group.SessionHandler.Logout)

		apiGroup.GET("/hot_topics", group.TopicHandler.HotTopics)
		apiGroup.GET("/search", group.TopicHandler.SearchAll)
		apiGroup.GET("/categories", group.CategoryHandler.List)
		apiGroup.GET("/categories/:slug", group.CategoryHandler.Get)
		apiGroup.POST("/appids", group.DeviceHandler.Register)

		userGroup := apiGroup.Group("/users")
		{
			userGroup.POST("", group.UserHandler.Register)
			userGroup.GET("/check_email", group.UserHandler.CheckEmail)
			userGroup.GET("/check_username", group.UserHandler.CheckUsername)
			userGroup.GET("/:user_id/comments", group.EngagementHandler.UserComments)
			userGroup.GET("/:user_id/comments/likes", group.EngagementHandler.LikedComments)
			for _, section := range model.Sections() {
				sectionGroup := userGroup.Group("/:user_id/"+section.Table(), handler.BindKind(section.Kind()))
				sectionGroup.GET("", group.TopicHandler.ListByUser)
				sectionGroup.GET("/likes", group.TopicHandler.Liked)
			}
		}
		apiGroup.POST("/app/users", group.UserHandler.AppRegister)

		settings := apiGroup.Group("/settings", middleware.LoginRequired())
		{
			settings.GET("/account", group.UserHandler.GetAccount)
			settings.PUT("/account", group.UserHandler.UpdateAccount)
			settings.PUT("/password", group.UserHandler.UpdatePassword)
		}

		for _, section := range model.Sections() {
			registerTopicRoutes(apiGroup.Group("/"+section.Table(), handler.BindKind(section.Kind())), group)
		}

		matchGroup := apiGroup.Group("/matches", handler.BindKind(model.KindMatch))
		{
			matchGroup.GET("", group.MatchHandler.List)
			matchGroup.GET("/:id", group.MatchHandler.Get)
			matchGroup.GET("/:id/comments", group.EngagementHandler.ListComments)

			authGroup := matchGroup.Group("", middleware.LoginRequired())
			authGroup.GET("/liked", group.MatchHandler.Liked)
			authGroup.GET("/liked/mongo_ids", group.MatchHandler.LikedMongoIDs)

			writeGroup := matchGroup.Group("", middleware.NoLockedRequired())
			writeGroup.POST("/create_simplify", group.MatchHandler.CreateSimplify)
			writeGroup.POST("/create_simplify_withlike", group.MatchHandler.CreateSimplifyWithLike)
			writeGroup.POST("/:id/comments", group.EngagementHandler.CreateComment)
			writeGroup.POST("/:id/like", group.EngagementHandler.Like)
			writeGroup.DELETE("/:id/like", group.EngagementHandler.Unlike)
			writeGroup.DELETE("/:id", group.LifecycleHandler.Trash)
		}

		commentGroup := apiGroup.Group("/comments", handler.BindKind(model.KindComment), middleware.NoLockedRequired())
		{
			commentGroup.PUT("/:id", group.EngagementHandler.UpdateComment)
			commentGroup.DELETE("/:id/trash", group.LifecycleHandler.Trash)
			commentGroup.PATCH("/:id/restore", group.LifecycleHandler.Restore)
			commentGroup.POST("/:id/like", group.EngagementHandler.Like)
			commentGroup.DELETE("/:id/like", group.EngagementHandler.Unlike)
		}

		likeGroup := apiGroup.Group("/likes", middleware.NoLockedRequired())
		{
			likeGroup.POST("", group.EngagementHandler.LikeByJSON)
			likeGroup.DELETE("", group.EngagementHandler.UnlikeByJSON)
		}

		notificationGroup := apiGroup.Group("/notifications", middleware.LoginRequired())
		{
			notificationGroup.GET("", group.NotificationHandler.List)
			notificationGroup.GET("/unread", group.NotificationHandler.UnreadCount)
			notificationGroup.POST("/mark", group.NotificationHandler.MarkAllRead)
			notificationGroup.DELETE("/:id", group.NotificationHandler.Delete)
			notificationGroup.DELETE("", group.NotificationHandler.Clear)
		}

		apiGroup.POST("/attachments", middleware.NoLockedRequired(), group.AttachmentHandler.Upload)

		registerAdminRoutes(apiGroup.Group("/admin", middleware.AdminRequired()), group)
	}

	return r
}

// registerTopicRoutes 三个板块的话题路由结构相同
func registerTopicRoutes(g *gin.RouterGroup, group *HandlersGroup) {
	g.GET("", group.TopicHandler.List)
	g.GET("/categoried/:slug", group.TopicHandler.List)
	g.GET("/search", group.TopicHandler.Search)
	g.GET("/:id", group.TopicHandler.Get)
	g.GET("/:id/comments", group.EngagementHandler.ListComments)

	writeGroup := g.Group("", middleware.NoLockedRequired())
	writeGroup.POST("", group.TopicHandler.Create)
	writeGroup.PUT("/:id", group.TopicHandler.Update)
	writeGroup.DELETE("/:id/trash", group.LifecycleHandler.Trash)
	writeGroup.PATCH("/:id/restore", group.LifecycleHandler.Restore)
	writeGroup.POST("/:id/comments", group.EngagementHandler.CreateComment)
	writeGroup.POST("/:id/like", group.EngagementHandler.Like)
	writeGroup.DELETE("/:id/like", group.EngagementHandler.Unlike)
}

func registerAdminRoutes(admin *gin.RouterGroup, group *HandlersGroup) {
	users := admin.Group("/users")
	{
		users.GET("", group.UserHandler.AdminList)
		users.GET("/locked", group.UserHandler.AdminLocked)
		users.GET("/:id", group.UserHandler.AdminShow)
		users.PATCH("/:id/lock", group.UserHandler.Lock)
		users.DELETE("/:id/lock", group.UserHandler.Unlock)
		users.DELETE("/:id", group.UserHandler.Destroy)
	}

	categories := admin.Group("/categories")
	{
		categories.POST("", group.CategoryHandler.Create)
		categories.PUT("/:id", group.CategoryHandler.Update)
		categories.DELETE("/:id", group.CategoryHandler.Delete)
	}

	for _, section := range model.Sections() {
		topics := admin.Group("/"+section.Table(), handler.BindKind(section.Kind()))
		topics.GET("", group.TopicHandler.AdminList)
		topics.GET("/trashed", group.TopicHandler.AdminTrashed)
		topics.GET("/:id", group.TopicHandler.Get)
		topics.PUT("/:id", group.TopicHandler.Update)
		topics.DELETE("/:id/trash", group.LifecycleHandler.Trash)
		topics.PATCH("/:id/restore", group.LifecycleHandler.Restore)
		topics.DELETE("/:id", group.LifecycleHandler.Destroy)
	}

	comments := admin.Group("/comments", handler.BindKind(model.KindComment))
	{
		comments.GET("", group.EngagementHandler.AdminComments)
		comments.GET("/trashed", group.EngagementHandler.AdminTrashedComments)
		comments.PUT("/:id", group.EngagementHandler.UpdateComment)
		comments.DELETE("/:id/trash", group.LifecycleHandler.Trash)
		comments.PATCH("/:id/restore", group.LifecycleHandler.Restore)
		comments.DELETE("/:id", group.LifecycleHandler.Destroy)
	}

	matches := admin.Group("/matches", handler.BindKind(model.KindMatch))
	{
		matches.GET("", group.MatchHandler.AdminList)
		matches.GET("/trashed", group.MatchHandler.AdminTrashed)
		matches.DELETE("/:id/trash", group.LifecycleHandler.Trash)
		matches.PATCH("/:id/restore", group.LifecycleHandler.Restore)
		matches.DELETE("/:id", group.LifecycleHandler.Destroy)
	}

	attachments := admin.Group("/attachments")
	{
		attachments.GET("", group.AttachmentHandler.List)
		attachments.DELETE("/:id", group.AttachmentHandler.Delete)
	}

	devices := admin.Group("/appids")
	{
		devices.GET("", group.DeviceHandler.List)
		devices.PATCH("/:id/freeze", group.DeviceHandler.Freeze)
		devices.DELETE("/:id/freeze", group.DeviceHandler.Unfreeze)
		devices.DELETE("/:id", group.DeviceHandler.Delete)
	}

	pushes := admin.Group("/pushes")
	{
		pushes.GET("", group.DeviceHandler.ListPushes)
		pushes.POST("", group.DeviceHandler.CreatePush)
	}
}

package wire

import (
	"Touchline/internal/api"
	"Touchline/internal/api/config"
	"Touchline/internal/api/handler"
	"Touchline/internal/job"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/cron"
	"Touchline/internal/pkg/es"
	"Touchline/internal/pkg/kafka"
	"Touchline/internal/pkg/minio"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/push"
	"Touchline/internal/pkg/redis"
	"Touchline/internal/repository"
	"Touchline/internal/service"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
	PushProducer *kafka.PushProducer
}

func BuildApplication(db *gorm.DB, rdb *redisv9.Client, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	forum := cfg.Forum

	// MySQL
	topicRepos := repository.NewTopicRepos(db)
	matchRepo := repository.NewMatchRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	attachmentRepo := repository.NewAttachmentRepo(db)
	registry := repository.NewRegistry(append(topicRepos.Entities(), matchRepo, commentRepo)...)

	// Mongo / ES
	notificationRepo := mongo.NewNotificationRepo(mongoDB)
	deviceRepo := mongo.NewDeviceRepo(mongoDB)
	pushRepo := mongo.NewPushRepo(mongoDB)
	searchRepo := es.NewTopicRepo(es.Client)

	// Redis
	searchDirty := redis.NewDirtySet(rdb, consts.TopicSearchDirtyKey)
	rankDirty := redis.NewDirtySet(rdb, consts.RankDirtyKey)
	loginLimiter := redis.NewLoginLimiter(rdb, cfg.Limiter)

	// MinIO
	storage, err := minio.NewStorage(cfg.MinIO)
	if err != nil {
		return nil, err
	}

	// Kafka
	pushProducer, err := kafka.NewPushProducer(cfg)
	if err != nil {
		return nil, err
	}

	rankingService := service.NewRankingService(registry, topicRepos, userRepo, rankDirty, rdb)
	engagementService := service.NewEngagementService(registry, commentRepo, likeRepo, userRepo, notificationRepo, rankingService, forum.CommentsPerPage)
	lifecycleService := service.NewLifecycleService(registry, notificationRepo, rankingService, searchDirty)
	topicService := service.NewTopicService(topicRepos, categoryRepo, userRepo, likeRepo, searchRepo, engagementService, rankingService, searchDirty, forum.PerPage)
	matchService := service.NewMatchService(matchRepo, likeRepo, engagementService, rankingService, forum.PerPage)
	categoryService := service.NewCategoryService(categoryRepo)
	userService := service.NewUserService(userRepo, forum.PerPage)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, forum.PerPage)
	deviceService := service.NewDeviceService(deviceRepo, forum.PerPage)
	pushService := service.NewPushService(pushRepo, deviceRepo, pushProducer, push.NewClient(cfg.Push), forum.PerPage)
	attachmentService := service.NewAttachmentService(attachmentRepo, storage, forum.PerPage)

	handlers := &api.HandlersGroup{
		UserSvc:      userService,
		LoginLimiter: loginLimiter,

		SessionHandler:      handler.NewSessionHandler(userService),
		UserHandler:         handler.NewUserHandler(userService),
		TopicHandler:        handler.NewTopicHandler(topicService, rankingService, forum.HotFeedSize),
		EngagementHandler:   handler.NewEngagementHandler(engagementService),
		LifecycleHandler:    handler.NewLifecycleHandler(lifecycleService),
		MatchHandler:        handler.NewMatchHandler(matchService),
		CategoryHandler:     handler.NewCategoryHandler(categoryService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		DeviceHandler:       handler.NewDeviceHandler(deviceService, pushService),
		AttachmentHandler:   handler.NewAttachmentHandler(attachmentService),
	}

	router := api.SetupRouter(cfg.Server, handlers)

	cronMgr := cron.NewCronManager(
		forum.IndexSyncSpec,
		forum.HotSweepSpec,
		job.NewTopicIndexJob(topicService, searchDirty),
		job.NewRankSweepJob(rankingService),
	)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, pushService)
	if err != nil {
		_ = pushProducer.Close()
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		PushProducer: pushProducer,
	}, nil
}

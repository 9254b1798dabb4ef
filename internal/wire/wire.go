package wire

import (
	"Chirp/internal/api"
	"Chirp/internal/api/config"
	"Chirp/internal/api/handler"
	"Chirp/internal/job"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/cron"
	"Chirp/internal/pkg/gate"
	"Chirp/internal/pkg/kafka"
	"Chirp/internal/pkg/redis"
	"Chirp/internal/repository"
	"Chirp/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	Producer     *kafka.FanoutProducer
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	tweetRepo := repository.NewTweetRepo(db)
	friendshipRepo := repository.NewFriendshipRepo(db)
	friendshipWideRepo, err := repository.NewFriendshipWideRepo(mongoDB)
	if err != nil {
		return nil, err
	}
	newsFeedRepo := repository.NewNewsFeedRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	cacheTTL := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	listCache := cache.NewListCache(cfg.Cache.ListLimit, cacheTTL)
	counterCache := cache.NewCounterCache(cacheTTL)
	gateKeeper := gate.NewGateKeeper(redis.GetRdbClient())

	producer, err := kafka.NewFanoutProducer(cfg)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo)
	friendshipService := service.NewFriendshipService(friendshipRepo, friendshipWideRepo, gateKeeper, userService)
	tweetService := service.NewTweetService(tweetRepo, userService, listCache, producer)
	newsFeedService := service.NewNewsFeedService(newsFeedRepo, tweetRepo, friendshipService,
		userService, listCache, producer, cfg.Fanout.BatchSize)
	notificationService := service.NewNotificationService(notificationRepo, counterCache)
	commentService := service.NewCommentService(commentRepo, tweetRepo, likeRepo,
		userService, notificationService, counterCache)
	likeService := service.NewLikeService(likeRepo, tweetRepo, commentRepo,
		notificationService, counterCache)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		TweetHandler:        handler.NewTweetHandler(tweetService),
		NewsFeedHandler:     handler.NewNewsFeedHandler(newsFeedService),
		FriendshipHandler:   handler.NewFriendshipHandler(friendshipService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		LikeHandler:         handler.NewLikeHandler(likeService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		GatekeeperHandler:   handler.NewGatekeeperHandler(gateKeeper),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, newsFeedService)
	if err != nil {
		return nil, err
	}

	tweetCounterJob := job.NewTweetCounterJob(tweetRepo, likeRepo, commentRepo)
	cronMgr := cron.NewCronManager(tweetCounterJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		Producer:     producer,
		CronMgr:      cronMgr,
	}, nil
}

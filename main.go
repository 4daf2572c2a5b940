package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sacredgreeks/config"
	"sacredgreeks/cron"
	"sacredgreeks/database"
	contentRepo "sacredgreeks/database/repository/content"
	forumRepo "sacredgreeks/database/repository/forum"
	gamificationRepo "sacredgreeks/database/repository/gamification"
	prayerRepo "sacredgreeks/database/repository/prayer"
	pushRepo "sacredgreeks/database/repository/push"
	subscriptionRepo "sacredgreeks/database/repository/subscription"
	userRepo "sacredgreeks/database/repository/user"
	"sacredgreeks/handlers"
	"sacredgreeks/middleware"
	"sacredgreeks/models"
	"sacredgreeks/routes"
	"sacredgreeks/services/content"
	"sacredgreeks/services/demo"
	"sacredgreeks/services/email"
	"sacredgreeks/services/engagement"
	"sacredgreeks/services/forum"
	"sacredgreeks/services/gamification"
	"sacredgreeks/services/intelligence"
	"sacredgreeks/services/notification"
	"sacredgreeks/services/prayer"
	"sacredgreeks/services/storage"
	"sacredgreeks/services/subscription"
	"sacredgreeks/services/user"
	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitPubSub()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	users := userRepo.NewMongoUserRepo()
	contents := contentRepo.NewMongoContentRepo()
	prayers := prayerRepo.NewMongoPrayerRepo()
	forums := forumRepo.NewMongoForumRepo()
	points := gamificationRepo.NewMongoGamificationRepo()
	subs := subscriptionRepo.NewMongoSubscriptionRepo()
	pushSubs := pushRepo.NewMongoPushRepo()

	queueClient := asynq.NewClient(cron.RedisOpt())
	defer queueClient.Close()
	mailQueue := email.NewAsynqQueue(queueClient)

	// optional integrations degrade to "not configured" errors when absent.
	notificationService := &notification.DefaultNotificationService{Repo: pushSubs, AppURL: cfg.AppBaseURL}
	if fcm, err := utils.NewFCMClient(rootCtx); err != nil {
		logger.Warn("main: push notifications disabled", zap.Error(err))
	} else {
		notificationService.FCM = fcm
	}

	var storageService storage.StorageService
	if cld, err := utils.NewCloudinary(); err != nil {
		logger.Warn("main: media storage disabled", zap.Error(err))
	} else {
		storageService = storage.NewCloudinaryStorageService(cld)
	}

	subscriptionService := &subscription.DefaultSubscriptionService{
		Repo: subs,
		Prices: map[string]string{
			models.PlanPremiumMonthly: cfg.StripePriceMonthly,
			models.PlanPremiumAnnual:  cfg.StripePriceAnnual,
		},
		AppURL: cfg.AppBaseURL,
	}
	if gw, err := subscription.NewStripeGateway(cfg.StripeKey, cfg.StripeWebhookSecret); err != nil {
		logger.Warn("main: billing disabled", zap.Error(err))
	} else {
		subscriptionService.Gateway = gw
	}

	var sender email.Sender
	if rs, err := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom); err != nil {
		logger.Warn("main: email delivery disabled", zap.Error(err))
	} else {
		sender = rs
	}

	intelligenceService := &intelligence.DefaultIntelligenceService{
		Store: intelligence.NewRedisContextStore(utils.GetCacheClient(), intelligence.ContextTTL),
	}
	if cfg.GeminiAPIKey != "" {
		gc, err := intelligence.NewGeminiClient(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("main: guided prayer disabled", zap.Error(err))
		} else {
			defer gc.Close()
			intelligenceService.Generator = gc
		}
	}

	// services.
	gamificationService := &gamification.DefaultGamificationService{
		Repo:  points,
		Users: users,
		Cache: utils.GetCacheClient(),
		Push:  notificationService,
		Mail:  mailQueue,
		Queue: queueClient,
	}
	userService := &user.DefaultUserService{
		Repo:      users,
		AuthCache: utils.GetAuthCacheClient(),
		Mail:      mailQueue,
		Points:    gamificationService,
		Rankings:  gamificationService,
		AppURL:    cfg.AppBaseURL,
	}
	if storageService != nil {
		userService.Media = storageService
	}
	contentService := &content.DefaultContentService{
		Repo:    contents,
		Premium: subscriptionService,
		Points:  gamificationService,
		Queue:   queueClient,
	}
	prayerService := &prayer.DefaultPrayerService{
		Repo:   prayers,
		Users:  users,
		PubSub: utils.GetPubSubClient(),
		Points: gamificationService,
		Queue:  queueClient,
	}
	forumService := &forum.DefaultForumService{
		Repo:   forums,
		Users:  users,
		Points: gamificationService,
		Queue:  queueClient,
	}
	demoService := &demo.DefaultDemoService{Users: users, Cache: utils.GetCacheClient()}
	engagementService := &engagement.DefaultEngagementService{
		Repo:  points,
		Cache: utils.GetCacheClient(),
		Demo:  demoService,
	}

	// background work.
	worker, err := cron.StartWorker(cron.RedisOpt(), &cron.Handlers{
		Sender:       sender,
		Content:      contentService,
		Notifier:     notificationService,
		Gamification: gamificationService,
		Engagement:   engagementService,
	})
	if err != nil {
		logger.Fatal("main: task worker failed", zap.Error(err))
	}
	scheduler, err := cron.StartScheduler(cron.RedisOpt(), cfg.DevotionalReminderCron)
	if err != nil {
		logger.Fatal("main: scheduler failed", zap.Error(err))
	}

	utils.StartHealthMonitor(rootCtx,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetPubSubClient()},
		database.MongoClient)

	handlerBundle := &handlers.HandlerBundle{
		User:         handlers.NewUserHandler(userService, storageService),
		Content:      handlers.NewContentHandler(contentService, storageService),
		Prayer:       handlers.NewPrayerHandler(prayerService),
		Forum:        handlers.NewForumHandler(forumService),
		Gamification: handlers.NewGamificationHandler(gamificationService, demoService),
		Engagement:   handlers.NewEngagementHandler(engagementService),
		Demo:         handlers.NewDemoHandler(demoService),
		Billing:      handlers.NewBillingHandler(subscriptionService, userService),
		Push:         handlers.NewPushHandler(notificationService),
		Email:        handlers.NewEmailHandler(mailQueue, cfg.ContactInbox),
		AI:           handlers.NewAIHandler(intelligenceService),
		Admin:        handlers.NewAdminHandler(userService),
	}

	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		UserAuth:       middleware.JWTAuthUserMiddleware(users, utils.GetAuthCacheClient()),
		AdminToken:     cfg.AdminToken,
		RequestsPerMin: cfg.MaxRequestsPerMin,
		AllowOrigins:   []string{cfg.AppBaseURL},
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return rootCtx },
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	// Request contexts derive from rootCtx, so cancelling it ends open prayer-wall streams.
	stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	scheduler.Shutdown()
	worker.Shutdown()
	utils.CloseCaches()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

package routes

import (
	"strings"
	"time"

	"sacredgreeks/handlers"
	"sacredgreeks/middleware"
	"sacredgreeks/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the middleware settings the router needs.
type Options struct {
	UserAuth       gin.HandlerFunc
	AdminToken     string
	RequestsPerMin int
	AllowOrigins   []string
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID", "X-Device-Name"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	var valid []string
	for _, o := range origins {
		if strings.HasPrefix(o, "http://") || strings.HasPrefix(o, "https://") {
			valid = append(valid, strings.TrimRight(o, "/"))
		}
	}
	if len(valid) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = valid
	}
	return cors.New(cfg)
}

// RegisterPublicRoutes mounts the endpoints that need no sign-in.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", handlers.HealthHandler)

	auth := r.Group("/api/auth")
	auth.Use(middleware.DeviceDetailsMiddleware())
	{
		auth.POST("/register", hb.User.RegisterHandler)
		auth.POST("/login", hb.User.LoginHandler)
	}

	api := r.Group("/api")
	{
		api.GET("/content", hb.Content.ListContentHandler)
		api.GET("/devotionals/today", hb.Content.TodayDevotionalHandler)
		api.GET("/forum/categories", hb.Forum.CategoriesHandler)
		api.GET("/forum/topics", hb.Forum.ListTopicsHandler)
		api.GET("/forum/topics/:id", hb.Forum.GetTopicHandler)
		api.GET("/prayers/wall", hb.Prayer.WallHandler)
		api.GET("/prayers/stream", hb.Prayer.StreamHandler)
		api.GET("/challenges/catalog", hb.Gamification.ChallengeCatalogHandler)
		api.GET("/achievements/catalog", hb.Gamification.AchievementCatalogHandler)
		api.GET("/demo/scenarios", hb.Demo.ScenariosHandler)
		api.POST("/email/contact", hb.Email.ContactHandler)
		api.POST("/billing/webhook", hb.Billing.WebhookHandler)
	}
}

// RegisterMemberRoutes mounts the endpoints that need a signed-in device.
func RegisterMemberRoutes(r *gin.Engine, hb *handlers.HandlerBundle, userAuth gin.HandlerFunc) {
	api := r.Group("/api")
	api.Use(userAuth)

	api.POST("/auth/logout", hb.User.LogoutHandler)

	me := api.Group("/me")
	{
		me.GET("", hb.User.GetProfileHandler)
		me.PATCH("", hb.User.UpdateProfileHandler)
		me.DELETE("", hb.User.DeleteAccountHandler)
		me.POST("/avatar", hb.User.UploadAvatarHandler)
		me.PUT("/password", hb.User.ChangePasswordHandler)
		me.GET("/devices", hb.User.ListDevicesHandler)
		me.DELETE("/devices/:deviceId", hb.User.SignOutDeviceHandler)
		me.POST("/devices/signout-others", hb.User.SignOutOtherDevicesHandler)

		me.GET("/bookmarks", hb.Content.ListBookmarksHandler)
		me.GET("/points", hb.Gamification.PointsHandler)
		me.GET("/stats", hb.Gamification.StatsHandler)
		me.GET("/achievements", hb.Gamification.AchievementsHandler)
		me.GET("/engagement", hb.Engagement.ScoreHandler)
		me.GET("/demo", hb.Demo.GetSettingsHandler)
		me.PUT("/demo", hb.Demo.SaveSettingsHandler)
	}

	content := api.Group("/content/:id")
	{
		content.GET("", hb.Content.GetContentHandler)
		content.GET("/pray-along", hb.Content.PrayAlongHandler)
		content.POST("/complete", hb.Content.CompleteHandler)
		content.POST("/bookmark", hb.Content.AddBookmarkHandler)
		content.DELETE("/bookmark", hb.Content.RemoveBookmarkHandler)
	}

	prayers := api.Group("/prayers")
	{
		prayers.POST("", hb.Prayer.CreatePrayerHandler)
		prayers.GET("/mine", hb.Prayer.MyPrayersHandler)
		prayers.POST("/:id/pray", hb.Prayer.PrayForHandler)
		prayers.POST("/:id/answered", hb.Prayer.MarkAnsweredHandler)
		prayers.DELETE("/:id", hb.Prayer.DeletePrayerHandler)
	}

	forum := api.Group("/forum")
	{
		forum.POST("/topics", hb.Forum.CreateTopicHandler)
		forum.POST("/topics/:id/replies", hb.Forum.ReplyHandler)
		forum.DELETE("/topics/:id", hb.Forum.DeleteTopicHandler)
		forum.DELETE("/replies/:id", hb.Forum.DeleteReplyHandler)
	}

	api.POST("/achievements/evaluate", hb.Gamification.EvaluateAchievementsHandler)
	api.POST("/achievements/:key/unlock", hb.Gamification.UnlockAchievementHandler)
	api.GET("/challenges/today", hb.Gamification.TodayChallengeHandler)
	api.POST("/challenges/today/complete", hb.Gamification.CompleteChallengeHandler)
	api.GET("/leaderboard", hb.Gamification.LeaderboardHandler)

	billing := api.Group("/billing")
	{
		billing.GET("/status", hb.Billing.StatusHandler)
		billing.POST("/checkout", hb.Billing.CheckoutHandler)
		billing.POST("/portal", hb.Billing.PortalHandler)
	}

	api.POST("/push/subscribe", hb.Push.SubscribeHandler)
	api.POST("/push/unsubscribe", hb.Push.UnsubscribeHandler)

	api.POST("/ai/prayer", hb.AI.GuidedPrayerHandler)
}

// RegisterAdminRoutes mounts admin endpoints. The static admin token bypasses user auth.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, userAuth gin.HandlerFunc, adminToken string) {
	admin := r.Group("/api/admin")
	admin.Use(
		middleware.StaticAdminToken(adminToken),
		middleware.RequireAuthUnlessAdminToken(userAuth),
		middleware.AdminOnly(),
	)
	{
		admin.GET("/users", hb.Admin.ListUsersHandler)
		admin.POST("/content", hb.Content.CreateContentHandler)
		admin.PUT("/content/:id", hb.Content.UpdateContentHandler)
		admin.DELETE("/content/:id", hb.Content.DeleteContentHandler)
		admin.POST("/content/images", hb.Content.UploadContentImageHandler)
		admin.PUT("/forum/topics/:id/pin", hb.Forum.SetPinnedHandler)
		admin.PUT("/forum/topics/:id/lock", hb.Forum.SetLockedHandler)
		admin.POST("/push/broadcast", hb.Push.BroadcastHandler)
	}
}

// RegisterRoutes installs the global middleware and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(
		gin.Recovery(),
		utils.ErrorHandler(),
		gin.Logger(),
		middleware.RateLimitMiddleware(opts.RequestsPerMin),
		corsMiddleware(opts.AllowOrigins),
	)

	RegisterPublicRoutes(r, hb)
	RegisterMemberRoutes(r, hb, opts.UserAuth)
	RegisterAdminRoutes(r, hb, opts.UserAuth, opts.AdminToken)
}

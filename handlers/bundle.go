package handlers

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	User         *UserHandler
	Content      *ContentHandler
	Prayer       *PrayerHandler
	Forum        *ForumHandler
	Gamification *GamificationHandler
	Engagement   *EngagementHandler
	Demo         *DemoHandler
	Billing      *BillingHandler
	Push         *PushHandler
	Email        *EmailHandler
	AI           *AIHandler
	Admin        *AdminHandler
}

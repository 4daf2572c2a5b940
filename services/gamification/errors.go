package gamification

import "errors"

var (
	ErrUnknownAction          = errors.New("unknown point action")
	ErrUnknownAchievement     = errors.New("unknown achievement")
	ErrCriteriaNotMet         = errors.New("achievement criteria not met")
	ErrChallengeDone          = errors.New("today's challenge is already complete")
	ErrLeaderboardUnavailable = errors.New("leaderboard is unavailable")
)

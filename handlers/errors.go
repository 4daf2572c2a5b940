package handlers

import (
	"errors"
	"net/http"

	"sacredgreeks/services/content"
	"sacredgreeks/services/email"
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
	"go.uber.org/zap"
)

type statusMapping struct {
	err    error
	status int
}

// knownErrors maps service sentinels to HTTP status codes. Order matters only for wrapped chains.
var knownErrors = []statusMapping{
	{user.ErrNotFound, http.StatusNotFound},
	{user.ErrDeviceNotFound, http.StatusNotFound},
	{content.ErrNotFound, http.StatusNotFound},
	{prayer.ErrNotFound, http.StatusNotFound},
	{forum.ErrNotFound, http.StatusNotFound},
	{notification.ErrNotFound, http.StatusNotFound},
	{gamification.ErrUnknownAchievement, http.StatusNotFound},
	{subscription.ErrNoCustomer, http.StatusNotFound},

	{user.ErrInvalidInput, http.StatusBadRequest},
	{user.ErrWeakPassword, http.StatusBadRequest},
	{content.ErrInvalidInput, http.StatusBadRequest},
	{content.ErrNotAPrayer, http.StatusBadRequest},
	{prayer.ErrInvalidInput, http.StatusBadRequest},
	{forum.ErrInvalidInput, http.StatusBadRequest},
	{forum.ErrUnknownCategory, http.StatusBadRequest},
	{gamification.ErrUnknownAction, http.StatusBadRequest},
	{subscription.ErrUnknownPlan, http.StatusBadRequest},
	{subscription.ErrInvalidSignature, http.StatusBadRequest},
	{notification.ErrInvalidInput, http.StatusBadRequest},
	{intelligence.ErrInvalidInput, http.StatusBadRequest},
	{storage.ErrUnsupportedType, http.StatusBadRequest},
	{storage.ErrEmptyFile, http.StatusBadRequest},
	{email.ErrNoRecipients, http.StatusBadRequest},
	{email.ErrEmptyMessage, http.StatusBadRequest},

	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{content.ErrPremiumRequired, http.StatusPaymentRequired},
	{user.ErrDeviceLimit, http.StatusForbidden},
	{prayer.ErrForbidden, http.StatusForbidden},
	{forum.ErrForbidden, http.StatusForbidden},

	{user.ErrAlreadyExists, http.StatusConflict},
	{content.ErrSlugTaken, http.StatusConflict},
	{gamification.ErrChallengeDone, http.StatusConflict},
	{forum.ErrTopicLocked, http.StatusLocked},
	{storage.ErrTooLarge, http.StatusRequestEntityTooLarge},
	{gamification.ErrCriteriaNotMet, http.StatusUnprocessableEntity},

	{intelligence.ErrEmptyResponse, http.StatusBadGateway},
	{intelligence.ErrUnavailable, http.StatusServiceUnavailable},
	{subscription.ErrNotConfigured, http.StatusServiceUnavailable},
	{email.ErrNotConfigured, http.StatusServiceUnavailable},
	{gamification.ErrLeaderboardUnavailable, http.StatusServiceUnavailable},
	{prayer.ErrStreamClosed, http.StatusServiceUnavailable},
}

// statusFor returns the mapped status and the sentinel that matched, or 500 and nil.
func statusFor(err error) (int, error) {
	for _, m := range knownErrors {
		if errors.Is(err, m.err) {
			return m.status, m.err
		}
	}
	return http.StatusInternalServerError, nil
}

// respondError writes the sentinel's message for known errors and the fallback for anything else.
func respondError(c *gin.Context, err error, fallback string) {
	status, sentinel := statusFor(err)
	if sentinel == nil {
		utils.GetLogger().Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(status, utils.ErrorResponse{Message: fallback})
		return
	}
	utils.JSONError(c, status, sentinel.Error(), "")
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fixhub/services/account"
	"fixhub/services/matching"
	"fixhub/services/request"
	"fixhub/services/review"
	"fixhub/services/wallet"
	"fixhub/utils"
)

// respondError maps a service error onto its HTTP status. The taxonomy keeps
// "nothing happened" outcomes (validation, authorization, funds, state) apart
// from "lost a race and was compensated" (409 with its own message), so
// clients know whether retrying makes sense.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, request.ErrValidation),
		errors.Is(err, account.ErrValidation),
		errors.Is(err, review.ErrValidation),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, request.ErrOtpMismatch):
		status = http.StatusBadRequest

	case errors.Is(err, account.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, wallet.ErrPaymentFailed),
		errors.Is(err, request.ErrInsufficientFunds):
		status = http.StatusPaymentRequired

	case errors.Is(err, request.ErrNotAuthorized),
		errors.Is(err, review.ErrNotAuthorized),
		errors.Is(err, request.ErrProviderNotVerified):
		status = http.StatusForbidden

	case errors.Is(err, request.ErrNotFound),
		errors.Is(err, account.ErrNotFound),
		errors.Is(err, matching.ErrNotFound),
		errors.Is(err, review.ErrNotFound),
		errors.Is(err, wallet.ErrNotFound):
		status = http.StatusNotFound

	case errors.Is(err, request.ErrStateConflict),
		errors.Is(err, request.ErrRaceLost),
		errors.Is(err, request.ErrProviderUnavailable),
		errors.Is(err, request.ErrActiveJobExists),
		errors.Is(err, request.ErrOtpNotIssued),
		errors.Is(err, request.ErrOtpExpired),
		errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, review.ErrNotCompleted),
		errors.Is(err, review.ErrAlreadyExists):
		status = http.StatusConflict

	case errors.Is(err, request.ErrDailyLimitReached):
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "something went wrong, please try again"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

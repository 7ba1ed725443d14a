package request

import "errors"

// Sentinel errors forming the engine's error taxonomy. Handlers map these to
// HTTP statuses; callers distinguish "nothing happened" (validation,
// authorization, insufficient funds, state conflict) from "something happened
// and was compensated" (race lost).
var (
	ErrNotFound          = errors.New("request not found")
	ErrNotAuthorized     = errors.New("not authorized for this request")
	ErrValidation        = errors.New("invalid request input")
	ErrStateConflict     = errors.New("request is not in the required state")
	ErrRaceLost          = errors.New("a concurrent operation won; charges were refunded")
	ErrInsufficientFunds = errors.New("wallet balance below required fee")
	ErrDailyLimitReached = errors.New("daily acceptance limit reached")

	ErrProviderNotVerified = errors.New("provider is not verified")
	ErrProviderUnavailable = errors.New("provider is not available")
	ErrActiveJobExists     = errors.New("provider already has an active job")

	ErrOtpMismatch   = errors.New("code does not match")
	ErrOtpExpired    = errors.New("code has expired, request a new one")
	ErrOtpNotIssued = errors.New("no code has been issued for this phase")
)

package accountRepo

import (
	"time"

	"fixhub/models"
)

// AccountRepository defines data access for both actor kinds. Clients and
// providers live in separate collections but share the wallet capability;
// every balance or counter mutation below is a single conditional update.
type AccountRepository interface {
	CreateClient(c *models.Client) error
	CreateProvider(p *models.Provider) error
	GetClient(id string) (*models.Client, error)
	GetProvider(id string) (*models.Provider, error)
	GetClientByEmail(email string) (*models.Client, error)
	GetProviderByEmail(email string) (*models.Provider, error)
	// ListProvidersByCategory returns providers offering the given category.
	ListProvidersByCategory(category string) ([]models.Provider, error)

	// Credit adds amount to the actor's wallet unconditionally.
	Credit(id string, kind models.ActorKind, amount int64) error
	// Debit subtracts amount only if the current balance covers it;
	// repository.ErrConflict otherwise.
	Debit(id string, kind models.ActorKind, amount int64) error
	// ApplyPenalty subtracts amount unconditionally; the balance may go negative.
	ApplyPenalty(id string, kind models.ActorKind, amount int64) error

	// AcceptanceDebit fuses the acceptance-fee debit with the daily-limiter
	// bump: it succeeds only if balance >= fee and the counter is under cap,
	// decrementing the one and incrementing the other in the same step.
	AcceptanceDebit(providerID string, fee int64, cap int, at time.Time) error
	// ReturnAcceptanceSlot compensates a prior AcceptanceDebit: refunds the
	// fee and returns the daily slot. The counter never goes below zero.
	ReturnAcceptanceSlot(providerID string, fee int64) error
	// ResetDailyCountBefore zeroes the daily counter when the last acceptance
	// happened before the given start of day. Idempotent.
	ResetDailyCountBefore(providerID string, startOfDay time.Time) error

	// ConsumeTrialJob decrements trialJobsLeft if any remain.
	ConsumeTrialJob(providerID string) error
	// IncrementJobsCompleted bumps the provider's completed-jobs counter.
	IncrementJobsCompleted(providerID string) error
	// IncrementCancellationCount bumps the provider's cancellation counter.
	IncrementCancellationCount(providerID string) error
	// SetRating stores a recomputed average rating.
	SetRating(providerID string, rating float64) error
	// SetAvailability flips the provider's feed visibility.
	SetAvailability(providerID string, available bool) error
	// UpdateSettings stores the provider's coordinates and service radius.
	UpdateSettings(providerID string, coords *models.Coordinates, radiusKm float64) error
}

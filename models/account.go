package models

import "time"

// Role identifies the kind of actor behind a token.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// ActorKind tags which collection a wallet or transaction row belongs to.
type ActorKind string

const (
	ActorClient   ActorKind = "client"
	ActorProvider ActorKind = "provider"
)

// Kind maps a role to its wallet actor kind.
func (r Role) Kind() ActorKind {
	if r == RoleProvider {
		return ActorProvider
	}
	return ActorClient
}

// Account is the wallet-bearing capability shared by clients and providers.
// WalletBalance is maintained incrementally and may go negative after a
// penalty; the transaction ledger remains the authoritative audit trail.
type Account struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role          Role      `bson:"role" json:"role"`
	WalletBalance int64     `bson:"walletBalance" json:"walletBalance"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// Client is a request-posting actor.
type Client struct {
	Account `bson:",inline"`

	// Average rating given by providers.
	Rating float64 `bson:"rating" json:"rating"`
}

// Provider is a service-rendering actor.
type Provider struct {
	Account `bson:",inline"`

	Category        string       `bson:"category" json:"category"`
	IsVerified      bool         `bson:"isVerified" json:"isVerified"`
	IsAvailable     bool         `bson:"isAvailable" json:"isAvailable"`
	Coordinates     *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	ServiceRadiusKm float64      `bson:"serviceRadiusKm" json:"serviceRadiusKm"`

	DailyAcceptanceCount int        `bson:"dailyAcceptanceCount" json:"dailyAcceptanceCount"`
	LastAcceptanceDate   *time.Time `bson:"lastAcceptanceDate,omitempty" json:"lastAcceptanceDate,omitempty"`

	CancellationCount int     `bson:"cancellationCount" json:"cancellationCount"`
	Rating            float64 `bson:"rating" json:"rating"`
	JobsCompleted     int     `bson:"jobsCompleted" json:"jobsCompleted"`
	TrialJobsLeft     int     `bson:"trialJobsLeft" json:"trialJobsLeft"`
	ExperienceYears   int     `bson:"experienceYears" json:"experienceYears"`
}

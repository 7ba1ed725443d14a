package wallet

import (
	"errors"

	"fixhub/models"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrInvalidAmount = errors.New("top-up amount must be positive")
	ErrPaymentFailed = errors.New("payment could not be processed")
)

// TopUpInput is the payload for funding a wallet from an external card.
type TopUpInput struct {
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
}

// TopUpResult reports a settled top-up.
type TopUpResult struct {
	PaymentRef string `json:"paymentRef"`
	Amount     int64  `json:"amount"`
	NewBalance int64  `json:"newBalance"`
}

// ConsistencyReport compares an actor's maintained balance against the
// signed sum of their ledger entries. The two must agree at rest.
type ConsistencyReport struct {
	ActorID    string `json:"actorId"`
	Balance    int64  `json:"balance"`
	LedgerSum  int64  `json:"ledgerSum"`
	Consistent bool   `json:"consistent"`
}

// WalletService exposes the wallet to actors: balance, history and funding.
type WalletService interface {
	Balance(actorID string, kind models.ActorKind) (int64, error)
	Transactions(actorID string, kind models.ActorKind) ([]models.Transaction, error)
	TopUp(actorID string, kind models.ActorKind, in TopUpInput) (*TopUpResult, error)
	CheckConsistency(actorID string, kind models.ActorKind) (*ConsistencyReport, error)
}

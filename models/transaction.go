package models

import "time"

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxAcceptanceFee   TransactionType = "acceptance_fee"
	TxConfirmationFee TransactionType = "confirmation_fee"
	TxPenalty         TransactionType = "penalty"
	TxRefund          TransactionType = "refund"
	TxCredit          TransactionType = "credit"
)

// Transaction is an append-only wallet ledger entry. Amount is signed:
// debits are negative, credits positive, so the sum of an actor's entries
// always equals their wallet balance.
type Transaction struct {
	ID        string          `bson:"id" json:"id"`
	ActorID   string          `bson:"actorId" json:"actorId"`
	ActorKind ActorKind       `bson:"actorKind" json:"actorKind"`
	Amount    int64           `bson:"amount" json:"amount"`
	Type      TransactionType `bson:"type" json:"type"`
	RequestID string          `bson:"requestId,omitempty" json:"requestId,omitempty"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
}

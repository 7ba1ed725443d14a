package transactionRepo

import "fixhub/models"

// TransactionRepository is the append-only wallet ledger. Entries are never
// updated or deleted; the per-actor sum is the consistency check against the
// incrementally maintained balance field.
type TransactionRepository interface {
	// Append inserts a ledger entry.
	Append(tx *models.Transaction) error
	// ListByActor returns an actor's entries, newest first.
	ListByActor(actorID string, kind models.ActorKind) ([]models.Transaction, error)
	// SumByActor returns the signed sum of an actor's entries.
	SumByActor(actorID string, kind models.ActorKind) (int64, error)
}

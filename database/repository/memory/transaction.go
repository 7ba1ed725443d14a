package memory

import "fixhub/models"

// TransactionRepo is the in-memory TransactionRepository.
type TransactionRepo struct {
	s *Store
}

func (r *TransactionRepo) Append(tx *models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ledger = append(r.s.ledger, *tx)
	return nil
}

func (r *TransactionRepo) ListByActor(actorID string, kind models.ActorKind) ([]models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Transaction
	// Ledger order is append order; return newest first.
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		tx := r.s.ledger[i]
		if tx.ActorID == actorID && tx.ActorKind == kind {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *TransactionRepo) SumByActor(actorID string, kind models.ActorKind) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, tx := range r.s.ledger {
		if tx.ActorID == actorID && tx.ActorKind == kind {
			total += tx.Amount
		}
	}
	return total, nil
}

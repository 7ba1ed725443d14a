package wallet

import (
	"errors"
	"fmt"
	"time"

	"fixhub/database/repository"
	accountRepo "fixhub/database/repository/account"
	transactionRepo "fixhub/database/repository/transaction"
	"fixhub/models"
	"fixhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWalletService implements WalletService. The wallet holds platform
// credit only; it is funded through the Charger and drained exclusively by
// the request protocols.
type DefaultWalletService struct {
	Accounts accountRepo.AccountRepository
	Ledger   transactionRepo.TransactionRepository
	Charger  Charger
}

func (s *DefaultWalletService) Balance(actorID string, kind models.ActorKind) (int64, error) {
	account, err := s.account(actorID, kind)
	if err != nil {
		return 0, err
	}
	return account.WalletBalance, nil
}

func (s *DefaultWalletService) Transactions(actorID string, kind models.ActorKind) ([]models.Transaction, error) {
	if _, err := s.account(actorID, kind); err != nil {
		return nil, err
	}
	return s.Ledger.ListByActor(actorID, kind)
}

// TopUp charges the external payment method first and credits the wallet
// once the charge settles. A credit that fails after a successful charge is
// logged for reconciliation rather than silently dropped.
func (s *DefaultWalletService) TopUp(actorID string, kind models.ActorKind, in TopUpInput) (*TopUpResult, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	account, err := s.account(actorID, kind)
	if err != nil {
		return nil, err
	}

	ref, err := s.Charger.Charge(in.Amount, in.PaymentMethod, actorID)
	if err != nil {
		utils.GetLogger().Warn("wallet top-up charge failed",
			zap.String("actorId", actorID),
			zap.Int64("amount", in.Amount),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if err := s.Accounts.Credit(actorID, kind, in.Amount); err != nil {
		utils.GetLogger().Error("wallet credit failed after settled charge",
			zap.String("actorId", actorID),
			zap.String("paymentRef", ref),
			zap.Int64("amount", in.Amount),
			zap.Error(err))
		return nil, err
	}
	tx := &models.Transaction{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		ActorKind: kind,
		Amount:    in.Amount,
		Type:      models.TxCredit,
		CreatedAt: time.Now(),
	}
	if err := s.Ledger.Append(tx); err != nil {
		utils.GetLogger().Error("ledger append failed",
			zap.String("actorId", actorID),
			zap.String("type", string(models.TxCredit)),
			zap.Error(err))
	}

	return &TopUpResult{
		PaymentRef: ref,
		Amount:     in.Amount,
		NewBalance: account.WalletBalance + in.Amount,
	}, nil
}

func (s *DefaultWalletService) CheckConsistency(actorID string, kind models.ActorKind) (*ConsistencyReport, error) {
	account, err := s.account(actorID, kind)
	if err != nil {
		return nil, err
	}
	sum, err := s.Ledger.SumByActor(actorID, kind)
	if err != nil {
		return nil, err
	}
	return &ConsistencyReport{
		ActorID:    actorID,
		Balance:    account.WalletBalance,
		LedgerSum:  sum,
		Consistent: account.WalletBalance == sum,
	}, nil
}

func (s *DefaultWalletService) account(actorID string, kind models.ActorKind) (*models.Account, error) {
	switch kind {
	case models.ActorProvider:
		p, err := s.Accounts.GetProvider(actorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &p.Account, nil
	default:
		c, err := s.Accounts.GetClient(actorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &c.Account, nil
	}
}

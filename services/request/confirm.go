package request

import (
	"context"
	"errors"
	"fmt"

	"fixhub/database/repository"
	"fixhub/models"
	"fixhub/utils"

	"go.uber.org/zap"
)

// Confirm runs the confirmation protocol: the client locks in the provider
// who accepted. Structurally identical to Accept: a conditional wallet debit
// followed by a conditional accepted→confirmed transition, with the debit
// credited back if the transition loses to a concurrent cancel or timeout.
func (s *DefaultRequestService) Confirm(clientID, requestID string) (*models.ServiceRequest, error) {
	client, err := s.Accounts.GetClient(clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	req, err := s.Requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Reap first so a stale acceptance cannot be confirmed.
	req = s.maybeReap(req)
	if req.ClientID != clientID {
		return nil, ErrNotAuthorized
	}
	if req.Status != models.StatusAccepted {
		return nil, ErrStateConflict
	}
	providerID := req.ProviderID

	if client.WalletBalance < s.Cfg.ConfirmationFee {
		return nil, ErrInsufficientFunds
	}

	// Step 1: conditional debit.
	if err := s.Accounts.Debit(clientID, models.ActorClient, s.Cfg.ConfirmationFee); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}
	s.appendLedger(clientID, models.ActorClient, -s.Cfg.ConfirmationFee, models.TxConfirmationFee, requestID)

	// Step 2: conditional transition, compensating the debit on failure.
	confirmed, err := s.Requests.Confirm(requestID, clientID)
	if err != nil {
		s.compensateConfirmation(clientID, requestID)
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrRaceLost
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.Notifier.NotifyProvider(context.Background(), providerID,
		"You have been confirmed",
		fmt.Sprintf("The client confirmed you for their %s request. Head over on %s.",
			confirmed.Category, confirmed.ScheduledDate.Format("Mon, 2 Jan 15:04")))

	return confirmed, nil
}

// compensateConfirmation credits the confirmation fee back to the client.
func (s *DefaultRequestService) compensateConfirmation(clientID, requestID string) {
	if err := s.Accounts.Credit(clientID, models.ActorClient, s.Cfg.ConfirmationFee); err != nil {
		s.logCompensationFailure(clientID, requestID, err)
		return
	}
	s.appendLedger(clientID, models.ActorClient, s.Cfg.ConfirmationFee, models.TxRefund, requestID)
}

func (s *DefaultRequestService) logCompensationFailure(actorID, requestID string, err error) {
	utils.GetLogger().Error("compensation failed; ledger requires manual reconciliation",
		zap.String("actorId", actorID),
		zap.String("requestId", requestID),
		zap.Error(err))
}

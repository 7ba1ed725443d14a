package request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fixhub/database/repository"
	"fixhub/models"
)

// Cancel terminates a request, dispatching penalties and refunds on the
// current status and the cancelling actor's role:
//
//   - open, cancelled by the owning client (or admin): free.
//   - active, cancelled by client or admin: fixed penalty on the client,
//     acceptance fee refunded to the attached provider.
//   - active, cancelled by the provider: fixed penalty on the provider,
//     confirmation fee refunded to the client if it was paid.
//
// Penalties are unconditional debits; a balance may go negative.
func (s *DefaultRequestService) Cancel(actorID string, role models.Role, requestID, reason string) (*models.ServiceRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a cancellation reason is required", ErrValidation)
	}

	req, err := s.Requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req = s.maybeReap(req)

	switch role {
	case models.RoleClient:
		if req.ClientID != actorID {
			return nil, ErrNotAuthorized
		}
	case models.RoleProvider:
		if req.ProviderID != actorID {
			return nil, ErrNotAuthorized
		}
	case models.RoleAdmin:
	default:
		return nil, ErrNotAuthorized
	}
	if !req.Status.Cancellable() {
		return nil, ErrStateConflict
	}

	// Snapshot what the financial dispatch needs before the transition
	// clears the provider attachment.
	from := req.Status
	clientID := req.ClientID
	providerID := req.ProviderID
	confirmationFeePaid := req.ConfirmationFeePaid

	// Keyed on the status just read, so a concurrent confirm or reap makes
	// this a clean no-op conflict instead of a double cancellation.
	cancelled, err := s.Requests.Cancel(requestID, from, reason, role)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrStateConflict
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if from != models.StatusOpen {
		switch role {
		case models.RoleProvider:
			s.applyProviderCancellation(clientID, providerID, requestID, confirmationFeePaid)
		default:
			// Admin cancellations follow the client-side fee logic.
			s.applyClientCancellation(clientID, providerID, requestID)
		}
	}

	ctx := context.Background()
	if role == models.RoleProvider {
		s.Notifier.NotifyClient(ctx, clientID, "Request cancelled",
			fmt.Sprintf("The provider cancelled your %s request: %s", cancelled.Category, reason))
	} else if providerID != "" {
		s.Notifier.NotifyProvider(ctx, providerID, "Request cancelled",
			fmt.Sprintf("The %s request you accepted was cancelled: %s", cancelled.Category, reason))
	}

	return cancelled, nil
}

func (s *DefaultRequestService) applyClientCancellation(clientID, providerID, requestID string) {
	if err := s.Accounts.ApplyPenalty(clientID, models.ActorClient, s.Cfg.CancelPenalty); err != nil {
		s.logCompensationFailure(clientID, requestID, err)
	} else {
		s.appendLedger(clientID, models.ActorClient, -s.Cfg.CancelPenalty, models.TxPenalty, requestID)
	}
	if providerID == "" {
		return
	}
	if err := s.Accounts.Credit(providerID, models.ActorProvider, s.Cfg.AcceptanceFee); err != nil {
		s.logCompensationFailure(providerID, requestID, err)
		return
	}
	s.appendLedger(providerID, models.ActorProvider, s.Cfg.AcceptanceFee, models.TxRefund, requestID)
}

func (s *DefaultRequestService) applyProviderCancellation(clientID, providerID, requestID string, confirmationFeePaid bool) {
	if err := s.Accounts.ApplyPenalty(providerID, models.ActorProvider, s.Cfg.CancelPenalty); err != nil {
		s.logCompensationFailure(providerID, requestID, err)
	} else {
		s.appendLedger(providerID, models.ActorProvider, -s.Cfg.CancelPenalty, models.TxPenalty, requestID)
	}
	if err := s.Accounts.IncrementCancellationCount(providerID); err != nil {
		s.logCompensationFailure(providerID, requestID, err)
	}
	if !confirmationFeePaid {
		return
	}
	if err := s.Accounts.Credit(clientID, models.ActorClient, s.Cfg.ConfirmationFee); err != nil {
		s.logCompensationFailure(clientID, requestID, err)
		return
	}
	s.appendLedger(clientID, models.ActorClient, s.Cfg.ConfirmationFee, models.TxRefund, requestID)
}

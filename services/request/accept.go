package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixhub/database/repository"
	"fixhub/models"
)

// Accept runs the acceptance protocol: a provider claims an open request.
//
// The protocol is two independent atomic steps with compensation, because
// the wallet and the request live in different records and the store offers
// no cross-record transaction:
//
//  1. Debit the acceptance fee and bump the daily counter, only if the
//     balance covers the fee and the counter is under cap.
//  2. Transition the request open→accepted, only if it is still open. When
//     another provider won the race, credit the fee back and return the
//     daily slot before reporting the loss.
func (s *DefaultRequestService) Accept(providerID, requestID string) (*models.ServiceRequest, error) {
	provider, err := s.Accounts.GetProvider(providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !provider.IsVerified {
		return nil, ErrProviderNotVerified
	}
	if !provider.IsAvailable {
		return nil, ErrProviderUnavailable
	}
	active, err := s.Requests.CountActiveByProvider(providerID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrActiveJobExists
	}

	req, err := s.Requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req = s.maybeReap(req)
	if req.Status != models.StatusOpen {
		return nil, ErrStateConflict
	}
	if req.Category != provider.Category {
		return nil, fmt.Errorf("%w: request is outside your category", ErrValidation)
	}

	now := time.Now()

	// The limiter counts per calendar day; reset an older day's counter
	// before checking. A non-matching precondition just means the counter
	// is already current.
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.Accounts.ResetDailyCountBefore(providerID, startOfDay); err != nil &&
		!errors.Is(err, repository.ErrConflict) {
		return nil, err
	}
	provider, err = s.Accounts.GetProvider(providerID)
	if err != nil {
		return nil, err
	}
	if provider.WalletBalance < s.Cfg.AcceptanceFee {
		return nil, ErrInsufficientFunds
	}
	if provider.DailyAcceptanceCount >= s.Cfg.DailyAcceptanceCap {
		return nil, ErrDailyLimitReached
	}

	// Step 1: fused conditional debit + limiter bump.
	if err := s.Accounts.AcceptanceDebit(providerID, s.Cfg.AcceptanceFee, s.Cfg.DailyAcceptanceCap, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Balance or counter moved between the read and the debit.
			current, ferr := s.Accounts.GetProvider(providerID)
			if ferr == nil && current.DailyAcceptanceCount >= s.Cfg.DailyAcceptanceCap {
				return nil, ErrDailyLimitReached
			}
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}
	s.appendLedger(providerID, models.ActorProvider, -s.Cfg.AcceptanceFee, models.TxAcceptanceFee, requestID)

	serviceCharge := s.Pricing.Charge(provider)

	// Step 2: conditional transition, compensating the debit on a lost race.
	accepted, err := s.Requests.Accept(requestID, providerID, serviceCharge, s.Cfg.AcceptanceFee, now)
	if err != nil {
		s.compensateAcceptance(providerID, requestID)
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrRaceLost
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if provider.TrialJobsLeft > 0 {
		// Flat-rate trial pricing was applied; consume the trial slot.
		if err := s.Accounts.ConsumeTrialJob(providerID); err != nil &&
			!errors.Is(err, repository.ErrConflict) {
			return nil, err
		}
	}

	s.Notifier.NotifyClient(context.Background(), accepted.ClientID,
		"A provider accepted your request",
		fmt.Sprintf("%s accepted your %s request. Confirm to lock them in.", provider.Name, accepted.Category))

	return accepted, nil
}

// compensateAcceptance undoes step 1 of the acceptance protocol: the fee is
// credited back and the daily slot returned, with a matching refund entry.
func (s *DefaultRequestService) compensateAcceptance(providerID, requestID string) {
	if err := s.Accounts.ReturnAcceptanceSlot(providerID, s.Cfg.AcceptanceFee); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// The day rolled over and the counter was reset; refund the fee
			// without touching a slot this debit no longer owns.
			err = s.Accounts.Credit(providerID, models.ActorProvider, s.Cfg.AcceptanceFee)
		}
		if err != nil {
			s.logCompensationFailure(providerID, requestID, err)
			return
		}
	}
	s.appendLedger(providerID, models.ActorProvider, s.Cfg.AcceptanceFee, models.TxRefund, requestID)
}

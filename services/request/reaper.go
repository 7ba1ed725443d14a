package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixhub/database/repository"
	"fixhub/models"
)

// maybeReap applies overdue lifecycle transitions to a request before it is
// acted on or returned to a caller. Two cases:
//
//   - accepted past the acceptance window: revert to open, refund the
//     provider's acceptance fee and return their daily slot.
//   - open past its scheduled date: mark expired.
//
// Every transition is guarded by a conditional update keyed on the stale
// state, so concurrent reaps of the same request settle on a single winner
// and the losers just observe the fresh document.
func (s *DefaultRequestService) maybeReap(req *models.ServiceRequest) *models.ServiceRequest {
	now := time.Now()

	switch req.Status {
	case models.StatusAccepted:
		if req.AcceptedAt == nil || now.Sub(*req.AcceptedAt) <= s.Cfg.AcceptanceTimeout {
			return req
		}
		cutoff := now.Add(-s.Cfg.AcceptanceTimeout)
		providerID := req.ProviderID
		reverted, err := s.Requests.RevertAcceptance(req.ID, cutoff)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// Someone else moved the request first. Use whatever it is now.
				if fresh, ferr := s.Requests.GetByID(req.ID); ferr == nil {
					return fresh
				}
			}
			return req
		}
		s.refundExpiredAcceptance(providerID, req.ID)
		ctx := context.Background()
		s.Notifier.NotifyProvider(ctx, providerID, "Acceptance expired",
			fmt.Sprintf("Your acceptance of the %s request timed out. The fee has been refunded.", reverted.Category))
		s.Notifier.NotifyClient(ctx, reverted.ClientID, "Request reopened",
			fmt.Sprintf("The provider did not follow through on your %s request. It is open again.", reverted.Category))
		return reverted

	case models.StatusOpen:
		if req.ScheduledDate.After(now) {
			return req
		}
		expired, err := s.Requests.Expire(req.ID, now)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				if fresh, ferr := s.Requests.GetByID(req.ID); ferr == nil {
					return fresh
				}
			}
			return req
		}
		return expired
	}

	return req
}

// refundExpiredAcceptance undoes the financial side of a timed-out
// acceptance. The slot return is guarded on count > 0; if the daily reset
// already zeroed the counter only the balance is restored.
func (s *DefaultRequestService) refundExpiredAcceptance(providerID, requestID string) {
	err := s.Accounts.ReturnAcceptanceSlot(providerID, s.Cfg.AcceptanceFee)
	if errors.Is(err, repository.ErrConflict) {
		err = s.Accounts.Credit(providerID, models.ActorProvider, s.Cfg.AcceptanceFee)
	}
	if err != nil {
		s.logCompensationFailure(providerID, requestID, err)
		return
	}
	s.appendLedger(providerID, models.ActorProvider, s.Cfg.AcceptanceFee, models.TxRefund, requestID)
}

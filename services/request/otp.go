package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fixhub/database/repository"
	"fixhub/models"
	"fixhub/utils"

	"go.uber.org/zap"
)

const otpLength = 6

// IssueStartOtp generates the code the client reads to the provider on site
// to prove work began. Only the assigned provider of a confirmed request may
// issue one; reissuing overwrites the previous code.
func (s *DefaultRequestService) IssueStartOtp(providerID, requestID string) (*models.ServiceRequest, error) {
	req, err := s.otpRequest(providerID, requestID, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateNumericOTP(otpLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	expires := time.Now().Add(s.Cfg.OtpTTL)
	updated, err := s.Requests.SetStartOtp(requestID, providerID, code, expires)
	if err != nil {
		return nil, s.mapConditionalErr(err)
	}

	s.Notifier.NotifyClient(context.Background(), req.ClientID, "Your start code",
		fmt.Sprintf("Share code %s with your provider when they arrive to start the %s job.", code, req.Category))
	return updated, nil
}

// SubmitStartOtp verifies the client's start code and moves the request to
// in_progress. The code is consumed and the verification happens in the same
// conditional update, so a code can never be spent twice.
func (s *DefaultRequestService) SubmitStartOtp(providerID, requestID, code string) (*models.ServiceRequest, error) {
	req, err := s.otpRequest(providerID, requestID, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	if err := checkOtp(req.StartOtp, req.StartOtpExpires, code); err != nil {
		return nil, err
	}

	updated, err := s.Requests.ConsumeStartOtp(requestID, providerID, code, time.Now())
	if err != nil {
		return nil, s.mapConditionalErr(err)
	}

	s.Notifier.NotifyClient(context.Background(), req.ClientID, "Work started",
		fmt.Sprintf("Your provider has started the %s job.", req.Category))
	return updated, nil
}

// IssueEndOtp generates the completion code for an in_progress request.
func (s *DefaultRequestService) IssueEndOtp(providerID, requestID string) (*models.ServiceRequest, error) {
	req, err := s.otpRequest(providerID, requestID, models.StatusInProgress)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateNumericOTP(otpLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	expires := time.Now().Add(s.Cfg.OtpTTL)
	updated, err := s.Requests.SetEndOtp(requestID, providerID, code, expires)
	if err != nil {
		return nil, s.mapConditionalErr(err)
	}

	s.Notifier.NotifyClient(context.Background(), req.ClientID, "Your completion code",
		fmt.Sprintf("Share code %s with your provider once you are satisfied the %s job is done.", code, req.Category))
	return updated, nil
}

// SubmitEndOtp verifies the completion code, closes the request and credits
// the provider's track record.
func (s *DefaultRequestService) SubmitEndOtp(providerID, requestID, code string) (*models.ServiceRequest, error) {
	req, err := s.otpRequest(providerID, requestID, models.StatusInProgress)
	if err != nil {
		return nil, err
	}
	if err := checkOtp(req.EndOtp, req.EndOtpExpires, code); err != nil {
		return nil, err
	}

	updated, err := s.Requests.ConsumeEndOtp(requestID, providerID, code, time.Now())
	if err != nil {
		return nil, s.mapConditionalErr(err)
	}

	// Completion is verified, so the job now counts toward the provider's
	// history even if this bookkeeping write has to be retried offline.
	if err := s.Accounts.IncrementJobsCompleted(providerID); err != nil {
		utils.GetLogger().Error("jobsCompleted increment failed",
			zap.String("providerId", providerID),
			zap.String("requestId", requestID),
			zap.Error(err))
	}

	ctx := context.Background()
	s.Notifier.NotifyClient(ctx, req.ClientID, "Job completed",
		fmt.Sprintf("Your %s request is complete. You can now leave a review.", req.Category))
	s.Notifier.NotifyProvider(ctx, providerID, "Job completed",
		fmt.Sprintf("The %s job has been verified as complete.", req.Category))
	return updated, nil
}

// otpRequest loads the request and runs the shared gate checks: the caller
// must be the assigned provider and the request must sit in want.
func (s *DefaultRequestService) otpRequest(providerID, requestID string, want models.RequestStatus) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req = s.maybeReap(req)
	if req.ProviderID != providerID {
		return nil, ErrNotAuthorized
	}
	if req.Status != want {
		return nil, ErrStateConflict
	}
	return req, nil
}

// checkOtp classifies a submitted code against the stored secret. The store
// still enforces the exact match on consumption; this pre-read exists only
// to give callers a precise error.
func checkOtp(stored string, expires *time.Time, code string) error {
	if stored == "" || expires == nil {
		return ErrOtpNotIssued
	}
	if time.Now().After(*expires) {
		return ErrOtpExpired
	}
	if stored != code {
		return ErrOtpMismatch
	}
	return nil
}

func (s *DefaultRequestService) mapConditionalErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrStateConflict
	default:
		return err
	}
}

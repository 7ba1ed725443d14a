package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fixhub/config"
	"fixhub/database/repository"
	accountRepo "fixhub/database/repository/account"
	requestRepo "fixhub/database/repository/request"
	transactionRepo "fixhub/database/repository/transaction"
	"fixhub/models"
	"fixhub/services/notification"
	"fixhub/services/pricing"
	"fixhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultRequestService implements RequestService.
type DefaultRequestService struct {
	Requests requestRepo.RequestRepository
	Accounts accountRepo.AccountRepository
	Ledger   transactionRepo.TransactionRepository
	Pricing  *pricing.Calculator
	Notifier notification.Service
	Cfg      config.Engine
}

func (s *DefaultRequestService) Create(clientID string, in CreateRequestInput) (*models.ServiceRequest, error) {
	if strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if strings.TrimSpace(in.ProblemDescription) == "" {
		return nil, fmt.Errorf("%w: problemDescription is required", ErrValidation)
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if in.ScheduledDate.IsZero() || in.ScheduledDate.Before(time.Now()) {
		return nil, fmt.Errorf("%w: scheduledDate must be in the future", ErrValidation)
	}
	if _, err := s.Accounts.GetClient(clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	req := &models.ServiceRequest{
		ID:                 uuid.New().String(),
		ClientID:           clientID,
		Category:           strings.ToLower(strings.TrimSpace(in.Category)),
		ProblemDescription: in.ProblemDescription,
		Location:           in.Location,
		Coordinates:        in.Coordinates,
		ScheduledDate:      in.ScheduledDate,
		Status:             models.StatusOpen,
		CreatedAt:          time.Now(),
	}
	if err := s.Requests.Create(req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

func (s *DefaultRequestService) GetByID(actorID string, role models.Role, id string) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req = s.maybeReap(req)

	switch {
	case role == models.RoleAdmin:
	case role == models.RoleClient && req.ClientID == actorID:
	case role == models.RoleProvider && req.ProviderID == actorID:
	case role == models.RoleProvider && req.Status == models.StatusOpen:
		// Providers may inspect open requests surfaced by the feed.
	default:
		return nil, ErrNotAuthorized
	}
	return req, nil
}

func (s *DefaultRequestService) ListForClient(clientID string) ([]models.ServiceRequest, error) {
	reqs, err := s.Requests.ListByClient(clientID, false)
	if err != nil {
		return nil, err
	}
	out := make([]models.ServiceRequest, 0, len(reqs))
	for i := range reqs {
		out = append(out, *s.maybeReap(&reqs[i]))
	}
	return out, nil
}

func (s *DefaultRequestService) ListForProvider(providerID string) ([]models.ServiceRequest, error) {
	reqs, err := s.Requests.ListByProvider(providerID, false)
	if err != nil {
		return nil, err
	}
	out := make([]models.ServiceRequest, 0, len(reqs))
	for i := range reqs {
		reaped := s.maybeReap(&reqs[i])
		// A reverted acceptance no longer belongs to this provider.
		if reaped.ProviderID != providerID {
			continue
		}
		out = append(out, *reaped)
	}
	return out, nil
}

func (s *DefaultRequestService) Archive(actorID string, role models.Role, requestID string) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch role {
	case models.RoleClient:
		if req.ClientID != actorID {
			return nil, ErrNotAuthorized
		}
	case models.RoleProvider:
		if req.ProviderID != actorID {
			return nil, ErrNotAuthorized
		}
	default:
		return nil, ErrNotAuthorized
	}

	archived, err := s.Requests.Archive(requestID, role)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: only terminal requests can be archived", ErrStateConflict)
		}
		return nil, err
	}
	return archived, nil
}

// appendLedger records a wallet movement; a straggling ledger write must not
// fail the protocol that already moved the balance.
func (s *DefaultRequestService) appendLedger(actorID string, kind models.ActorKind, amount int64, txType models.TransactionType, requestID string) {
	tx := &models.Transaction{
		ID:        uuid.New().String(),
		ActorID:   actorID,
		ActorKind: kind,
		Amount:    amount,
		Type:      txType,
		RequestID: requestID,
		CreatedAt: time.Now(),
	}
	if err := s.Ledger.Append(tx); err != nil {
		utils.GetLogger().Error("ledger append failed",
			zap.String("actorId", actorID),
			zap.String("type", string(txType)),
			zap.Int64("amount", amount),
			zap.Error(err))
	}
}

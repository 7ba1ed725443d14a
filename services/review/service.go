// Package review lets clients rate providers after verified completion and
// keeps each provider's average rating current for the pricing multiplier.
package review

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fixhub/database/repository"
	accountRepo "fixhub/database/repository/account"
	requestRepo "fixhub/database/repository/request"
	reviewRepo "fixhub/database/repository/review"
	"fixhub/models"
	"fixhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("request not found")
	ErrNotAuthorized = errors.New("only the requesting client may review")
	ErrNotCompleted  = errors.New("only completed requests can be reviewed")
	ErrAlreadyExists = errors.New("this request has already been reviewed")
	ErrValidation    = errors.New("invalid review input")
)

// CreateReviewInput is the client's review payload.
type CreateReviewInput struct {
	RequestID string `json:"requestId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReviewService records reviews and exposes a provider's review feed.
type ReviewService interface {
	Create(clientID string, in CreateReviewInput) (*models.Review, error)
	ListForProvider(providerID string) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Reviews  reviewRepo.ReviewRepository
	Requests requestRepo.RequestRepository
	Accounts accountRepo.AccountRepository
}

func (s *DefaultReviewService) Create(clientID string, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if strings.TrimSpace(in.RequestID) == "" {
		return nil, fmt.Errorf("%w: requestId is required", ErrValidation)
	}

	req, err := s.Requests.GetByID(in.RequestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.ClientID != clientID {
		return nil, ErrNotAuthorized
	}
	if req.Status != models.StatusCompleted {
		return nil, ErrNotCompleted
	}
	if exists, err := s.Reviews.ExistsForRequest(in.RequestID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrAlreadyExists
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		RequestID:  in.RequestID,
		ClientID:   clientID,
		ProviderID: req.ProviderID,
		Rating:     float64(in.Rating),
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  time.Now(),
	}
	if err := s.Reviews.Create(review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	s.recomputeRating(req.ProviderID)
	return review, nil
}

func (s *DefaultReviewService) ListForProvider(providerID string) ([]models.Review, error) {
	return s.Reviews.ListByProvider(providerID)
}

// recomputeRating refreshes the provider's stored average from the review
// store. A failure here leaves the old average in place, which the next
// review corrects.
func (s *DefaultReviewService) recomputeRating(providerID string) {
	avg, count, err := s.Reviews.AverageForProvider(providerID)
	if err != nil || count == 0 {
		if err != nil {
			utils.GetLogger().Error("rating recompute failed",
				zap.String("providerId", providerID), zap.Error(err))
		}
		return
	}
	rounded := math.Round(avg*10) / 10
	if err := s.Accounts.SetRating(providerID, rounded); err != nil {
		utils.GetLogger().Error("rating update failed",
			zap.String("providerId", providerID), zap.Error(err))
	}
}

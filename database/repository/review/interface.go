package reviewRepo

import "fixhub/models"

// ReviewRepository defines data access for job reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	ListByProvider(providerID string) ([]models.Review, error)
	// AverageForProvider returns the mean rating and review count.
	AverageForProvider(providerID string) (float64, int64, error)
	ExistsForRequest(requestID string) (bool, error)
}

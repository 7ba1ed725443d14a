package memory

import "fixhub/models"

// ReviewRepo is the in-memory ReviewRepository.
type ReviewRepo struct {
	s *Store
}

func (r *ReviewRepo) Create(review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

func (r *ReviewRepo) ListByProvider(providerID string) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Review
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		if r.s.reviews[i].ProviderID == providerID {
			out = append(out, r.s.reviews[i])
		}
	}
	return out, nil
}

func (r *ReviewRepo) AverageForProvider(providerID string) (float64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum float64
	var count int64
	for _, rv := range r.s.reviews {
		if rv.ProviderID == providerID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

func (r *ReviewRepo) ExistsForRequest(requestID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.RequestID == requestID {
			return true, nil
		}
	}
	return false, nil
}

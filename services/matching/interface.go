package matching

import (
	"errors"

	"fixhub/models"
)

// ErrNotFound is returned when the requesting provider does not exist.
var ErrNotFound = errors.New("provider not found")

// Sort orders for the nearby feed.
const (
	SortDistance = "distance"
	SortSoonest  = "soonest"
	SortNewest   = "newest"
)

// Date windows for the nearby feed.
const (
	WindowToday    = "today"
	WindowTomorrow = "tomorrow"
	WindowWeek     = "week"
)

// NearbyOptions narrows and orders a provider's feed of open requests.
// Zero values mean all upcoming requests, sorted by distance.
type NearbyOptions struct {
	Window string `json:"window" form:"window"`
	Sort   string `json:"sort" form:"sort"`
}

// NearbyRequest is a feed entry: an open request annotated with its
// distance from the provider's base coordinates.
type NearbyRequest struct {
	models.ServiceRequest
	DistanceKm float64 `json:"distanceKm"`
}

// MarketStats summarizes provider supply around a client's location for one
// category, so clients can gauge what to expect before posting.
type MarketStats struct {
	Category        string  `json:"category"`
	ProviderCount   int     `json:"providerCount"`
	AvailableCount  int     `json:"availableCount"`
	AverageRating   float64 `json:"averageRating"`
	EstimatedCharge int64   `json:"estimatedCharge"`
}

// MatchingService surfaces open requests to providers and market supply
// stats to clients.
type MatchingService interface {
	// NearbyRequests returns the open requests a provider can take right
	// now. Providers that are unverified, unavailable or mid-job get an
	// empty feed rather than an error.
	NearbyRequests(providerID string, opts NearbyOptions) ([]NearbyRequest, error)
	// MarketStats aggregates providers of a category within radiusKm of the
	// given point. Results are cached briefly.
	MarketStats(category string, at models.Coordinates, radiusKm float64) (*MarketStats, error)
}

package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"fixhub/database/repository"
	accountRepo "fixhub/database/repository/account"
	requestRepo "fixhub/database/repository/request"
	"fixhub/models"
	"fixhub/services/pricing"
	"fixhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultMatchingService implements MatchingService over the request and
// account stores, with an optional Redis cache for the market-stats query.
type DefaultMatchingService struct {
	Requests requestRepo.RequestRepository
	Accounts accountRepo.AccountRepository
	Pricing  *pricing.Calculator
	Cache    *redis.Client
}

func (s *DefaultMatchingService) NearbyRequests(providerID string, opts NearbyOptions) ([]NearbyRequest, error) {
	provider, err := s.Accounts.GetProvider(providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// A provider who cannot accept anything gets an empty feed, not an
	// error; the feed answers "what could I take right now".
	if !provider.IsVerified || !provider.IsAvailable {
		return []NearbyRequest{}, nil
	}
	active, err := s.Requests.CountActiveByProvider(providerID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return []NearbyRequest{}, nil
	}

	from, to := windowBounds(opts.Window, time.Now())
	open, err := s.Requests.ListOpenByCategory(provider.Category, from, to)
	if err != nil {
		return nil, err
	}

	feed := make([]NearbyRequest, 0, len(open))
	for i := range open {
		req := open[i]
		dist := math.NaN()
		if provider.Coordinates != nil && req.Coordinates != nil {
			dist = utils.Haversine(
				provider.Coordinates.Lat, provider.Coordinates.Lng,
				req.Coordinates.Lat, req.Coordinates.Lng)
			if provider.ServiceRadiusKm > 0 && dist > provider.ServiceRadiusKm {
				continue
			}
		}
		feed = append(feed, NearbyRequest{ServiceRequest: req, DistanceKm: dist})
	}

	sortFeed(feed, opts.Sort)
	return feed, nil
}

// windowBounds maps a named window to a scheduled-date range. Requests whose
// scheduled date has already passed are never part of the feed, so the lower
// bound is always now.
func windowBounds(window string, now time.Time) (time.Time, time.Time) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch window {
	case WindowToday:
		return now, startOfDay.AddDate(0, 0, 1)
	case WindowTomorrow:
		return startOfDay.AddDate(0, 0, 1), startOfDay.AddDate(0, 0, 2)
	case WindowWeek:
		return now, startOfDay.AddDate(0, 0, 7)
	default:
		return now, time.Time{}
	}
}

func sortFeed(feed []NearbyRequest, order string) {
	switch order {
	case SortSoonest:
		sort.SliceStable(feed, func(i, j int) bool {
			return feed[i].ScheduledDate.Before(feed[j].ScheduledDate)
		})
	case SortNewest:
		sort.SliceStable(feed, func(i, j int) bool {
			return feed[i].CreatedAt.After(feed[j].CreatedAt)
		})
	default:
		// Distance, with unknown distances (missing coordinates) last.
		sort.SliceStable(feed, func(i, j int) bool {
			di, dj := feed[i].DistanceKm, feed[j].DistanceKm
			if math.IsNaN(dj) {
				return !math.IsNaN(di)
			}
			if math.IsNaN(di) {
				return false
			}
			return di < dj
		})
	}
}

func (s *DefaultMatchingService) MarketStats(category string, at models.Coordinates, radiusKm float64) (*MarketStats, error) {
	ctx := context.Background()
	key := statsCacheKey(category, at, radiusKm)

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var cached MarketStats
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return &cached, nil
			}
		}
	}

	providers, err := s.Accounts.ListProvidersByCategory(category)
	if err != nil {
		return nil, err
	}

	stats := &MarketStats{Category: category}
	var ratingSum float64
	var rated int
	var chargeSum int64
	for i := range providers {
		p := &providers[i]
		if !p.IsVerified {
			continue
		}
		if p.Coordinates == nil ||
			utils.Haversine(at.Lat, at.Lng, p.Coordinates.Lat, p.Coordinates.Lng) > radiusKm {
			continue
		}
		stats.ProviderCount++
		if p.IsAvailable {
			stats.AvailableCount++
		}
		if p.Rating > 0 {
			ratingSum += p.Rating
			rated++
		}
		chargeSum += s.Pricing.Charge(p)
	}
	if rated > 0 {
		stats.AverageRating = math.Round(ratingSum/float64(rated)*10) / 10
	}
	if stats.ProviderCount > 0 {
		stats.EstimatedCharge = chargeSum / int64(stats.ProviderCount)
	}

	if s.Cache != nil {
		if raw, jerr := json.Marshal(stats); jerr == nil {
			if err := s.Cache.Set(ctx, key, raw, utils.MarketStatsCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("market stats cache write failed",
					zap.String("key", key), zap.Error(err))
			}
		}
	}
	return stats, nil
}

// statsCacheKey buckets coordinates to ~1km so nearby lookups share entries.
func statsCacheKey(category string, at models.Coordinates, radiusKm float64) string {
	return fmt.Sprintf("%s%s:%.2f:%.2f:%.0f",
		utils.MarketStatsCachePrefix, category, at.Lat, at.Lng, radiusKm)
}

package matching

import (
	"errors"
	"testing"
	"time"

	"fixhub/config"
	"fixhub/database/repository/memory"
	"fixhub/models"
	"fixhub/services/pricing"
)

func newService(t *testing.T) (*memory.Store, *DefaultMatchingService) {
	t.Helper()
	store := memory.NewStore()
	cfg := config.Engine{
		RatingCoefficient:     0.10,
		ExperienceCoefficient: 0.05,
		MaxMultiplier:         3.0,
		BaseRates:             map[string]int64{"plumbing": 500},
		DefaultBaseRate:       400,
	}
	return store, &DefaultMatchingService{
		Requests: store.Requests(),
		Accounts: store.Accounts(),
		Pricing:  pricing.NewCalculator(cfg),
	}
}

func seedProvider(t *testing.T, store *memory.Store, id string, mods ...func(*models.Provider)) {
	t.Helper()
	p := &models.Provider{
		Account: models.Account{
			ID:    id,
			Email: id + "@test.local",
			Role:  models.RoleProvider,
		},
		Category:        "plumbing",
		IsVerified:      true,
		IsAvailable:     true,
		Coordinates:     &models.Coordinates{Lat: -1.2864, Lng: 36.8172},
		ServiceRadiusKm: 20,
	}
	for _, mod := range mods {
		mod(p)
	}
	if err := store.Accounts().CreateProvider(p); err != nil {
		t.Fatalf("seed provider: %v", err)
	}
}

func seedOpen(t *testing.T, store *memory.Store, id string, schedule time.Time, coords *models.Coordinates) {
	t.Helper()
	err := store.Requests().Create(&models.ServiceRequest{
		ID:                 id,
		ClientID:           "c1",
		Category:           "plumbing",
		ProblemDescription: "blocked drain",
		Location:           "somewhere",
		Coordinates:        coords,
		ScheduledDate:      schedule,
		Status:             models.StatusOpen,
		CreatedAt:          time.Now(),
	})
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
}

func TestNearbyFiltersByRadius(t *testing.T) {
	store, svc := newService(t)
	seedProvider(t, store, "p1")
	tomorrow := time.Now().Add(24 * time.Hour)
	// Within radius (same neighbourhood) and outside (Mombasa, ~440 km).
	seedOpen(t, store, "near", tomorrow, &models.Coordinates{Lat: -1.30, Lng: 36.82})
	seedOpen(t, store, "far", tomorrow, &models.Coordinates{Lat: -4.0435, Lng: 39.6682})

	feed, err := svc.NearbyRequests("p1", NearbyOptions{})
	if err != nil {
		t.Fatalf("NearbyRequests: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != "near" {
		t.Fatalf("feed = %+v, want only the nearby request", feed)
	}
	if feed[0].DistanceKm <= 0 || feed[0].DistanceKm > 20 {
		t.Errorf("distance = %f, want within the 20 km radius", feed[0].DistanceKm)
	}
}

func TestNearbyEmptyForIneligibleProvider(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*models.Provider)
	}{
		{"unverified", func(p *models.Provider) { p.IsVerified = false }},
		{"unavailable", func(p *models.Provider) { p.IsAvailable = false }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, svc := newService(t)
			seedProvider(t, store, "p1", tc.mod)
			seedOpen(t, store, "r1", time.Now().Add(24*time.Hour), &models.Coordinates{Lat: -1.30, Lng: 36.82})

			feed, err := svc.NearbyRequests("p1", NearbyOptions{})
			if err != nil {
				t.Fatalf("NearbyRequests: %v", err)
			}
			if len(feed) != 0 {
				t.Errorf("feed has %d entries, want 0", len(feed))
			}
		})
	}
}

func TestNearbyEmptyWhileOnAJob(t *testing.T) {
	store, svc := newService(t)
	seedProvider(t, store, "p1")
	seedOpen(t, store, "r1", time.Now().Add(24*time.Hour), &models.Coordinates{Lat: -1.30, Lng: 36.82})
	err := store.Requests().Create(&models.ServiceRequest{
		ID:            "active",
		ClientID:      "c1",
		ProviderID:    "p1",
		Category:      "plumbing",
		ScheduledDate: time.Now().Add(2 * time.Hour),
		Status:        models.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("seed active request: %v", err)
	}

	feed, err := svc.NearbyRequests("p1", NearbyOptions{})
	if err != nil {
		t.Fatalf("NearbyRequests: %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("feed has %d entries, want 0 while mid-job", len(feed))
	}
}

func TestNearbyWindowToday(t *testing.T) {
	store, svc := newService(t)
	seedProvider(t, store, "p1")
	coords := &models.Coordinates{Lat: -1.30, Lng: 36.82}
	seedOpen(t, store, "soon", time.Now().Add(time.Minute), coords)
	seedOpen(t, store, "next-week", time.Now().Add(6*24*time.Hour), coords)

	feed, err := svc.NearbyRequests("p1", NearbyOptions{Window: WindowToday})
	if err != nil {
		t.Fatalf("NearbyRequests: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != "soon" {
		t.Fatalf("today window = %+v, want only the request within the day", feed)
	}
}

func TestNearbySortSoonest(t *testing.T) {
	store, svc := newService(t)
	seedProvider(t, store, "p1")
	coords := &models.Coordinates{Lat: -1.30, Lng: 36.82}
	seedOpen(t, store, "later", time.Now().Add(48*time.Hour), coords)
	seedOpen(t, store, "sooner", time.Now().Add(2*time.Hour), coords)

	feed, err := svc.NearbyRequests("p1", NearbyOptions{Sort: SortSoonest})
	if err != nil {
		t.Fatalf("NearbyRequests: %v", err)
	}
	if len(feed) != 2 || feed[0].ID != "sooner" {
		t.Fatalf("feed order = %+v, want sooner first", feed)
	}
}

func TestNearbyUnknownProvider(t *testing.T) {
	_, svc := newService(t)
	if _, err := svc.NearbyRequests("ghost", NearbyOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMarketStatsAggregation(t *testing.T) {
	store, svc := newService(t)
	seedProvider(t, store, "p1", func(p *models.Provider) { p.Rating = 4 })
	seedProvider(t, store, "p2", func(p *models.Provider) {
		p.Rating = 5
		p.IsAvailable = false
	})
	// Verified but out of range.
	seedProvider(t, store, "p3", func(p *models.Provider) {
		p.Coordinates = &models.Coordinates{Lat: -4.0435, Lng: 39.6682}
	})
	// In range but unverified.
	seedProvider(t, store, "p4", func(p *models.Provider) { p.IsVerified = false })

	stats, err := svc.MarketStats("plumbing", models.Coordinates{Lat: -1.2864, Lng: 36.8172}, 15)
	if err != nil {
		t.Fatalf("MarketStats: %v", err)
	}
	if stats.ProviderCount != 2 {
		t.Errorf("providerCount = %d, want 2", stats.ProviderCount)
	}
	if stats.AvailableCount != 1 {
		t.Errorf("availableCount = %d, want 1", stats.AvailableCount)
	}
	if stats.AverageRating != 4.5 {
		t.Errorf("averageRating = %f, want 4.5", stats.AverageRating)
	}
	// p1: 500*1.10=550, p2: 500*1.20=600, mean 575.
	if stats.EstimatedCharge != 575 {
		t.Errorf("estimatedCharge = %d, want 575", stats.EstimatedCharge)
	}
}

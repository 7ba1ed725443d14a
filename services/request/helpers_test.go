package request

import (
	"context"
	"testing"
	"time"

	"fixhub/config"
	"fixhub/database/repository/memory"
	"fixhub/models"
	"fixhub/services/pricing"
)

type noopNotifier struct{}

func (noopNotifier) NotifyClient(ctx context.Context, clientID, subject, body string)     {}
func (noopNotifier) NotifyProvider(ctx context.Context, providerID, subject, body string) {}

func testEngine() config.Engine {
	return config.Engine{
		AcceptanceFee:         30,
		ConfirmationFee:       20,
		CancelPenalty:         50,
		DailyAcceptanceCap:    3,
		AcceptanceTimeout:     15 * time.Minute,
		OtpTTL:                10 * time.Minute,
		TrialJobs:             3,
		RatingCoefficient:     0.10,
		ExperienceCoefficient: 0.05,
		MaxMultiplier:         3.0,
		BaseRates:             map[string]int64{"plumbing": 500},
		DefaultBaseRate:       400,
	}
}

type fixture struct {
	store *memory.Store
	svc   *DefaultRequestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cfg := testEngine()
	return &fixture{
		store: store,
		svc: &DefaultRequestService{
			Requests: store.Requests(),
			Accounts: store.Accounts(),
			Ledger:   store.Transactions(),
			Pricing:  pricing.NewCalculator(cfg),
			Notifier: noopNotifier{},
			Cfg:      cfg,
		},
	}
}

func (f *fixture) seedClient(t *testing.T, id string, balance int64) {
	t.Helper()
	err := f.store.Accounts().CreateClient(&models.Client{
		Account: models.Account{
			ID:            id,
			Name:          "Client " + id,
			Email:         id + "@test.local",
			Role:          models.RoleClient,
			WalletBalance: balance,
		},
	})
	if err != nil {
		t.Fatalf("seed client %s: %v", id, err)
	}
}

func (f *fixture) seedProvider(t *testing.T, id string, balance int64, mods ...func(*models.Provider)) {
	t.Helper()
	p := &models.Provider{
		Account: models.Account{
			ID:            id,
			Name:          "Provider " + id,
			Email:         id + "@test.local",
			Role:          models.RoleProvider,
			WalletBalance: balance,
		},
		Category:    "plumbing",
		IsVerified:  true,
		IsAvailable: true,
	}
	for _, mod := range mods {
		mod(p)
	}
	if err := f.store.Accounts().CreateProvider(p); err != nil {
		t.Fatalf("seed provider %s: %v", id, err)
	}
}

func (f *fixture) seedOpenRequest(t *testing.T, id, clientID string, mods ...func(*models.ServiceRequest)) {
	t.Helper()
	req := &models.ServiceRequest{
		ID:                 id,
		ClientID:           clientID,
		Category:           "plumbing",
		ProblemDescription: "leaking kitchen sink",
		Location:           "12 Elm Street",
		ScheduledDate:      time.Now().Add(24 * time.Hour),
		Status:             models.StatusOpen,
		CreatedAt:          time.Now(),
	}
	for _, mod := range mods {
		mod(req)
	}
	if err := f.store.Requests().Create(req); err != nil {
		t.Fatalf("seed request %s: %v", id, err)
	}
}

func (f *fixture) request(t *testing.T, id string) *models.ServiceRequest {
	t.Helper()
	req, err := f.store.Requests().GetByID(id)
	if err != nil {
		t.Fatalf("get request %s: %v", id, err)
	}
	return req
}

func (f *fixture) clientBalance(t *testing.T, id string) int64 {
	t.Helper()
	c, err := f.store.Accounts().GetClient(id)
	if err != nil {
		t.Fatalf("get client %s: %v", id, err)
	}
	return c.WalletBalance
}

func (f *fixture) provider(t *testing.T, id string) *models.Provider {
	t.Helper()
	p, err := f.store.Accounts().GetProvider(id)
	if err != nil {
		t.Fatalf("get provider %s: %v", id, err)
	}
	return p
}

// checkLedger verifies the core wallet invariant: the signed sum of an
// actor's ledger entries equals their maintained balance.
func (f *fixture) checkLedger(t *testing.T, actorID string, kind models.ActorKind, balance, seeded int64) {
	t.Helper()
	sum, err := f.store.Transactions().SumByActor(actorID, kind)
	if err != nil {
		t.Fatalf("sum ledger for %s: %v", actorID, err)
	}
	if seeded+sum != balance {
		t.Errorf("ledger out of sync for %s: seeded %d + entries %d != balance %d",
			actorID, seeded, sum, balance)
	}
}

package request

import (
	"testing"
	"time"

	"fixhub/models"
)

func TestReaperRevertsTimedOutAcceptance(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70, func(p *models.Provider) {
		p.DailyAcceptanceCount = 1
	})
	f.acceptedRequest(t, "r1", "c1", "p1", 20*time.Minute)

	req, err := f.svc.GetByID("c1", models.RoleClient, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if req.Status != models.StatusOpen {
		t.Errorf("status = %s, want open", req.Status)
	}
	if req.AcceptanceFeePaid {
		t.Error("acceptanceFeePaid should be reset")
	}
	if req.ServiceCharge != 0 {
		t.Errorf("serviceCharge = %d, want cleared", req.ServiceCharge)
	}

	p := f.provider(t, "p1")
	if p.WalletBalance != 100 {
		t.Errorf("provider balance = %d, want 100 after refund", p.WalletBalance)
	}
	if p.DailyAcceptanceCount != 0 {
		t.Errorf("dailyAcceptanceCount = %d, want 0", p.DailyAcceptanceCount)
	}
	f.checkLedger(t, "p1", models.ActorProvider, p.WalletBalance, 70)
}

// Repeated reads of a timed-out acceptance must refund exactly once.
func TestReaperRevertIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70, func(p *models.Provider) {
		p.DailyAcceptanceCount = 1
	})
	f.acceptedRequest(t, "r1", "c1", "p1", 20*time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.GetByID("c1", models.RoleClient, "r1"); err != nil {
			t.Fatalf("GetByID #%d: %v", i+1, err)
		}
	}
	if got := f.provider(t, "p1").WalletBalance; got != 100 {
		t.Errorf("provider balance = %d, want exactly one refund to 100", got)
	}
	txs, err := f.store.Transactions().ListByActor("p1", models.ActorProvider)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("%d refund entries, want 1", len(txs))
	}
}

func TestReaperLeavesFreshAcceptanceAlone(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", 5*time.Minute)

	req, err := f.svc.GetByID("c1", models.RoleClient, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if req.Status != models.StatusAccepted {
		t.Errorf("status = %s, want accepted", req.Status)
	}
	if req.ProviderID != "p1" {
		t.Errorf("providerID = %q, want p1", req.ProviderID)
	}
}

func TestReaperExpiresOverdueOpenRequest(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedOpenRequest(t, "r1", "c1", func(r *models.ServiceRequest) {
		r.ScheduledDate = time.Now().Add(-time.Hour)
	})

	req, err := f.svc.GetByID("c1", models.RoleClient, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if req.Status != models.StatusExpired {
		t.Errorf("status = %s, want expired", req.Status)
	}
}

// A reverted acceptance disappears from the provider's list and reappears in
// the client's list as open.
func TestReaperRunsOnListReads(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70, func(p *models.Provider) {
		p.DailyAcceptanceCount = 1
	})
	f.acceptedRequest(t, "r1", "c1", "p1", 20*time.Minute)

	mine, err := f.svc.ListForProvider("p1")
	if err != nil {
		t.Fatalf("ListForProvider: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("provider list has %d entries, want 0 after revert", len(mine))
	}

	clientReqs, err := f.svc.ListForClient("c1")
	if err != nil {
		t.Fatalf("ListForClient: %v", err)
	}
	if len(clientReqs) != 1 || clientReqs[0].Status != models.StatusOpen {
		t.Errorf("client list = %+v, want one open request", clientReqs)
	}
}

package request

import (
	"errors"
	"testing"
	"time"

	"fixhub/models"
)

func (f *fixture) acceptedRequest(t *testing.T, id, clientID, providerID string, acceptedAgo time.Duration) {
	t.Helper()
	at := time.Now().Add(-acceptedAgo)
	f.seedOpenRequest(t, id, clientID, func(r *models.ServiceRequest) {
		r.Status = models.StatusAccepted
		r.ProviderID = providerID
		r.AcceptanceFeePaid = true
		r.ServiceCharge = 500
		r.PlatformFee = 30
		r.AcceptedAt = &at
	})
}

func TestConfirmDebitsFeeAndLocksProvider(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	confirmed, err := f.svc.Confirm("c1", "r1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}
	if !confirmed.ConfirmationFeePaid {
		t.Error("confirmationFeePaid not set")
	}
	if confirmed.AcceptedAt != nil {
		t.Error("acceptedAt should be cleared on confirmation")
	}
	if got := f.clientBalance(t, "c1"); got != 30 {
		t.Errorf("client balance = %d, want 30", got)
	}
	f.checkLedger(t, "c1", models.ActorClient, 30, 50)
}

func TestConfirmInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 10)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	if _, err := f.svc.Confirm("c1", "r1"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if got := f.request(t, "r1").Status; got != models.StatusAccepted {
		t.Errorf("request status = %s, want accepted", got)
	}
}

func TestConfirmRequiresOwningClient(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedClient(t, "c2", 50)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	if _, err := f.svc.Confirm("c2", "r1"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestConfirmRequiresAcceptedStatus(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedOpenRequest(t, "r1", "c1")

	if _, err := f.svc.Confirm("c1", "r1"); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("err = %v, want ErrStateConflict", err)
	}
}

// A confirmation arriving after the acceptance window must not land on the
// stale acceptance: the reaper reverts it first and the client keeps their
// fee.
func TestConfirmAfterAcceptanceTimeout(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70, func(p *models.Provider) {
		p.DailyAcceptanceCount = 1
	})
	f.acceptedRequest(t, "r1", "c1", "p1", 20*time.Minute)

	if _, err := f.svc.Confirm("c1", "r1"); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("err = %v, want ErrStateConflict", err)
	}

	req := f.request(t, "r1")
	if req.Status != models.StatusOpen {
		t.Errorf("request status = %s, want open after revert", req.Status)
	}
	if req.ProviderID != "" {
		t.Errorf("providerID = %q, want cleared", req.ProviderID)
	}
	if got := f.clientBalance(t, "c1"); got != 50 {
		t.Errorf("client balance = %d, want untouched 50", got)
	}
	p := f.provider(t, "p1")
	if p.WalletBalance != 100 {
		t.Errorf("provider balance = %d, want 100 after refund", p.WalletBalance)
	}
	if p.DailyAcceptanceCount != 0 {
		t.Errorf("dailyAcceptanceCount = %d, want 0 after slot return", p.DailyAcceptanceCount)
	}
}

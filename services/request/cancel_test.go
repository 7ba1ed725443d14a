package request

import (
	"errors"
	"testing"
	"time"

	"fixhub/models"
)

func TestCancelOpenRequestIsFree(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedOpenRequest(t, "r1", "c1")

	cancelled, err := f.svc.Cancel("c1", models.RoleClient, "r1", "found someone else")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if cancelled.CancellationReason != "found someone else" {
		t.Errorf("reason = %q", cancelled.CancellationReason)
	}
	if got := f.clientBalance(t, "c1"); got != 50 {
		t.Errorf("client balance = %d, want untouched 50", got)
	}
	txs, err := f.store.Transactions().ListByActor("c1", models.ActorClient)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("open cancel wrote %d ledger entries, want 0", len(txs))
	}
}

func TestCancelActiveByClientPenalizesAndRefundsProvider(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	cancelled, err := f.svc.Cancel("c1", models.RoleClient, "r1", "no longer needed")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if got := f.clientBalance(t, "c1"); got != 0 {
		t.Errorf("client balance = %d, want 0 after penalty", got)
	}
	if got := f.provider(t, "p1").WalletBalance; got != 100 {
		t.Errorf("provider balance = %d, want 100 after acceptance refund", got)
	}
	f.checkLedger(t, "c1", models.ActorClient, 0, 50)
	f.checkLedger(t, "p1", models.ActorProvider, 100, 70)
}

func TestCancelConfirmedByProviderRefundsClient(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.seedOpenRequest(t, "r1", "c1", func(r *models.ServiceRequest) {
		r.Status = models.StatusConfirmed
		r.ProviderID = "p1"
		r.AcceptanceFeePaid = true
		r.ConfirmationFeePaid = true
	})

	if _, err := f.svc.Cancel("p1", models.RoleProvider, "r1", "van broke down"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	p := f.provider(t, "p1")
	if p.WalletBalance != 20 {
		t.Errorf("provider balance = %d, want 20 after penalty", p.WalletBalance)
	}
	if p.CancellationCount != 1 {
		t.Errorf("cancellationCount = %d, want 1", p.CancellationCount)
	}
	if got := f.clientBalance(t, "c1"); got != 50 {
		t.Errorf("client balance = %d, want 50 after confirmation refund", got)
	}
	f.checkLedger(t, "p1", models.ActorProvider, 20, 70)
	f.checkLedger(t, "c1", models.ActorClient, 50, 30)
}

func TestCancelAcceptedByProviderNoClientRefund(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	if _, err := f.svc.Cancel("p1", models.RoleProvider, "r1", "overbooked"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := f.clientBalance(t, "c1"); got != 50 {
		t.Errorf("client balance = %d, want untouched 50", got)
	}
	if got := f.provider(t, "p1").WalletBalance; got != 20 {
		t.Errorf("provider balance = %d, want 20 after penalty", got)
	}
}

func TestCancelPenaltyMayGoNegative(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 10)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	if _, err := f.svc.Cancel("c1", models.RoleClient, "r1", "changed plans"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := f.clientBalance(t, "c1"); got != -40 {
		t.Errorf("client balance = %d, want -40", got)
	}
	f.checkLedger(t, "c1", models.ActorClient, -40, 10)
}

func TestCancelChecks(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedClient(t, "c2", 50)
	f.seedProvider(t, "p1", 70)
	f.seedProvider(t, "p2", 70)
	f.seedOpenRequest(t, "r1", "c1")
	f.seedOpenRequest(t, "r2", "c1", func(r *models.ServiceRequest) {
		r.Status = models.StatusCompleted
		r.ProviderID = "p1"
	})

	if _, err := f.svc.Cancel("c1", models.RoleClient, "r1", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty reason err = %v, want ErrValidation", err)
	}
	if _, err := f.svc.Cancel("c2", models.RoleClient, "r1", "not mine"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("foreign client err = %v, want ErrNotAuthorized", err)
	}
	if _, err := f.svc.Cancel("p2", models.RoleProvider, "r1", "not attached"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("unattached provider err = %v, want ErrNotAuthorized", err)
	}
	if _, err := f.svc.Cancel("c1", models.RoleClient, "r2", "too late"); !errors.Is(err, ErrStateConflict) {
		t.Errorf("terminal request err = %v, want ErrStateConflict", err)
	}
}

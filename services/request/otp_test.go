package request

import (
	"errors"
	"testing"
	"time"

	"fixhub/models"
)

func (f *fixture) confirmedRequest(t *testing.T, id, clientID, providerID string) {
	t.Helper()
	f.seedOpenRequest(t, id, clientID, func(r *models.ServiceRequest) {
		r.Status = models.StatusConfirmed
		r.ProviderID = providerID
		r.AcceptanceFeePaid = true
		r.ConfirmationFeePaid = true
		r.ServiceCharge = 500
	})
}

func TestOtpGatesDriveStartAndCompletion(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.confirmedRequest(t, "r1", "c1", "p1")

	if _, err := f.svc.IssueStartOtp("p1", "r1"); err != nil {
		t.Fatalf("IssueStartOtp: %v", err)
	}
	code := f.request(t, "r1").StartOtp
	if len(code) != 6 {
		t.Fatalf("start code = %q, want 6 digits", code)
	}

	started, err := f.svc.SubmitStartOtp("p1", "r1", code)
	if err != nil {
		t.Fatalf("SubmitStartOtp: %v", err)
	}
	if started.Status != models.StatusInProgress {
		t.Errorf("status = %s, want in_progress", started.Status)
	}
	if started.StartTime == nil {
		t.Error("startTime not recorded")
	}
	if started.StartOtp != "" {
		t.Error("start code not cleared after consumption")
	}

	if _, err := f.svc.IssueEndOtp("p1", "r1"); err != nil {
		t.Fatalf("IssueEndOtp: %v", err)
	}
	endCode := f.request(t, "r1").EndOtp

	completed, err := f.svc.SubmitEndOtp("p1", "r1", endCode)
	if err != nil {
		t.Fatalf("SubmitEndOtp: %v", err)
	}
	if completed.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}
	if completed.EndTime == nil {
		t.Error("endTime not recorded")
	}
	if got := f.provider(t, "p1").JobsCompleted; got != 1 {
		t.Errorf("jobsCompleted = %d, want 1", got)
	}
}

func TestSubmitStartOtpWrongCode(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.confirmedRequest(t, "r1", "c1", "p1")

	if _, err := f.svc.IssueStartOtp("p1", "r1"); err != nil {
		t.Fatalf("IssueStartOtp: %v", err)
	}
	if f.request(t, "r1").StartOtp == "000000" {
		t.Skip("generated code collides with the probe value")
	}
	if _, err := f.svc.SubmitStartOtp("p1", "r1", "000000"); !errors.Is(err, ErrOtpMismatch) {
		t.Fatalf("err = %v, want ErrOtpMismatch", err)
	}
	if got := f.request(t, "r1").Status; got != models.StatusConfirmed {
		t.Errorf("status = %s, want still confirmed", got)
	}
}

func TestSubmitStartOtpExpired(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.confirmedRequest(t, "r1", "c1", "p1")

	if _, err := f.store.Requests().SetStartOtp("r1", "p1", "123456", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetStartOtp: %v", err)
	}
	if _, err := f.svc.SubmitStartOtp("p1", "r1", "123456"); !errors.Is(err, ErrOtpExpired) {
		t.Fatalf("err = %v, want ErrOtpExpired", err)
	}
}

func TestSubmitStartOtpNotIssued(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.confirmedRequest(t, "r1", "c1", "p1")

	if _, err := f.svc.SubmitStartOtp("p1", "r1", "123456"); !errors.Is(err, ErrOtpNotIssued) {
		t.Fatalf("err = %v, want ErrOtpNotIssued", err)
	}
}

func TestOtpGatesRequireAssignedProvider(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.seedProvider(t, "p2", 70)
	f.confirmedRequest(t, "r1", "c1", "p1")

	if _, err := f.svc.IssueStartOtp("p2", "r1"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("IssueStartOtp err = %v, want ErrNotAuthorized", err)
	}
	if _, err := f.svc.IssueEndOtp("p2", "r1"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("IssueEndOtp err = %v, want ErrNotAuthorized", err)
	}
}

func TestOtpGatesRequireMatchingPhase(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	if _, err := f.svc.IssueStartOtp("p1", "r1"); !errors.Is(err, ErrStateConflict) {
		t.Errorf("IssueStartOtp on accepted err = %v, want ErrStateConflict", err)
	}
	if _, err := f.svc.IssueEndOtp("p1", "r1"); !errors.Is(err, ErrStateConflict) {
		t.Errorf("IssueEndOtp on accepted err = %v, want ErrStateConflict", err)
	}
}

func TestReissueStartOtpInvalidatesOldCode(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 30)
	f.seedProvider(t, "p1", 70)
	f.confirmedRequest(t, "r1", "c1", "p1")

	if _, err := f.store.Requests().SetStartOtp("r1", "p1", "111111", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("SetStartOtp: %v", err)
	}
	if _, err := f.svc.IssueStartOtp("p1", "r1"); err != nil {
		t.Fatalf("IssueStartOtp: %v", err)
	}
	if _, err := f.svc.SubmitStartOtp("p1", "r1", "111111"); !errors.Is(err, ErrOtpMismatch) {
		t.Fatalf("old code err = %v, want ErrOtpMismatch", err)
	}
}

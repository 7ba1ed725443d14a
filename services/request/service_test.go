package request

import (
	"errors"
	"testing"
	"time"

	"fixhub/models"
)

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)

	req, err := f.svc.Create("c1", CreateRequestInput{
		Category:           "Plumbing",
		ProblemDescription: "water heater not working",
		Location:           "4 Oak Avenue",
		ScheduledDate:      time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.ID == "" {
		t.Error("no id assigned")
	}
	if req.Status != models.StatusOpen {
		t.Errorf("status = %s, want open", req.Status)
	}
	if req.Category != "plumbing" {
		t.Errorf("category = %q, want lowercased plumbing", req.Category)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)

	base := CreateRequestInput{
		Category:           "plumbing",
		ProblemDescription: "broken tap",
		Location:           "4 Oak Avenue",
		ScheduledDate:      time.Now().Add(time.Hour),
	}
	cases := []struct {
		name string
		mod  func(*CreateRequestInput)
	}{
		{"missing category", func(in *CreateRequestInput) { in.Category = "" }},
		{"missing description", func(in *CreateRequestInput) { in.ProblemDescription = " " }},
		{"missing location", func(in *CreateRequestInput) { in.Location = "" }},
		{"past schedule", func(in *CreateRequestInput) { in.ScheduledDate = time.Now().Add(-time.Hour) }},
		{"zero schedule", func(in *CreateRequestInput) { in.ScheduledDate = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mod(&in)
			if _, err := f.svc.Create("c1", in); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestGetByIDAuthorization(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedClient(t, "c2", 50)
	f.seedProvider(t, "p1", 70)
	f.seedProvider(t, "p2", 70)
	f.acceptedRequest(t, "r1", "c1", "p1", time.Minute)

	if _, err := f.svc.GetByID("c1", models.RoleClient, "r1"); err != nil {
		t.Errorf("owning client: %v", err)
	}
	if _, err := f.svc.GetByID("p1", models.RoleProvider, "r1"); err != nil {
		t.Errorf("assigned provider: %v", err)
	}
	if _, err := f.svc.GetByID("admin", models.RoleAdmin, "r1"); err != nil {
		t.Errorf("admin: %v", err)
	}
	if _, err := f.svc.GetByID("c2", models.RoleClient, "r1"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("foreign client err = %v, want ErrNotAuthorized", err)
	}
	if _, err := f.svc.GetByID("p2", models.RoleProvider, "r1"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("unassigned provider on accepted err = %v, want ErrNotAuthorized", err)
	}

	// Any provider may inspect an open request.
	f.seedOpenRequest(t, "r2", "c1")
	if _, err := f.svc.GetByID("p2", models.RoleProvider, "r2"); err != nil {
		t.Errorf("provider viewing open request: %v", err)
	}
}

func TestArchiveTerminalOnly(t *testing.T) {
	f := newFixture(t)
	f.seedClient(t, "c1", 50)
	f.seedProvider(t, "p1", 70)
	f.seedOpenRequest(t, "r1", "c1")
	f.seedOpenRequest(t, "r2", "c1", func(r *models.ServiceRequest) {
		r.Status = models.StatusCompleted
		r.ProviderID = "p1"
	})

	if _, err := f.svc.Archive("c1", models.RoleClient, "r1"); !errors.Is(err, ErrStateConflict) {
		t.Errorf("archive open err = %v, want ErrStateConflict", err)
	}

	archived, err := f.svc.Archive("c1", models.RoleClient, "r2")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if !archived.ArchivedByClient {
		t.Error("archivedByClient not set")
	}
	if archived.ArchivedByProvider {
		t.Error("archivedByProvider set for a client archive")
	}

	clientReqs, err := f.svc.ListForClient("c1")
	if err != nil {
		t.Fatalf("ListForClient: %v", err)
	}
	for _, r := range clientReqs {
		if r.ID == "r2" {
			t.Error("archived request still in client list")
		}
	}

	// The provider's view is independent of the client's archive flag.
	provReqs, err := f.svc.ListForProvider("p1")
	if err != nil {
		t.Fatalf("ListForProvider: %v", err)
	}
	if len(provReqs) != 1 || provReqs[0].ID != "r2" {
		t.Errorf("provider list = %+v, want r2 still visible", provReqs)
	}
}

package account

import (
	"errors"
	"testing"

	"fixhub/config"
	"fixhub/database/repository/memory"
	"fixhub/models"
)

func newService(t *testing.T) *DefaultAccountService {
	t.Helper()
	store := memory.NewStore()
	return &DefaultAccountService{
		Accounts: store.Accounts(),
		Cfg:      config.Engine{TrialJobs: 3},
	}
}

func TestRegisterAndLoginClient(t *testing.T) {
	svc := newService(t)

	resp, err := svc.RegisterClient(RegisterClientInput{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("RegisterClient: %v", err)
	}
	if resp.Token == "" {
		t.Error("no token issued on registration")
	}
	if resp.Email != "jane@example.com" {
		t.Errorf("email = %q, want lowercased", resp.Email)
	}
	if resp.Role != models.RoleClient {
		t.Errorf("role = %s, want client", resp.Role)
	}

	login, err := svc.Login("jane@example.com", "correct horse", models.RoleClient)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.ID != resp.ID {
		t.Errorf("login id = %q, want %q", login.ID, resp.ID)
	}

	if _, err := svc.Login("jane@example.com", "wrong", models.RoleClient); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody@example.com", "whatever", models.RoleClient); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterClientDuplicateEmail(t *testing.T) {
	svc := newService(t)
	in := RegisterClientInput{Name: "Jane", Email: "jane@example.com", Password: "correct horse"}
	if _, err := svc.RegisterClient(in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.RegisterClient(in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(t)
	cases := []struct {
		name string
		in   RegisterClientInput
	}{
		{"missing name", RegisterClientInput{Email: "a@b.co", Password: "longenough"}},
		{"bad email", RegisterClientInput{Name: "Jane", Email: "not-an-email", Password: "longenough"}},
		{"short password", RegisterClientInput{Name: "Jane", Email: "a@b.co", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.RegisterClient(tc.in); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegisterProviderSeedsTrialJobs(t *testing.T) {
	svc := newService(t)
	resp, err := svc.RegisterProvider(RegisterProviderInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "longenough",
		Category: "Plumbing",
	})
	if err != nil {
		t.Fatalf("RegisterProvider: %v", err)
	}

	p, err := svc.GetProvider(resp.ID)
	if err != nil {
		t.Fatalf("GetProvider: %v", err)
	}
	if p.TrialJobsLeft != 3 {
		t.Errorf("trialJobsLeft = %d, want 3", p.TrialJobsLeft)
	}
	if p.Category != "plumbing" {
		t.Errorf("category = %q, want lowercased plumbing", p.Category)
	}
	if !p.IsAvailable {
		t.Error("new provider should start available")
	}
	if p.IsVerified {
		t.Error("new provider must not start verified")
	}
}

func TestProviderSettings(t *testing.T) {
	svc := newService(t)
	resp, err := svc.RegisterProvider(RegisterProviderInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "longenough",
		Category: "plumbing",
	})
	if err != nil {
		t.Fatalf("RegisterProvider: %v", err)
	}

	if err := svc.SetAvailability(resp.ID, false); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	updated, err := svc.UpdateSettings(resp.ID, ProviderSettingsInput{
		Coordinates:     &models.Coordinates{Lat: -1.3, Lng: 36.8},
		ServiceRadiusKm: 25,
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.IsAvailable {
		t.Error("availability should be off")
	}
	if updated.ServiceRadiusKm != 25 || updated.Coordinates == nil {
		t.Errorf("settings not applied: %+v", updated)
	}

	if _, err := svc.UpdateSettings(resp.ID, ProviderSettingsInput{ServiceRadiusKm: -1}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative radius err = %v, want ErrValidation", err)
	}
}

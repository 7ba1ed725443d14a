// Package account handles registration, authentication and provider
// profile settings for both actor kinds.
package account

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fixhub/config"
	"fixhub/database/repository"
	accountRepo "fixhub/database/repository/account"
	"fixhub/models"
	"fixhub/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("account not found")
	ErrValidation         = errors.New("invalid account input")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterClientInput is the client sign-up payload.
type RegisterClientInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// RegisterProviderInput is the provider sign-up payload.
type RegisterProviderInput struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Password        string              `json:"password"`
	Phone           string              `json:"phone"`
	Category        string              `json:"category"`
	ExperienceYears int                 `json:"experienceYears"`
	Coordinates     *models.Coordinates `json:"coordinates,omitempty"`
	ServiceRadiusKm float64             `json:"serviceRadiusKm"`
}

// ProviderSettingsInput updates a provider's service area.
type ProviderSettingsInput struct {
	Coordinates     *models.Coordinates `json:"coordinates"`
	ServiceRadiusKm float64             `json:"serviceRadiusKm"`
}

// AuthResponse carries the signed token and the actor's public identity.
type AuthResponse struct {
	ID    string      `json:"id"`
	Token string      `json:"token"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// AccountService manages registration, login and provider settings.
type AccountService interface {
	RegisterClient(in RegisterClientInput) (*AuthResponse, error)
	RegisterProvider(in RegisterProviderInput) (*AuthResponse, error)
	Login(email, password string, role models.Role) (*AuthResponse, error)
	GetClient(id string) (*models.Client, error)
	GetProvider(id string) (*models.Provider, error)
	SetAvailability(providerID string, available bool) error
	UpdateSettings(providerID string, in ProviderSettingsInput) (*models.Provider, error)
}

// DefaultAccountService implements AccountService.
type DefaultAccountService struct {
	Accounts accountRepo.AccountRepository
	Cfg      config.Engine
}

func (s *DefaultAccountService) RegisterClient(in RegisterClientInput) (*AuthResponse, error) {
	if err := validateSignup(in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}
	if existing, err := s.Accounts.GetClientByEmail(strings.ToLower(in.Email)); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	client := &models.Client{
		Account: models.Account{
			ID:           uuid.New().String(),
			Name:         strings.TrimSpace(in.Name),
			Email:        strings.ToLower(strings.TrimSpace(in.Email)),
			PasswordHash: string(hash),
			Phone:        strings.TrimSpace(in.Phone),
			Role:         models.RoleClient,
			CreatedAt:    time.Now(),
		},
	}
	if err := s.Accounts.CreateClient(client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.authResponse(&client.Account)
}

func (s *DefaultAccountService) RegisterProvider(in RegisterProviderInput) (*AuthResponse, error) {
	if err := validateSignup(in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if existing, err := s.Accounts.GetProviderByEmail(strings.ToLower(in.Email)); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	provider := &models.Provider{
		Account: models.Account{
			ID:           uuid.New().String(),
			Name:         strings.TrimSpace(in.Name),
			Email:        strings.ToLower(strings.TrimSpace(in.Email)),
			PasswordHash: string(hash),
			Phone:        strings.TrimSpace(in.Phone),
			Role:         models.RoleProvider,
			CreatedAt:    time.Now(),
		},
		Category:        strings.ToLower(strings.TrimSpace(in.Category)),
		ExperienceYears: in.ExperienceYears,
		Coordinates:     in.Coordinates,
		ServiceRadiusKm: in.ServiceRadiusKm,
		IsAvailable:     true,
		TrialJobsLeft:   s.Cfg.TrialJobs,
	}
	if err := s.Accounts.CreateProvider(provider); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.authResponse(&provider.Account)
}

func (s *DefaultAccountService) Login(email, password string, role models.Role) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account *models.Account
	switch role {
	case models.RoleProvider:
		p, err := s.Accounts.GetProviderByEmail(email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		account = &p.Account
	default:
		c, err := s.Accounts.GetClientByEmail(email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		account = &c.Account
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(account)
}

func (s *DefaultAccountService) GetClient(id string) (*models.Client, error) {
	c, err := s.Accounts.GetClient(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *DefaultAccountService) GetProvider(id string) (*models.Provider, error) {
	p, err := s.Accounts.GetProvider(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *DefaultAccountService) SetAvailability(providerID string, available bool) error {
	if err := s.Accounts.SetAvailability(providerID, available); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *DefaultAccountService) UpdateSettings(providerID string, in ProviderSettingsInput) (*models.Provider, error) {
	if in.ServiceRadiusKm < 0 {
		return nil, fmt.Errorf("%w: serviceRadiusKm cannot be negative", ErrValidation)
	}
	if err := s.Accounts.UpdateSettings(providerID, in.Coordinates, in.ServiceRadiusKm); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetProvider(providerID)
}

func (s *DefaultAccountService) authResponse(account *models.Account) (*AuthResponse, error) {
	token, err := utils.GenerateToken(account.ID, account.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResponse{
		ID:    account.ID,
		Token: token,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}, nil
}

func validateSignup(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

package memory

import (
	"time"

	"fixhub/database/repository"
	"fixhub/models"
)

// AccountRepo is the in-memory AccountRepository.
type AccountRepo struct {
	s *Store
}

func (r *AccountRepo) CreateClient(c *models.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.clients {
		if existing.Email == c.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *AccountRepo) CreateProvider(p *models.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.providers {
		if existing.Email == p.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *p
	r.s.providers[p.ID] = &cp
	return nil
}

func (r *AccountRepo) GetClient(id string) (*models.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *AccountRepo) GetProvider(id string) (*models.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *AccountRepo) GetClientByEmail(email string) (*models.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AccountRepo) GetProviderByEmail(email string) (*models.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.providers {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AccountRepo) ListProvidersByCategory(category string) ([]models.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Provider
	for _, p := range r.s.providers {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *AccountRepo) Credit(id string, kind models.ActorKind, amount int64) error {
	return r.mutate(id, kind, nil, func(a *models.Account) {
		a.WalletBalance += amount
	})
}

func (r *AccountRepo) Debit(id string, kind models.ActorKind, amount int64) error {
	return r.mutate(id, kind, func(a *models.Account) bool {
		return a.WalletBalance >= amount
	}, func(a *models.Account) {
		a.WalletBalance -= amount
	})
}

func (r *AccountRepo) ApplyPenalty(id string, kind models.ActorKind, amount int64) error {
	return r.mutate(id, kind, nil, func(a *models.Account) {
		a.WalletBalance -= amount
	})
}

func (r *AccountRepo) AcceptanceDebit(providerID string, fee int64, cap int, at time.Time) error {
	return r.mutateProvider(providerID, func(p *models.Provider) bool {
		return p.WalletBalance >= fee && p.DailyAcceptanceCount < cap
	}, func(p *models.Provider) {
		p.WalletBalance -= fee
		p.DailyAcceptanceCount++
		t := at
		p.LastAcceptanceDate = &t
	})
}

func (r *AccountRepo) ReturnAcceptanceSlot(providerID string, fee int64) error {
	return r.mutateProvider(providerID, func(p *models.Provider) bool {
		return p.DailyAcceptanceCount > 0
	}, func(p *models.Provider) {
		p.WalletBalance += fee
		p.DailyAcceptanceCount--
	})
}

func (r *AccountRepo) ResetDailyCountBefore(providerID string, startOfDay time.Time) error {
	return r.mutateProvider(providerID, func(p *models.Provider) bool {
		return p.LastAcceptanceDate != nil && p.LastAcceptanceDate.Before(startOfDay)
	}, func(p *models.Provider) {
		p.DailyAcceptanceCount = 0
	})
}

func (r *AccountRepo) ConsumeTrialJob(providerID string) error {
	return r.mutateProvider(providerID, func(p *models.Provider) bool {
		return p.TrialJobsLeft > 0
	}, func(p *models.Provider) {
		p.TrialJobsLeft--
	})
}

func (r *AccountRepo) IncrementJobsCompleted(providerID string) error {
	return r.mutateProvider(providerID, nil, func(p *models.Provider) {
		p.JobsCompleted++
	})
}

func (r *AccountRepo) IncrementCancellationCount(providerID string) error {
	return r.mutateProvider(providerID, nil, func(p *models.Provider) {
		p.CancellationCount++
	})
}

func (r *AccountRepo) SetRating(providerID string, rating float64) error {
	return r.mutateProvider(providerID, nil, func(p *models.Provider) {
		p.Rating = rating
	})
}

func (r *AccountRepo) SetAvailability(providerID string, available bool) error {
	return r.mutateProvider(providerID, nil, func(p *models.Provider) {
		p.IsAvailable = available
	})
}

func (r *AccountRepo) UpdateSettings(providerID string, coords *models.Coordinates, radiusKm float64) error {
	return r.mutateProvider(providerID, nil, func(p *models.Provider) {
		p.ServiceRadiusKm = radiusKm
		if coords != nil {
			c := *coords
			p.Coordinates = &c
		}
	})
}

func (r *AccountRepo) mutate(id string, kind models.ActorKind, pre func(*models.Account) bool, apply func(*models.Account)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var acct *models.Account
	if kind == models.ActorProvider {
		p, ok := r.s.providers[id]
		if !ok {
			return repository.ErrNotFound
		}
		acct = &p.Account
	} else {
		c, ok := r.s.clients[id]
		if !ok {
			return repository.ErrNotFound
		}
		acct = &c.Account
	}
	if pre != nil && !pre(acct) {
		return repository.ErrConflict
	}
	apply(acct)
	return nil
}

func (r *AccountRepo) mutateProvider(id string, pre func(*models.Provider) bool, apply func(*models.Provider)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return repository.ErrNotFound
	}
	if pre != nil && !pre(p) {
		return repository.ErrConflict
	}
	apply(p)
	return nil
}

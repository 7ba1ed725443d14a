package memory

import (
	"sort"
	"time"

	"fixhub/database/repository"
	"fixhub/models"
)

// RequestRepo is the in-memory RequestRepository.
type RequestRepo struct {
	s *Store
}

func (r *RequestRepo) Create(req *models.ServiceRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (r *RequestRepo) GetByID(id string) (*models.ServiceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneRequest(req), nil
}

func (r *RequestRepo) ListByClient(clientID string, includeArchived bool) ([]models.ServiceRequest, error) {
	return r.filter(func(req *models.ServiceRequest) bool {
		return req.ClientID == clientID && (includeArchived || !req.ArchivedByClient)
	}, byNewest), nil
}

func (r *RequestRepo) ListByProvider(providerID string, includeArchived bool) ([]models.ServiceRequest, error) {
	return r.filter(func(req *models.ServiceRequest) bool {
		return req.ProviderID == providerID && (includeArchived || !req.ArchivedByProvider)
	}, byNewest), nil
}

func (r *RequestRepo) ListOpenByCategory(category string, from, to time.Time) ([]models.ServiceRequest, error) {
	return r.filter(func(req *models.ServiceRequest) bool {
		if req.Category != category || req.Status != models.StatusOpen {
			return false
		}
		if !from.IsZero() && req.ScheduledDate.Before(from) {
			return false
		}
		if !to.IsZero() && !req.ScheduledDate.Before(to) {
			return false
		}
		return true
	}, bySoonest), nil
}

func (r *RequestRepo) CountActiveByProvider(providerID string) (int64, error) {
	var count int64
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.ProviderID == providerID && req.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (r *RequestRepo) Accept(id, providerID string, serviceCharge, platformFee int64, at time.Time) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusOpen
	}, func(req *models.ServiceRequest) {
		req.Status = models.StatusAccepted
		req.ProviderID = providerID
		req.AcceptanceFeePaid = true
		req.ServiceCharge = serviceCharge
		req.PlatformFee = platformFee
		t := at
		req.AcceptedAt = &t
	})
}

func (r *RequestRepo) Confirm(id, clientID string) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusAccepted && req.ClientID == clientID
	}, func(req *models.ServiceRequest) {
		req.Status = models.StatusConfirmed
		req.ConfirmationFeePaid = true
		req.AcceptedAt = nil
	})
}

func (r *RequestRepo) Cancel(id string, from models.RequestStatus, reason string, by models.Role) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == from
	}, func(req *models.ServiceRequest) {
		req.Status = models.StatusCancelled
		req.CancellationReason = reason
		req.CancelledBy = string(by)
		req.ProviderID = ""
		req.AcceptedAt = nil
		req.StartOtp = ""
		req.StartOtpExpires = nil
		req.EndOtp = ""
		req.EndOtpExpires = nil
	})
}

func (r *RequestRepo) RevertAcceptance(id string, acceptedBefore time.Time) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusAccepted &&
			req.AcceptedAt != nil && !req.AcceptedAt.After(acceptedBefore)
	}, func(req *models.ServiceRequest) {
		req.Status = models.StatusOpen
		req.AcceptanceFeePaid = false
		req.ProviderID = ""
		req.AcceptedAt = nil
		req.ServiceCharge = 0
		req.PlatformFee = 0
	})
}

func (r *RequestRepo) Expire(id string, scheduledBefore time.Time) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusOpen && req.ScheduledDate.Before(scheduledBefore)
	}, func(req *models.ServiceRequest) {
		req.Status = models.StatusExpired
	})
}

func (r *RequestRepo) SetStartOtp(id, providerID, otp string, expires time.Time) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusConfirmed && req.ProviderID == providerID
	}, func(req *models.ServiceRequest) {
		req.StartOtp = otp
		t := expires
		req.StartOtpExpires = &t
	})
}

func (r *RequestRepo) ConsumeStartOtp(id, providerID, otp string, at time.Time) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusConfirmed && req.ProviderID == providerID && req.StartOtp == otp
	}, func(req *models.ServiceRequest) {
		req.Status = models.StatusInProgress
		t := at
		req.StartTime = &t
		req.StartOtp = ""
		req.StartOtpExpires = nil
	})
}

func (r *RequestRepo) SetEndOtp(id, providerID, otp string, expires time.Time) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusInProgress && req.ProviderID == providerID
	}, func(req *models.ServiceRequest) {
		req.EndOtp = otp
		t := expires
		req.EndOtpExpires = &t
	})
}

func (r *RequestRepo) ConsumeEndOtp(id, providerID, otp string, at time.Time) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status == models.StatusInProgress && req.ProviderID == providerID && req.EndOtp == otp
	}, func(req *models.ServiceRequest) {
		req.Status = models.StatusCompleted
		t := at
		req.EndTime = &t
		req.EndOtp = ""
		req.EndOtpExpires = nil
	})
}

func (r *RequestRepo) Archive(id string, role models.Role) (*models.ServiceRequest, error) {
	return r.conditional(id, func(req *models.ServiceRequest) bool {
		return req.Status.Terminal()
	}, func(req *models.ServiceRequest) {
		if role == models.RoleProvider {
			req.ArchivedByProvider = true
		} else {
			req.ArchivedByClient = true
		}
	})
}

func (r *RequestRepo) conditional(id string, pre func(*models.ServiceRequest) bool, mutate func(*models.ServiceRequest)) (*models.ServiceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !pre(req) {
		return nil, repository.ErrConflict
	}
	mutate(req)
	return cloneRequest(req), nil
}

func (r *RequestRepo) filter(keep func(*models.ServiceRequest) bool, less func(a, b *models.ServiceRequest) bool) []models.ServiceRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.ServiceRequest
	for _, req := range r.s.requests {
		if keep(req) {
			out = append(out, *cloneRequest(req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

func byNewest(a, b *models.ServiceRequest) bool  { return a.CreatedAt.After(b.CreatedAt) }
func bySoonest(a, b *models.ServiceRequest) bool { return a.ScheduledDate.Before(b.ScheduledDate) }

package requestRepo

import (
	"time"

	"fixhub/models"
)

// RequestRepository defines methods for service-request data access.
//
// The conditional transition methods encode their precondition in the store
// filter so that check and mutation happen in one atomic step. They return
// repository.ErrConflict when the precondition no longer held and
// repository.ErrNotFound when the request does not exist at all.
type RequestRepository interface {
	// Create inserts a new request record.
	Create(req *models.ServiceRequest) error
	// GetByID retrieves a request by its unique ID.
	GetByID(id string) (*models.ServiceRequest, error)
	// ListByClient returns a client's requests, newest first.
	ListByClient(clientID string, includeArchived bool) ([]models.ServiceRequest, error)
	// ListByProvider returns a provider's requests, newest first.
	ListByProvider(providerID string, includeArchived bool) ([]models.ServiceRequest, error)
	// ListOpenByCategory returns open requests in a category, optionally
	// bounded to a scheduled-date window. Zero times mean unbounded.
	ListOpenByCategory(category string, from, to time.Time) ([]models.ServiceRequest, error)
	// CountActiveByProvider counts the provider's accepted/confirmed/in_progress requests.
	CountActiveByProvider(providerID string) (int64, error)

	// Accept transitions open→accepted, attaching the provider, fee flag,
	// charge snapshot and acceptedAt.
	Accept(id, providerID string, serviceCharge, platformFee int64, at time.Time) (*models.ServiceRequest, error)
	// Confirm transitions accepted→confirmed for the owning client.
	Confirm(id, clientID string) (*models.ServiceRequest, error)
	// Cancel transitions from the expected current status to cancelled,
	// clearing the provider attachment.
	Cancel(id string, from models.RequestStatus, reason string, by models.Role) (*models.ServiceRequest, error)
	// RevertAcceptance rolls accepted back to open when acceptedAt is older
	// than the cutoff. A no-op (ErrConflict) once any other transition ran.
	RevertAcceptance(id string, acceptedBefore time.Time) (*models.ServiceRequest, error)
	// Expire transitions open→expired when the scheduled date has passed.
	Expire(id string, scheduledBefore time.Time) (*models.ServiceRequest, error)

	// SetStartOtp stores a fresh start secret on a confirmed request,
	// overwriting any previous one.
	SetStartOtp(id, providerID, otp string, expires time.Time) (*models.ServiceRequest, error)
	// ConsumeStartOtp clears a matching start secret and transitions
	// confirmed→in_progress, recording startTime.
	ConsumeStartOtp(id, providerID, otp string, at time.Time) (*models.ServiceRequest, error)
	// SetEndOtp stores a fresh end secret on an in_progress request.
	SetEndOtp(id, providerID, otp string, expires time.Time) (*models.ServiceRequest, error)
	// ConsumeEndOtp clears a matching end secret and transitions
	// in_progress→completed, recording endTime.
	ConsumeEndOtp(id, providerID, otp string, at time.Time) (*models.ServiceRequest, error)

	// Archive soft-deletes a terminal request from the given role's views.
	Archive(id string, role models.Role) (*models.ServiceRequest, error)
}

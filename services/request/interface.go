package request

import (
	"fixhub/models"
	"time"
)

// CreateRequestInput is the client's new-request payload.
type CreateRequestInput struct {
	Category           string              `json:"category"`
	ProblemDescription string              `json:"problemDescription"`
	Location           string              `json:"location"`
	Coordinates        *models.Coordinates `json:"coordinates,omitempty"`
	ScheduledDate      time.Time           `json:"scheduledDate"`
}

// RequestService owns the request lifecycle: the state machine, the
// acceptance/confirmation sagas, cancellation, the OTP gates and the lazy
// timeout reaper.
type RequestService interface {
	Create(clientID string, in CreateRequestInput) (*models.ServiceRequest, error)
	GetByID(actorID string, role models.Role, id string) (*models.ServiceRequest, error)
	ListForClient(clientID string) ([]models.ServiceRequest, error)
	ListForProvider(providerID string) ([]models.ServiceRequest, error)

	Accept(providerID, requestID string) (*models.ServiceRequest, error)
	Confirm(clientID, requestID string) (*models.ServiceRequest, error)
	Cancel(actorID string, role models.Role, requestID, reason string) (*models.ServiceRequest, error)

	IssueStartOtp(providerID, requestID string) (*models.ServiceRequest, error)
	SubmitStartOtp(providerID, requestID, code string) (*models.ServiceRequest, error)
	IssueEndOtp(providerID, requestID string) (*models.ServiceRequest, error)
	SubmitEndOtp(providerID, requestID, code string) (*models.ServiceRequest, error)

	Archive(actorID string, role models.Role, requestID string) (*models.ServiceRequest, error)
}

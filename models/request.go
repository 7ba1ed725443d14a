package models

import "time"

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	StatusOpen       RequestStatus = "open"
	StatusAccepted   RequestStatus = "accepted"
	StatusConfirmed  RequestStatus = "confirmed"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
	StatusExpired    RequestStatus = "expired"
)

// Terminal reports whether no further transition is permitted out of s.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// Active reports whether s counts against a provider's single-active-job rule.
func (s RequestStatus) Active() bool {
	return s == StatusAccepted || s == StatusConfirmed || s == StatusInProgress
}

// Cancellable reports whether a request in s may still be cancelled.
func (s RequestStatus) Cancellable() bool {
	return s == StatusOpen || s.Active()
}

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// ServiceRequest is a client's posted job and the record every lifecycle
// protocol mutates. Status is the sole concurrency guard: every transition
// is a conditional update keyed on the expected current status.
type ServiceRequest struct {
	ID                 string        `bson:"id" json:"id"`
	ClientID           string        `bson:"clientId" json:"clientId"`
	ProviderID         string        `bson:"providerId,omitempty" json:"providerId,omitempty"`
	Category           string        `bson:"category" json:"category"`
	ProblemDescription string        `bson:"problemDescription" json:"problemDescription"`
	Location           string        `bson:"location" json:"location"`
	Coordinates        *Coordinates  `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	ScheduledDate      time.Time     `bson:"scheduledDate" json:"scheduledDate"`
	Status             RequestStatus `bson:"status" json:"status"`

	AcceptanceFeePaid   bool `bson:"acceptanceFeePaid" json:"acceptanceFeePaid"`
	ConfirmationFeePaid bool `bson:"confirmationFeePaid" json:"confirmationFeePaid"`

	CancellationReason string `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledBy        string `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`

	// Snapshotted at acceptance.
	ServiceCharge int64 `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	PlatformFee   int64 `bson:"platformFee,omitempty" json:"platformFee,omitempty"`

	// Transient single-use secrets; present only during their gate window.
	StartOtp        string     `bson:"startOtp,omitempty" json:"-"`
	StartOtpExpires *time.Time `bson:"startOtpExpires,omitempty" json:"-"`
	EndOtp          string     `bson:"endOtp,omitempty" json:"-"`
	EndOtpExpires   *time.Time `bson:"endOtpExpires,omitempty" json:"-"`

	StartTime *time.Time `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   *time.Time `bson:"endTime,omitempty" json:"endTime,omitempty"`

	// Soft-delete flags; do not affect the state machine.
	ArchivedByClient   bool `bson:"archivedByClient" json:"archivedByClient"`
	ArchivedByProvider bool `bson:"archivedByProvider" json:"archivedByProvider"`

	// Set iff status == accepted; drives the acceptance timeout.
	AcceptedAt *time.Time `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

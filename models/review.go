package models

import "time"

// Review is a client's rating of a completed job. Provider ratings are the
// simple running average of their reviews.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	RequestID  string    `bson:"requestId" json:"requestId"`
	ClientID   string    `bson:"clientId" json:"clientId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Rating     float64   `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

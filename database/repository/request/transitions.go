package requestRepo

import (
	"time"

	"fixhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoRequestRepo) Accept(id, providerID string, serviceCharge, platformFee int64, at time.Time) (*models.ServiceRequest, error) {
	filter := bson.M{"status": models.StatusOpen}
	update := bson.M{"$set": bson.M{
		"status":            models.StatusAccepted,
		"providerId":        providerID,
		"acceptanceFeePaid": true,
		"serviceCharge":     serviceCharge,
		"platformFee":       platformFee,
		"acceptedAt":        at,
	}}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) Confirm(id, clientID string) (*models.ServiceRequest, error) {
	filter := bson.M{
		"status":   models.StatusAccepted,
		"clientId": clientID,
	}
	update := bson.M{
		"$set":   bson.M{"status": models.StatusConfirmed, "confirmationFeePaid": true},
		"$unset": bson.M{"acceptedAt": ""},
	}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) Cancel(id string, from models.RequestStatus, reason string, by models.Role) (*models.ServiceRequest, error) {
	filter := bson.M{"status": from}
	update := bson.M{
		"$set": bson.M{
			"status":             models.StatusCancelled,
			"cancellationReason": reason,
			"cancelledBy":        string(by),
		},
		"$unset": bson.M{
			"providerId": "",
			"acceptedAt": "",
			"startOtp":   "",
			"endOtp":     "",
		},
	}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) RevertAcceptance(id string, acceptedBefore time.Time) (*models.ServiceRequest, error) {
	filter := bson.M{
		"status":     models.StatusAccepted,
		"acceptedAt": bson.M{"$lte": acceptedBefore},
	}
	update := bson.M{
		"$set": bson.M{
			"status":            models.StatusOpen,
			"acceptanceFeePaid": false,
		},
		"$unset": bson.M{
			"providerId":    "",
			"acceptedAt":    "",
			"serviceCharge": "",
			"platformFee":   "",
		},
	}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) Expire(id string, scheduledBefore time.Time) (*models.ServiceRequest, error) {
	filter := bson.M{
		"status":        models.StatusOpen,
		"scheduledDate": bson.M{"$lt": scheduledBefore},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusExpired}}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) SetStartOtp(id, providerID, otp string, expires time.Time) (*models.ServiceRequest, error) {
	filter := bson.M{
		"status":     models.StatusConfirmed,
		"providerId": providerID,
	}
	update := bson.M{"$set": bson.M{"startOtp": otp, "startOtpExpires": expires}}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) ConsumeStartOtp(id, providerID, otp string, at time.Time) (*models.ServiceRequest, error) {
	filter := bson.M{
		"status":     models.StatusConfirmed,
		"providerId": providerID,
		"startOtp":   otp,
	}
	update := bson.M{
		"$set":   bson.M{"status": models.StatusInProgress, "startTime": at},
		"$unset": bson.M{"startOtp": "", "startOtpExpires": ""},
	}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) SetEndOtp(id, providerID, otp string, expires time.Time) (*models.ServiceRequest, error) {
	filter := bson.M{
		"status":     models.StatusInProgress,
		"providerId": providerID,
	}
	update := bson.M{"$set": bson.M{"endOtp": otp, "endOtpExpires": expires}}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) ConsumeEndOtp(id, providerID, otp string, at time.Time) (*models.ServiceRequest, error) {
	filter := bson.M{
		"status":     models.StatusInProgress,
		"providerId": providerID,
		"endOtp":     otp,
	}
	update := bson.M{
		"$set":   bson.M{"status": models.StatusCompleted, "endTime": at},
		"$unset": bson.M{"endOtp": "", "endOtpExpires": ""},
	}
	return r.conditionalUpdate(id, filter, update)
}

func (r *MongoRequestRepo) Archive(id string, role models.Role) (*models.ServiceRequest, error) {
	field := "archivedByClient"
	if role == models.RoleProvider {
		field = "archivedByProvider"
	}
	filter := bson.M{"status": bson.M{"$in": []models.RequestStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusExpired,
	}}}
	update := bson.M{"$set": bson.M{field: true}}
	return r.conditionalUpdate(id, filter, update)
}

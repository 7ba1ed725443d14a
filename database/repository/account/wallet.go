package accountRepo

import (
	"time"

	"fixhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoAccountRepo) Credit(id string, kind models.ActorKind, amount int64) error {
	return r.guardedUpdate(r.collFor(kind), id,
		bson.M{},
		bson.M{"$inc": bson.M{"walletBalance": amount}})
}

func (r *MongoAccountRepo) Debit(id string, kind models.ActorKind, amount int64) error {
	return r.guardedUpdate(r.collFor(kind), id,
		bson.M{"walletBalance": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"walletBalance": -amount}})
}

func (r *MongoAccountRepo) ApplyPenalty(id string, kind models.ActorKind, amount int64) error {
	return r.guardedUpdate(r.collFor(kind), id,
		bson.M{},
		bson.M{"$inc": bson.M{"walletBalance": -amount}})
}

func (r *MongoAccountRepo) AcceptanceDebit(providerID string, fee int64, cap int, at time.Time) error {
	filter := bson.M{
		"walletBalance":        bson.M{"$gte": fee},
		"dailyAcceptanceCount": bson.M{"$lt": cap},
	}
	update := bson.M{
		"$inc": bson.M{"walletBalance": -fee, "dailyAcceptanceCount": 1},
		"$set": bson.M{"lastAcceptanceDate": at},
	}
	return r.guardedUpdate(r.providers, providerID, filter, update)
}

func (r *MongoAccountRepo) ReturnAcceptanceSlot(providerID string, fee int64) error {
	filter := bson.M{"dailyAcceptanceCount": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"walletBalance": fee, "dailyAcceptanceCount": -1}}
	return r.guardedUpdate(r.providers, providerID, filter, update)
}

func (r *MongoAccountRepo) ResetDailyCountBefore(providerID string, startOfDay time.Time) error {
	filter := bson.M{"lastAcceptanceDate": bson.M{"$lt": startOfDay}}
	update := bson.M{"$set": bson.M{"dailyAcceptanceCount": 0}}
	return r.guardedUpdate(r.providers, providerID, filter, update)
}

func (r *MongoAccountRepo) ConsumeTrialJob(providerID string) error {
	filter := bson.M{"trialJobsLeft": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"trialJobsLeft": -1}}
	return r.guardedUpdate(r.providers, providerID, filter, update)
}

func (r *MongoAccountRepo) IncrementJobsCompleted(providerID string) error {
	return r.guardedUpdate(r.providers, providerID,
		bson.M{},
		bson.M{"$inc": bson.M{"jobsCompleted": 1}})
}

func (r *MongoAccountRepo) IncrementCancellationCount(providerID string) error {
	return r.guardedUpdate(r.providers, providerID,
		bson.M{},
		bson.M{"$inc": bson.M{"cancellationCount": 1}})
}

func (r *MongoAccountRepo) SetRating(providerID string, rating float64) error {
	return r.guardedUpdate(r.providers, providerID,
		bson.M{},
		bson.M{"$set": bson.M{"rating": rating}})
}

func (r *MongoAccountRepo) SetAvailability(providerID string, available bool) error {
	return r.guardedUpdate(r.providers, providerID,
		bson.M{},
		bson.M{"$set": bson.M{"isAvailable": available}})
}

func (r *MongoAccountRepo) UpdateSettings(providerID string, coords *models.Coordinates, radiusKm float64) error {
	set := bson.M{"serviceRadiusKm": radiusKm}
	if coords != nil {
		set["coordinates"] = coords
	}
	return r.guardedUpdate(r.providers, providerID, bson.M{}, bson.M{"$set": set})
}

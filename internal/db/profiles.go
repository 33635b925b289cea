package db

import (
	"context"
	"errors"
	"time"
	"user_auth/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ProfilesCollection is the Mongo collection holding profile documents
const ProfilesCollection = "profiles"

// OpenMongo connects to the profile store and checks the primary is reachable
func OpenMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureProfileIndexes creates the unique index that limits each user to one profile
func EnsureProfileIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	return err
}

// ProfileStore is the Mongo-backed profile document store
type ProfileStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

// NewProfileStore creates a ProfileStore over coll; every call is bounded by timeout
func NewProfileStore(coll *mongo.Collection, timeout time.Duration) *ProfileStore {
	return &ProfileStore{coll: coll, timeout: timeout, now: time.Now}
}

// FindByUserID returns the profile of userID, nil if the user never saved one
func (s *ProfileStore) FindByUserID(ctx context.Context, userID uint) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	var p domain.Profile
	err := s.coll.FindOne(ctx, bson.M{"user_id": int64(userID)}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert creates or replaces the profile of userID in a single atomic
// findAndModify. Concurrent upserts for one user serialize and the last wins.
func (s *ProfileStore) Upsert(ctx context.Context, userID uint, upd domain.ProfileUpdate) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var p domain.Profile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"user_id": int64(userID)}, profileUpdateDoc(upd, s.now().UTC()), opts).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// profileUpdateDoc sets supplied fields and unsets omitted ones
func profileUpdateDoc(upd domain.ProfileUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	unset := bson.M{}
	if upd.Age != nil {
		set["age"] = *upd.Age
	} else {
		unset["age"] = ""
	}
	if upd.DOB != nil {
		set["dob"] = upd.DOB.UTC()
	} else {
		unset["dob"] = ""
	}
	if upd.Contact != nil {
		set["contact"] = *upd.Contact
	} else {
		unset["contact"] = ""
	}
	doc := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	return doc
}

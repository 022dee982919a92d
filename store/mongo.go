package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stanislausjustin/user-service/models"
)

// MongoStore is the MongoDB-backed user directory.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "personal_info.email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) Create(ctx context.Context, user *models.User) error {
	// check first so the common case gets the domain error even without
	// the unique index in place
	err := s.col.FindOne(ctx, bson.M{"personal_info.email": user.PersonalInfo.Email}).Err()
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if _, err := s.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"personal_info.email": email})
}

func (s *MongoStore) FindByEmailAndOTP(ctx context.Context, email, otp string, now time.Time) (*models.User, error) {
	return s.findOne(ctx, bson.M{
		"personal_info.email": email,
		"otp":                 otp,
		"otp_expires_at":      bson.M{"$gt": now},
	})
}

func (s *MongoStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*models.User, error) {
	set := bson.M{}
	if update.Name != nil {
		set["personal_info.name"] = *update.Name
	}
	if update.Address != nil {
		set["personal_info.address"] = *update.Address
	}
	if update.Phone != nil {
		set["personal_info.phone"] = *update.Phone
	}
	if update.SocialLinks != nil {
		set["social_links"] = *update.SocialLinks
	}
	if update.Status != nil {
		set["personal_info.status"] = *update.Status
	}
	if update.Roles != nil {
		set["personal_info.role"] = *update.Roles
	}
	if update.Verified != nil {
		set["is_verified"] = *update.Verified
	}

	doc := bson.M{}
	if len(set) > 0 {
		doc["$set"] = set
	}
	if update.ClearOTP {
		doc["$unset"] = bson.M{"otp": "", "otp_expires_at": ""}
	}
	if len(doc) == 0 {
		return s.FindByID(ctx, id)
	}

	var updated models.User
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		doc,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	// no existence check: deleting an unknown id succeeds
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

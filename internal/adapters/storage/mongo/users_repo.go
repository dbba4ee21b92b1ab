package mongo

import (
	"context"
	"time"

	"petvax-hub/internal/domain/users"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	FullName     string    `bson:"fullName"`
	Email        string    `bson:"email"`
	MobileNumber string    `bson:"mobileNumber"`
	ProfileImage string    `bson:"profileImage,omitempty"`
	Password     string    `bson:"password"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type UsersRepo struct {
	coll *mongo.Collection
}

func NewUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{coll: db.Collection(usersCollection)}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	if _, err := r.coll.InsertOne(ctx, toUserDoc(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return users.ErrEmailTaken
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UsersRepo) UpdateProfile(ctx context.Context, id string, patch users.ProfilePatch, at time.Time) (users.User, error) {
	set := bson.M{"updatedAt": at}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.MobileNumber != nil {
		set["mobileNumber"] = *patch.MobileNumber
	}
	if patch.ProfileImage != nil {
		set["profileImage"] = *patch.ProfileImage
	}

	var doc userDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, afterUpdate()).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, errors.Wrap(err, "update user")
	}
	return doc.toDomain(), nil
}

func (r *UsersRepo) findOne(ctx context.Context, filter bson.M) (users.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, errors.Wrap(err, "get user")
	}
	return doc.toDomain(), nil
}

func toUserDoc(u users.User) userDoc {
	return userDoc{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		ProfileImage: u.ProfileImage,
		Password:     u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) toDomain() users.User {
	return users.User{
		ID:           d.ID,
		FullName:     d.FullName,
		Email:        d.Email,
		MobileNumber: d.MobileNumber,
		ProfileImage: d.ProfileImage,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

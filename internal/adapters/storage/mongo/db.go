package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	petsCollection         = "pets"
	vaccinationsCollection = "vaccinations"
	usersCollection        = "users"
)

// Open conecta, hace ping y devuelve el cliente y la base.
func Open(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMaxConnIdleTime(5*time.Minute))
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect mongo")
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrap(err, "ping mongo")
	}

	return client, client.Database(database), nil
}

// EnsureIndexes crea los índices que sostienen las búsquedas y las
// restricciones de unicidad. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(petsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "microchipNumber", Value: 1}},
			// Solo documentos con microchip: el resto no compite por el unique.
			Options: options.Index().
				SetName("pets_microchip_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"microchipNumber": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("pets_owner_active"),
		},
	})
	if err != nil {
		return errors.Wrap(err, "create pet indexes")
	}

	_, err = db.Collection(vaccinationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pet", Value: 1}, {Key: "nextDueDate", Value: 1}},
			Options: options.Index().SetName("vaccinations_pet_due"),
		},
		{
			Keys:    bson.D{{Key: "pet", Value: 1}, {Key: "administeredDate", Value: -1}},
			Options: options.Index().SetName("vaccinations_pet_administered"),
		},
	})
	if err != nil {
		return errors.Wrap(err, "create vaccination indexes")
	}

	_, err = db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("users_email_unique").SetUnique(true),
	})
	return errors.Wrap(err, "create user indexes")
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

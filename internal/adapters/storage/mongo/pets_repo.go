package mongo

import (
	"context"
	"time"

	"petvax-hub/internal/domain/pets"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type medicalEntryDoc struct {
	ID            string     `bson:"_id"`
	Condition     string     `bson:"condition,omitempty"`
	DiagnosedDate *time.Time `bson:"diagnosedDate,omitempty"`
	Notes         string     `bson:"notes,omitempty"`
}

type petDoc struct {
	ID              string            `bson:"_id"`
	Owner           string            `bson:"owner"`
	Name            string            `bson:"name"`
	Species         string            `bson:"species"`
	Breed           string            `bson:"breed,omitempty"`
	DateOfBirth     time.Time         `bson:"dateOfBirth"`
	Gender          string            `bson:"gender"`
	Weight          *float64          `bson:"weight,omitempty"`
	Color           string            `bson:"color,omitempty"`
	MicrochipNumber string            `bson:"microchipNumber,omitempty"`
	Photo           string            `bson:"photo,omitempty"`
	MedicalHistory  []medicalEntryDoc `bson:"medicalHistory"`
	IsActive        bool              `bson:"isActive"`
	CreatedAt       time.Time         `bson:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt"`
}

type PetsRepo struct {
	coll *mongo.Collection
}

func NewPetsRepo(db *mongo.Database) *PetsRepo {
	return &PetsRepo{coll: db.Collection(petsCollection)}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	if _, err := r.coll.InsertOne(ctx, toPetDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pets.ErrDuplicateMicrochip
		}
		return errors.Wrap(err, "insert pet")
	}
	return nil
}

func (r *PetsRepo) GetForOwner(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	var doc petDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "owner": ownerUserID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, errors.Wrap(err, "get pet")
	}
	return doc.toDomain(), nil
}

func (r *PetsRepo) ListActiveByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner": ownerUserID, "isActive": true}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list pets")
	}

	var docs []petDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode pets")
	}

	out := make([]pets.Pet, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *PetsRepo) Update(ctx context.Context, id, ownerUserID string, patch pets.Patch, at time.Time) (pets.Pet, error) {
	set := bson.M{"updatedAt": at}
	unset := bson.M{}

	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Species != nil {
		set["species"] = string(*patch.Species)
	}
	if patch.Breed != nil {
		set["breed"] = *patch.Breed
	}
	if patch.DateOfBirth != nil {
		set["dateOfBirth"] = *patch.DateOfBirth
	}
	if patch.Gender != nil {
		set["gender"] = string(*patch.Gender)
	}
	if patch.ClearWeight {
		unset["weight"] = ""
	} else if patch.Weight != nil {
		set["weight"] = *patch.Weight
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	// Microchip vacío se quita del documento para no chocar con el índice único.
	if patch.MicrochipNumber != nil {
		if *patch.MicrochipNumber == "" {
			unset["microchipNumber"] = ""
		} else {
			set["microchipNumber"] = *patch.MicrochipNumber
		}
	}
	if patch.Photo != nil {
		set["photo"] = *patch.Photo
	}
	if patch.MedicalHistory != nil {
		set["medicalHistory"] = toEntryDocs(*patch.MedicalHistory)
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc petDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "owner": ownerUserID}, update, afterUpdate()).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return pets.Pet{}, pets.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return pets.Pet{}, pets.ErrDuplicateMicrochip
		}
		return pets.Pet{}, errors.Wrap(err, "update pet")
	}
	return doc.toDomain(), nil
}

func (r *PetsRepo) SoftDelete(ctx context.Context, id, ownerUserID string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "owner": ownerUserID},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": at}},
	)
	if err != nil {
		return errors.Wrap(err, "soft delete pet")
	}
	if res.MatchedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func toPetDoc(p pets.Pet) petDoc {
	return petDoc{
		ID:              p.ID,
		Owner:           p.OwnerUserID,
		Name:            p.Name,
		Species:         string(p.Species),
		Breed:           p.Breed,
		DateOfBirth:     p.DateOfBirth,
		Gender:          string(p.Gender),
		Weight:          p.Weight,
		Color:           p.Color,
		MicrochipNumber: p.MicrochipNumber,
		Photo:           p.Photo,
		MedicalHistory:  toEntryDocs(p.MedicalHistory),
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toEntryDocs(in []pets.MedicalEntry) []medicalEntryDoc {
	out := make([]medicalEntryDoc, 0, len(in))
	for _, e := range in {
		out = append(out, medicalEntryDoc(e))
	}
	return out
}

func (d petDoc) toDomain() pets.Pet {
	entries := make([]pets.MedicalEntry, 0, len(d.MedicalHistory))
	for _, e := range d.MedicalHistory {
		entry := pets.MedicalEntry(e)
		if entry.DiagnosedDate != nil {
			t := entry.DiagnosedDate.UTC()
			entry.DiagnosedDate = &t
		}
		entries = append(entries, entry)
	}
	return pets.Pet{
		ID:              d.ID,
		OwnerUserID:     d.Owner,
		Name:            d.Name,
		Species:         pets.Species(d.Species),
		Breed:           d.Breed,
		DateOfBirth:     d.DateOfBirth.UTC(),
		Gender:          pets.Gender(d.Gender),
		Weight:          d.Weight,
		Color:           d.Color,
		MicrochipNumber: d.MicrochipNumber,
		Photo:           d.Photo,
		MedicalHistory:  entries,
		IsActive:        d.IsActive,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

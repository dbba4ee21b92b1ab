package mongo

import (
	"context"
	"time"

	"petvax-hub/internal/domain/vaccinations"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type clinicDoc struct {
	Name    string `bson:"name,omitempty"`
	Address string `bson:"address,omitempty"`
	Phone   string `bson:"phone,omitempty"`
}

type vaccinationDoc struct {
	ID               string     `bson:"_id"`
	Pet              string     `bson:"pet"`
	Owner            string     `bson:"owner"`
	VaccineName      string     `bson:"vaccineName"`
	VaccineType      string     `bson:"vaccineType,omitempty"`
	AdministeredDate time.Time  `bson:"administeredDate"`
	NextDueDate      time.Time  `bson:"nextDueDate"`
	Veterinarian     string     `bson:"veterinarian,omitempty"`
	Clinic           *clinicDoc `bson:"clinic,omitempty"`
	BatchNumber      string     `bson:"batchNumber,omitempty"`
	Manufacturer     string     `bson:"manufacturer,omitempty"`
	SideEffects      string     `bson:"sideEffects,omitempty"`
	Notes            string     `bson:"notes,omitempty"`
	Certificate      string     `bson:"certificate,omitempty"`
	Status           string     `bson:"status"`
	ReminderSent     bool       `bson:"reminderSent"`
	CreatedAt        time.Time  `bson:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt"`
}

type VaccinationsRepo struct {
	coll *mongo.Collection
}

func NewVaccinationsRepo(db *mongo.Database) *VaccinationsRepo {
	return &VaccinationsRepo{coll: db.Collection(vaccinationsCollection)}
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.coll.InsertOne(ctx, toVaccinationDoc(v))
	return errors.Wrap(err, "insert vaccination")
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	var doc vaccinationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, errors.Wrap(err, "get vaccination")
	}
	return doc.toDomain(), nil
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "administeredDate", Value: -1}, {Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"pet": petID}, opts)
}

func (r *VaccinationsRepo) ListDue(ctx context.Context, petIDs []string, from, to time.Time, statuses []vaccinations.Status) ([]vaccinations.Vaccination, error) {
	if len(petIDs) == 0 || len(statuses) == 0 {
		return []vaccinations.Vaccination{}, nil
	}

	sts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		sts = append(sts, string(s))
	}

	filter := bson.M{
		"pet":         bson.M{"$in": petIDs},
		"nextDueDate": bson.M{"$gte": from, "$lte": to},
		"status":      bson.M{"$in": sts},
	}
	opts := options.Find().SetSort(bson.D{{Key: "nextDueDate", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *VaccinationsRepo) UpdateForOwner(ctx context.Context, id, ownerUserID string, patch vaccinations.Patch, at time.Time) (vaccinations.Vaccination, error) {
	set := bson.M{"updatedAt": at}
	unset := bson.M{}

	str := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	str("vaccineName", patch.VaccineName)
	if patch.VaccineType != nil {
		set["vaccineType"] = string(*patch.VaccineType)
	}
	if patch.AdministeredDate != nil {
		set["administeredDate"] = *patch.AdministeredDate
	}
	if patch.NextDueDate != nil {
		set["nextDueDate"] = *patch.NextDueDate
	}
	str("veterinarian", patch.Veterinarian)
	if patch.Clinic != nil {
		if patch.Clinic.IsZero() {
			unset["clinic"] = ""
		} else {
			set["clinic"] = clinicDoc(*patch.Clinic)
		}
	}
	str("batchNumber", patch.BatchNumber)
	str("manufacturer", patch.Manufacturer)
	str("sideEffects", patch.SideEffects)
	str("notes", patch.Notes)
	str("certificate", patch.Certificate)
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.ReminderSent != nil {
		set["reminderSent"] = *patch.ReminderSent
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc vaccinationDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "owner": ownerUserID}, update, afterUpdate()).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, errors.Wrap(err, "update vaccination")
	}
	return doc.toDomain(), nil
}

func (r *VaccinationsRepo) DeleteForOwner(ctx context.Context, id, ownerUserID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerUserID})
	if err != nil {
		return errors.Wrap(err, "delete vaccination")
	}
	if res.DeletedCount == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]vaccinations.Vaccination, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list vaccinations")
	}

	var docs []vaccinationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode vaccinations")
	}

	out := make([]vaccinations.Vaccination, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func toVaccinationDoc(v vaccinations.Vaccination) vaccinationDoc {
	var clinic *clinicDoc
	if !v.Clinic.IsZero() {
		c := clinicDoc(v.Clinic)
		clinic = &c
	}
	return vaccinationDoc{
		ID:               v.ID,
		Pet:              v.PetID,
		Owner:            v.OwnerUserID,
		VaccineName:      v.VaccineName,
		VaccineType:      string(v.VaccineType),
		AdministeredDate: v.AdministeredDate,
		NextDueDate:      v.NextDueDate,
		Veterinarian:     v.Veterinarian,
		Clinic:           clinic,
		BatchNumber:      v.BatchNumber,
		Manufacturer:     v.Manufacturer,
		SideEffects:      v.SideEffects,
		Notes:            v.Notes,
		Certificate:      v.Certificate,
		Status:           string(v.Status),
		ReminderSent:     v.ReminderSent,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func (d vaccinationDoc) toDomain() vaccinations.Vaccination {
	v := vaccinations.Vaccination{
		ID:               d.ID,
		PetID:            d.Pet,
		OwnerUserID:      d.Owner,
		VaccineName:      d.VaccineName,
		VaccineType:      vaccinations.VaccineType(d.VaccineType),
		AdministeredDate: d.AdministeredDate.UTC(),
		NextDueDate:      d.NextDueDate.UTC(),
		Veterinarian:     d.Veterinarian,
		BatchNumber:      d.BatchNumber,
		Manufacturer:     d.Manufacturer,
		SideEffects:      d.SideEffects,
		Notes:            d.Notes,
		Certificate:      d.Certificate,
		Status:           vaccinations.Status(d.Status),
		ReminderSent:     d.ReminderSent,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
	if d.Clinic != nil {
		v.Clinic = vaccinations.Clinic(*d.Clinic)
	}
	return v
}

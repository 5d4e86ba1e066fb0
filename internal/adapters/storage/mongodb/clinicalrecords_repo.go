package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"riavet-api/internal/domain/clinicalrecords"
)

type ClinicalRecordsRepo struct {
	Collection *mongo.Collection
}

func NewClinicalRecordsRepo(db *mongo.Database) *ClinicalRecordsRepo {
	return &ClinicalRecordsRepo{
		Collection: db.Collection("clinical_records"),
	}
}

// El _id es el uuid del dominio, como string; no usamos ObjectID.
type clinicalRecordDoc struct {
	ID             string     `bson:"_id"`
	PatientID      string     `bson:"patient_id"`
	VeterinarianID string     `bson:"veterinarian_id"`
	Diagnosis      string     `bson:"diagnosis"`
	Procedures     string     `bson:"procedures,omitempty"`
	Attachments    string     `bson:"attachments,omitempty"`
	MedicalOrders  string     `bson:"medical_orders,omitempty"`
	Prescription   string     `bson:"prescription,omitempty"`
	FollowUpDate   *time.Time `bson:"follow_up_date,omitempty"`
	Status         string     `bson:"status"`
	CreatedAt      time.Time  `bson:"created_at"`
}

func (r *ClinicalRecordsRepo) Create(ctx context.Context, rec clinicalrecords.ClinicalRecord) error {
	_, err := r.Collection.InsertOne(ctx, toClinicalRecordDoc(rec))
	return err
}

func (r *ClinicalRecordsRepo) Update(ctx context.Context, rec clinicalrecords.ClinicalRecord) error {
	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": rec.ID}, toClinicalRecordDoc(rec))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return clinicalrecords.ErrNotFound
	}
	return nil
}

func (r *ClinicalRecordsRepo) GetByID(ctx context.Context, id string) (clinicalrecords.ClinicalRecord, error) {
	var doc clinicalRecordDoc
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return clinicalrecords.ClinicalRecord{}, clinicalrecords.ErrNotFound
		}
		return clinicalrecords.ClinicalRecord{}, err
	}
	return fromClinicalRecordDoc(doc), nil
}

func (r *ClinicalRecordsRepo) List(ctx context.Context, filter clinicalrecords.ListFilter) ([]clinicalrecords.ClinicalRecord, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	return r.find(ctx, query)
}

func (r *ClinicalRecordsRepo) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]clinicalrecords.ClinicalRecord, error) {
	return r.find(ctx, bson.M{"veterinarian_id": veterinarianID})
}

func (r *ClinicalRecordsRepo) find(ctx context.Context, query bson.M) ([]clinicalrecords.ClinicalRecord, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]clinicalrecords.ClinicalRecord, 0)
	for cursor.Next(ctx) {
		var doc clinicalRecordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromClinicalRecordDoc(doc))
	}
	return out, cursor.Err()
}

func (r *ClinicalRecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return clinicalrecords.ErrNotFound
	}
	return nil
}

func toClinicalRecordDoc(rec clinicalrecords.ClinicalRecord) clinicalRecordDoc {
	return clinicalRecordDoc{
		ID:             rec.ID,
		PatientID:      rec.PatientID,
		VeterinarianID: rec.VeterinarianID,
		Diagnosis:      rec.Diagnosis,
		Procedures:     rec.Procedures,
		Attachments:    rec.Attachments,
		MedicalOrders:  rec.MedicalOrders,
		Prescription:   rec.Prescription,
		FollowUpDate:   rec.FollowUpDate,
		Status:         string(rec.Status),
		CreatedAt:      rec.CreatedAt,
	}
}

func fromClinicalRecordDoc(doc clinicalRecordDoc) clinicalrecords.ClinicalRecord {
	return clinicalrecords.ClinicalRecord{
		ID:             doc.ID,
		PatientID:      doc.PatientID,
		VeterinarianID: doc.VeterinarianID,
		Diagnosis:      doc.Diagnosis,
		Procedures:     doc.Procedures,
		Attachments:    doc.Attachments,
		MedicalOrders:  doc.MedicalOrders,
		Prescription:   doc.Prescription,
		FollowUpDate:   doc.FollowUpDate,
		Status:         clinicalrecords.Status(doc.Status),
		CreatedAt:      doc.CreatedAt,
	}
}

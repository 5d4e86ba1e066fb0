package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"riavet-api/internal/domain/telemedicine"
)

type SessionsRepo struct {
	Collection *mongo.Collection
}

func NewSessionsRepo(db *mongo.Database) *SessionsRepo {
	return &SessionsRepo{
		Collection: db.Collection("telemedicine_sessions"),
	}
}

type sessionDoc struct {
	ID             string     `bson:"_id"`
	PatientID      string     `bson:"patient_id"`
	VeterinarianID string     `bson:"veterinarian_id"`
	ScheduledAt    time.Time  `bson:"scheduled_at"`
	StartedAt      *time.Time `bson:"started_at,omitempty"`
	EndedAt        *time.Time `bson:"ended_at,omitempty"`
	Status         string     `bson:"status"`
	MeetingURL     string     `bson:"meeting_url,omitempty"`
	Notes          string     `bson:"notes,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

func (r *SessionsRepo) Create(ctx context.Context, s telemedicine.Session) error {
	_, err := r.Collection.InsertOne(ctx, toSessionDoc(s))
	return err
}

func (r *SessionsRepo) Update(ctx context.Context, s telemedicine.Session) error {
	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": s.ID}, toSessionDoc(s))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return telemedicine.ErrNotFound
	}
	return nil
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (telemedicine.Session, error) {
	var doc sessionDoc
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return telemedicine.Session{}, telemedicine.ErrNotFound
		}
		return telemedicine.Session{}, err
	}
	return fromSessionDoc(doc), nil
}

func (r *SessionsRepo) List(ctx context.Context, filter telemedicine.ListFilter) ([]telemedicine.Session, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.VeterinarianID != "" {
		query["veterinarian_id"] = filter.VeterinarianID
	}

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]telemedicine.Session, 0)
	for cursor.Next(ctx) {
		var doc sessionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromSessionDoc(doc))
	}
	return out, cursor.Err()
}

func toSessionDoc(s telemedicine.Session) sessionDoc {
	return sessionDoc{
		ID:             s.ID,
		PatientID:      s.PatientID,
		VeterinarianID: s.VeterinarianID,
		ScheduledAt:    s.ScheduledAt,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		Status:         string(s.Status),
		MeetingURL:     s.MeetingURL,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func fromSessionDoc(doc sessionDoc) telemedicine.Session {
	return telemedicine.Session{
		ID:             doc.ID,
		PatientID:      doc.PatientID,
		VeterinarianID: doc.VeterinarianID,
		ScheduledAt:    doc.ScheduledAt,
		StartedAt:      doc.StartedAt,
		EndedAt:        doc.EndedAt,
		Status:         telemedicine.Status(doc.Status),
		MeetingURL:     doc.MeetingURL,
		Notes:          doc.Notes,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

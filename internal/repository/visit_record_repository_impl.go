package repository

import (
	"context"
	"errors"
	"fmt"

	"clinic-appointment/internal/domain/entity"
	domainRepo "clinic-appointment/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type visitRecordRepository struct {
	coll *mongo.Collection
}

func NewVisitRecordRepository(coll *mongo.Collection) domainRepo.VisitRecordRepository {
	return &visitRecordRepository{coll: coll}
}

func (r *visitRecordRepository) Create(ctx context.Context, record *entity.VisitRecord) error {
	res, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create visit record: %w: %w", domainRepo.ErrDuplicate, err)
		}
		return fmt.Errorf("create visit record: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}

func (r *visitRecordRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*entity.VisitRecord, error) {
	var record entity.VisitRecord
	err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *visitRecordRepository) FindAll(ctx context.Context, filter entity.VisitRecordFilter) ([]entity.VisitRecord, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}

	opts := options.Find().SetSort(bson.D{{Key: "visit_date", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []entity.VisitRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

package docstore

import (
	"context"
	"fmt"

	"clinic-appointment/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoClient connects and pings the document store.
func NewMongoClient(cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logrus.Info("Successfully connected to MongoDB")

	return client, nil
}

// VisitRecordCollection returns the visit history collection, making sure
// its indexes exist. appointment_id is unique: one record per appointment.
func VisitRecordCollection(ctx context.Context, client *mongo.Client, cfg config.MongoConfig) (*mongo.Collection, error) {
	coll := client.Database(cfg.Database).Collection(cfg.Collection)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "appointment_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_appointment_id"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "visit_date", Value: -1}},
			Options: options.Index().SetName("patient_visit_date"),
		},
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "visit_date", Value: -1}},
			Options: options.Index().SetName("doctor_visit_date"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create visit record indexes: %w", err)
	}

	return coll, nil
}

package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CleanupSubmission is the "after" record: a citizen's photo evidencing
// cleanup of a prior report.
type CleanupSubmission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID    primitive.ObjectID `bson:"reportId" json:"reportId"`
	Contributor string             `bson:"contributor" json:"contributor"`
	Image       []byte             `bson:"image" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    *Coordinates       `bson:"location,omitempty" json:"location,omitempty"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
}

// EnsureCleanupIndex creates a unique index on reportId, so at most one
// cleanup submission can be active per report.
func EnsureCleanupIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "reportId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

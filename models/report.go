package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatus enum
type ReportStatus string

const (
	StatusPending              ReportStatus = "Pending"
	StatusAwaitingVerification ReportStatus = "AwaitingVerification"
	StatusVerified             ReportStatus = "Verified"
	StatusRejected             ReportStatus = "Rejected"
)

// Coordinates is a complete lat/lng pair. A report either carries both
// values or no location at all, never one without the other.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Detection is a single bounding box returned by the inference service.
type Detection struct {
	BBox       []float64 `bson:"bbox" json:"bbox"`
	Confidence float64   `bson:"confidence" json:"confidence"`
	Name       string    `bson:"name" json:"name"`
}

// LitterReport is the "before" record: a citizen's report of litter at a
// location. Status is the single source of truth for which collection view
// the report belongs to; reports are never deleted.
type LitterReport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reporter    string             `bson:"reporter" json:"reporter"`
	Image       []byte             `bson:"image" json:"-"`
	Description string             `bson:"description" json:"description"`
	Location    *Coordinates       `bson:"location,omitempty" json:"location,omitempty"`
	Status      ReportStatus       `bson:"status" json:"status"`
	Count       int                `bson:"count" json:"count"`
	Categories  []string           `bson:"categories,omitempty" json:"categories,omitempty"`
	Detections  []Detection        `bson:"rawDetections,omitempty" json:"-"`
	VerifiedBy  string             `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

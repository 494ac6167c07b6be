package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PairedBefore is the before half of a review pair.
type PairedBefore struct {
	ID          primitive.ObjectID `json:"id"`
	ImageBase64 string             `json:"before_image_base64,omitempty"`
	Description string             `json:"description"`
	Location    *Coordinates       `json:"location,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

// PairedAfter is the cleanup half of a review pair.
type PairedAfter struct {
	ID          primitive.ObjectID `json:"id"`
	ImageBase64 string             `json:"cleanup_image_base64,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

// ReportPair joins a litter report with its cleanup submission into the
// single reviewable unit officials decide on. It is derived, never stored:
// a pair exists only while both halves are present.
type ReportPair struct {
	ID           primitive.ObjectID `json:"id"`
	Contributor  string             `json:"contributor,omitempty"`
	BeforeReport PairedBefore       `json:"beforeReport"`
	AfterReport  PairedAfter        `json:"afterReport"`
}

// AnalyticsSnapshot carries the aggregate counts shown on the dashboards.
// The counts are server-derived and displayed verbatim.
type AnalyticsSnapshot struct {
	PendingCount   int64 `json:"pending_count"`
	CompletedCount int64 `json:"completed_count"`
	VerifiedCount  int64 `json:"verified_count"`
	ActiveCitizens int64 `json:"active_citizens_10days"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationAction enum
type VerificationAction string

const (
	ActionApprove    VerificationAction = "approve"
	ActionDisapprove VerificationAction = "disapprove"
)

// VerificationDecision is the audit record of an official's decision on a
// report that is awaiting verification.
type VerificationDecision struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID  primitive.ObjectID `bson:"reportId" json:"reportId"`
	Official  string             `bson:"official" json:"official"`
	Action    VerificationAction `bson:"action" json:"action"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

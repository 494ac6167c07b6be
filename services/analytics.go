package services

import (
	"errors"

	"cleansweep-be/models"
)

var ErrNegativeCount = errors.New("analytics counts must be non-negative")

// NewSnapshot validates server-derived aggregate counts. The counts are
// reported verbatim: they are never recomputed from the lengths of
// fetched collections, which can diverge under pagination or filtering.
func NewSnapshot(pending, completed, verified, activeCitizens int64) (*models.AnalyticsSnapshot, error) {
	if pending < 0 || completed < 0 || verified < 0 || activeCitizens < 0 {
		return nil, ErrNegativeCount
	}
	return &models.AnalyticsSnapshot{
		PendingCount:   pending,
		CompletedCount: completed,
		VerifiedCount:  verified,
		ActiveCitizens: activeCitizens,
	}, nil
}

package services

import (
	"errors"

	"cleansweep-be/models"
)

var (
	ErrInvalidTransition = errors.New("invalid report status transition")
	ErrInvalidAction     = errors.New("action must be 'approve' or 'disapprove'")
)

// transitions lists the statuses reachable from each status. A cleanup
// submission moves Pending to AwaitingVerification; an official's decision
// moves AwaitingVerification to Verified or Rejected. Verified and
// Rejected are terminal.
var transitions = map[models.ReportStatus][]models.ReportStatus{
	models.StatusPending:              {models.StatusAwaitingVerification},
	models.StatusAwaitingVerification: {models.StatusVerified, models.StatusRejected},
	models.StatusVerified:             {},
	models.StatusRejected:             {},
}

// CanTransition reports whether a report may move from one status to
// another.
func CanTransition(from, to models.ReportStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a requested status change, returning
// ErrInvalidTransition when the move is not allowed from the current
// status.
func Transition(current, next models.ReportStatus) error {
	if !CanTransition(current, next) {
		return ErrInvalidTransition
	}
	return nil
}

// NextStatus maps a verification action onto the status it produces.
func NextStatus(action models.VerificationAction) (models.ReportStatus, error) {
	switch action {
	case models.ActionApprove:
		return models.StatusVerified, nil
	case models.ActionDisapprove:
		return models.StatusRejected, nil
	}
	return "", ErrInvalidAction
}

package services

// Submission outcome tags. A rejection is business logic, not a transport
// failure: it travels on a 200 response with a human-readable reason.
const (
	MessageAccepted = "accepted"
	MessageRejected = "rejected"
)

// Outcome is the tagged result of a submission. Only an accepted outcome
// should trigger a refresh of the report collections and a reset of the
// submitting form's transient state.
type Outcome struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

func Accepted() Outcome {
	return Outcome{Message: MessageAccepted}
}

func Rejected(reason string) Outcome {
	return Outcome{Message: MessageRejected, Reason: reason}
}

func (o Outcome) IsAccepted() bool {
	return o.Message == MessageAccepted
}

func (o Outcome) IsRejected() bool {
	return o.Message == MessageRejected
}

package services

import (
	"encoding/json"
	"testing"
)

func TestOutcomeTags(t *testing.T) {
	accepted := Accepted()
	if !accepted.IsAccepted() || accepted.IsRejected() {
		t.Errorf("Accepted() misclassified: %+v", accepted)
	}

	rejected := Rejected("insufficient_litter")
	if rejected.IsAccepted() || !rejected.IsRejected() {
		t.Errorf("Rejected() misclassified: %+v", rejected)
	}
	if rejected.Reason != "insufficient_litter" {
		t.Errorf("reason = %q, want insufficient_litter", rejected.Reason)
	}
}

func TestOutcomeFromResponseBody(t *testing.T) {
	// A rejection arrives on a 200 response; the tag in the body decides
	var outcome Outcome
	body := `{"message":"rejected","reason":"insufficient_litter"}`
	if err := json.Unmarshal([]byte(body), &outcome); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !outcome.IsRejected() {
		t.Errorf("outcome = %+v, want rejected", outcome)
	}
	if outcome.Reason != "insufficient_litter" {
		t.Errorf("reason = %q", outcome.Reason)
	}

	var other Outcome
	if err := json.Unmarshal([]byte(`{"message":"accepted"}`), &other); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !other.IsAccepted() {
		t.Errorf("outcome = %+v, want accepted", other)
	}
}

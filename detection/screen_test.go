package detection

import "testing"

func TestScreenAcceptsPile(t *testing.T) {
	result := &Result{
		Count:      1,
		Categories: []string{"Garbage Pile"},
	}

	outcome, plastic, pile := Screen(result)
	if !outcome.IsAccepted() {
		t.Errorf("outcome = %+v, want accepted", outcome)
	}
	if plastic != 0 || pile != 1 {
		t.Errorf("counts = (%d plastic, %d pile), want (0, 1)", plastic, pile)
	}
}

func TestScreenAcceptsFivePlastics(t *testing.T) {
	result := &Result{
		Count:      5,
		Categories: []string{"plastic bottle", "Plastic bag", "plastic cup", "plastic wrapper", "PLASTIC straw"},
	}

	outcome, plastic, pile := Screen(result)
	if !outcome.IsAccepted() {
		t.Errorf("outcome = %+v, want accepted", outcome)
	}
	if plastic != 5 || pile != 0 {
		t.Errorf("counts = (%d plastic, %d pile), want (5, 0)", plastic, pile)
	}
}

func TestScreenRejectsFourPlastics(t *testing.T) {
	result := &Result{
		Count:      4,
		Categories: []string{"plastic bottle", "plastic bag", "plastic cup", "plastic wrapper"},
	}

	outcome, _, _ := Screen(result)
	if !outcome.IsRejected() {
		t.Errorf("outcome = %+v, want rejected", outcome)
	}
	if outcome.Reason != ReasonInsufficientLitter {
		t.Errorf("reason = %q, want %q", outcome.Reason, ReasonInsufficientLitter)
	}
}

func TestScreenRejectsEmptyResult(t *testing.T) {
	outcome, plastic, pile := Screen(&Result{})
	if !outcome.IsRejected() {
		t.Errorf("outcome = %+v, want rejected", outcome)
	}
	if plastic != 0 || pile != 0 {
		t.Errorf("counts = (%d, %d), want (0, 0)", plastic, pile)
	}
}

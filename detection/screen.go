package detection

import (
	"strings"

	"cleansweep-be/services"
)

const (
	minPileCount    = 1
	minPlasticCount = 5
)

// ReasonInsufficientLitter rejects photos that do not show enough litter
// to act on.
const ReasonInsufficientLitter = "insufficient_litter"

// Screen applies the acceptance rules to an inference result: accept if
// the photo shows at least one litter pile, or at least five plastic
// detections. It also returns the plastic and pile tallies so the
// submission response can surface them.
func Screen(result *Result) (outcome services.Outcome, plasticCount, pileCount int) {
	for _, category := range result.Categories {
		name := strings.ToLower(category)
		if strings.Contains(name, "plastic") {
			plasticCount++
		}
		if strings.Contains(name, "pile") {
			pileCount++
		}
	}

	if pileCount >= minPileCount || plasticCount >= minPlasticCount {
		return services.Accepted(), plasticCount, pileCount
	}
	return services.Rejected(ReasonInsufficientLitter), plasticCount, pileCount
}

package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"aqarscan/internal/constants"
)

var digitRE = regexp.MustCompile(`\d`)

func containsAny(lowerText string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowerText, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// IsCandidate is the relevance gate run before any extractor. It rejects
// short texts, texts matching the exclusion list, texts without digits, and
// texts whose keywords fall into fewer than two of the four term categories.
func IsCandidate(text string) bool {
	if text == "" || utf8.RuneCountInString(text) < constants.MinCandidateLength {
		return false
	}

	lower := strings.ToLower(text)

	// Exclusion always overrides.
	if containsAny(lower, excludedTerms) {
		return false
	}

	// A listing without a single number (price, area) is not a listing.
	if !digitRE.MatchString(text) {
		return false
	}

	matched := 0
	for _, category := range [][]string{propertyTerms, transactionTerms, measurementTerms, priceTerms} {
		if containsAny(lower, category) {
			matched++
		}
	}
	return matched >= 2
}

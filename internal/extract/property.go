package extract

import (
	"strings"
	"unicode/utf8"

	"aqarscan/internal/models"
)

// PropertyType scans every category's synonyms and keeps the longest
// keyword that occurs in the text; the category owning that keyword wins.
// Longest-match beats first-match here: "محل تجاري" must not be claimed by
// the bare "محل" of the commercial list when a longer synonym elsewhere fits.
func PropertyType(text string) models.PropertyType {
	if text == "" {
		return models.PropertyUnknown
	}

	lower := strings.ToLower(text)

	best := models.PropertyUnknown
	bestLen := 0
	for _, entry := range propertyLexicon {
		for _, keyword := range entry.Keywords {
			if !strings.Contains(lower, strings.ToLower(keyword)) {
				continue
			}
			if n := utf8.RuneCountInString(keyword); n > bestLen {
				bestLen = n
				best = entry.Type
			}
		}
	}

	return best
}

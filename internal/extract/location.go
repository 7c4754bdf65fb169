package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"aqarscan/internal/constants"
	"aqarscan/internal/models"
)

// Labeled-phrase fallback, only consulted when no gazetteer city matches.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:في|بـ|حي|منطقة|مخطط|شارع|طريق|مدينة|مدينه|بمدينة)\s+([^\d\n,.،]+?)(?:\s+|$|،|,|\.|٫)`),
	regexp.MustCompile(`(?:الموقع|العنوان|المكان|الحي):\s+([^\d\n,.،]+?)(?:\s+|$|،|,|\.|٫)`),
}

// Location extracts the place mentioned in the text. Gazetteer precedence is
// absolute: the first contained city name wins no matter where it sits in
// the text or what the labeled phrases would capture.
func Location(text string) string {
	if text == "" {
		return models.ValueUnknown
	}

	for _, city := range saudiCities {
		if strings.Contains(text, city) {
			return city
		}
	}

	for _, pattern := range locationPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n := utf8.RuneCountInString(m[1])
		if n <= constants.LocationMinLength || n >= constants.LocationMaxLength {
			continue
		}
		location := strings.TrimSpace(m[1])
		if !containsAny(location, invalidLocationTerms) {
			return location
		}
	}

	return models.ValueUnknown
}

package extract

import (
	"regexp"

	"aqarscan/internal/models"
)

// Area cascade: labeled with colon, labeled with space, bare number+unit.
// The value is returned in whatever unit the text used; no conversion.
var areaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:مساحة|المساحه|المساحة|بمساحة|مساحته|مساحتها)\s*:\s*(\d[\d,.]*)\s*(?:متر مربع|متر|م²|م2|م)`),
	regexp.MustCompile(`(?:مساحة|المساحه|المساحة|بمساحة|مساحته|مساحتها)\s+(\d[\d,.]*)\s*(?:متر مربع|متر|م²|م2|م)`),
	regexp.MustCompile(`(\d[\d,.]*)\s*(?:متر|م²|م2|م)(?:\s*(?:مربع|²))?`),
}

// Area extracts the property area as a digits-only string.
func Area(text string) string {
	if text == "" {
		return models.ValueUnknown
	}

	for _, pattern := range areaPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return separatorRE.ReplaceAllString(m[1], "")
		}
	}

	return models.ValueUnknown
}

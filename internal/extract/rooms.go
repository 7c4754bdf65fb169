package extract

import (
	"regexp"

	"aqarscan/internal/models"
)

var roomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*غرف(?:ة|ه)?`),
	regexp.MustCompile(`غرف(?:ة|ه)?\s*(?:النوم|نوم)?:\s*(\d+)`),
	regexp.MustCompile(`(?:تتكون من|مكونة من|تتألف من|تحتوي على)\s*(\d+)\s*غرف(?:ة|ه)?`),
	regexp.MustCompile(`(\d+)\s*(?:بد روم|بدروم|غرفة نوم|غرف نوم|غرفة|غرفه)`),
}

var bathroomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:دورة مياه|دورات مياه|حمام|حمامات|دورة|دورات)`),
	regexp.MustCompile(`(?:دورة مياه|دورات مياه|حمام|حمامات|دورة|دورات):\s*(\d+)`),
	regexp.MustCompile(`(?:تحتوي على|فيها|بها)\s*(\d+)\s*(?:دورة مياه|دورات مياه|حمام|حمامات|دورة|دورات)`),
}

func firstNumeric(text string, patterns []*regexp.Regexp) string {
	if text == "" {
		return models.ValueUnknown
	}
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return models.ValueUnknown
}

// Rooms extracts the advertised room count.
func Rooms(text string) string {
	return firstNumeric(text, roomPatterns)
}

// Bathrooms extracts the advertised bathroom count.
func Bathrooms(text string) string {
	return firstNumeric(text, bathroomPatterns)
}

package extract

import (
	"regexp"
	"strings"

	"aqarscan/internal/constants"
	"aqarscan/internal/models"
)

// Phone cascade. The bare 5XXXXXXXX form guards both flanks against digits
// so it cannot bite into a longer number.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:(?:\+|00)?966|0)5\d{8}`),
	regexp.MustCompile(`(?:\D|^)5\d{8}(?:\D|$)`),
	regexp.MustCompile(`(?:\+|00)?9665\d{8}`),
	regexp.MustCompile(`واتس[اآ]ب[\s:]*\+?[\d\s]{10,}`),
	regexp.MustCompile(`[تج]واصل[\s:]*\+?[\d\s]{10,}`),
	regexp.MustCompile(`(?:للتواصل|الجوال|موبايل|رقم|اتصال)[\s:]*\+?[\d\s]{10,}`),
}

var nonDigitRE = regexp.MustCompile(`\D`)

// Phone extracts a Saudi mobile number and normalizes it to the local
// 10-digit form 05XXXXXXXX. A raw match that does not normalize to that form
// does not stop the cascade; the next pattern gets its turn.
func Phone(text string) string {
	if text == "" {
		return models.PhoneUnavailable
	}

	for _, pattern := range phonePatterns {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}

		digits := nonDigitRE.ReplaceAllString(match, "")

		// Country-code prefixes in precedence order. The "+" variant is
		// already digit-stripped, leaving the bare 966 form.
		if strings.HasPrefix(digits, "00"+constants.CountryCodeDigits) {
			digits = digits[5:]
		} else if strings.HasPrefix(digits, constants.CountryCodeDigits) {
			digits = digits[3:]
		}

		if len(digits) == constants.LocalPhoneLength-1 && strings.HasPrefix(digits, "5") {
			digits = "0" + digits
		}

		if len(digits) == constants.LocalPhoneLength && strings.HasPrefix(digits, constants.LocalPhonePrefix) {
			return digits
		}
	}

	return models.PhoneUnavailable
}

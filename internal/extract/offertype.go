package extract

import (
	"strings"

	"aqarscan/internal/models"
)

// OfferType resolves the transaction type by strict priority: any sale
// keyword wins outright, then rent, then buy. When no list hits, a text that
// talks about a price or a deed is most likely a sale.
func OfferType(text string) models.OfferType {
	if text == "" {
		return models.OfferUnknown
	}

	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, saleKeywords):
		return models.OfferSale
	case containsAny(lower, rentKeywords):
		return models.OfferRent
	case containsAny(lower, buyKeywords):
		return models.OfferBuy
	}

	if containsAny(lower, saleContextTerms) {
		return models.OfferSale
	}

	return models.OfferUnknown
}

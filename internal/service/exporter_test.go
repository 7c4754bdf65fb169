package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqarscan/internal/models"
)

func exportOffers() []models.Offer {
	return []models.Offer{
		{
			OfferType:    models.OfferSale,
			PropertyType: models.PropertyApartment,
			Location:     "الرياض",
			Price:        "2000000",
			Phone:        "0512345678",
			MessageID:    "msg-1",
		},
		{
			OfferType:    models.OfferRent,
			PropertyType: models.PropertyVilla,
			Location:     "شمال جدة",
			Price:        "50000",
			Phone:        models.PhoneUnavailable,
			MessageID:    "msg-2",
		},
		{
			OfferType:    models.OfferSale,
			PropertyType: models.PropertyLand,
			Location:     models.ValueUnknown,
			Price:        models.ValueUnknown,
			MessageID:    "msg-3",
		},
	}
}

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSVAllOffers(t *testing.T) {
	var buf bytes.Buffer
	written, err := WriteCSV(&buf, exportOffers(), ExportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	records := parseCSV(t, &buf)
	require.Len(t, records, 4)
	assert.Equal(t, "نوع العرض", records[0][0])
	assert.Equal(t, "بيع", records[1][0])
	assert.Equal(t, "0512345678", records[1][7])

	// Empty provenance fields fall back to the sentinel values.
	assert.Equal(t, "غير محدد", records[1][8])
	assert.Equal(t, "غير متوفر", records[2][7])
}

func TestWriteCSVFilterByOfferType(t *testing.T) {
	var buf bytes.Buffer
	written, err := WriteCSV(&buf, exportOffers(), ExportFilter{OfferType: "إيجار"})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "msg-2", records[1][11])
}

func TestWriteCSVFilterByLocationSubstring(t *testing.T) {
	var buf bytes.Buffer
	written, err := WriteCSV(&buf, exportOffers(), ExportFilter{Location: "جدة"})
	require.NoError(t, err)
	assert.Equal(t, 1, written)
}

func TestWriteCSVPriceBoundsSkipUnknown(t *testing.T) {
	min := int64(100000)
	var buf bytes.Buffer
	written, err := WriteCSV(&buf, exportOffers(), ExportFilter{MinPrice: &min})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "msg-1", records[1][11])

	max := int64(100000)
	buf.Reset()
	written, err = WriteCSV(&buf, exportOffers(), ExportFilter{MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	records = parseCSV(t, &buf)
	assert.Equal(t, "msg-2", records[1][11])
}

func TestWriteCSVEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	written, err := WriteCSV(&buf, nil, ExportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	// Header row only.
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aqarscan/internal/models"
)

// ExportFilter narrows which offers make it into an export. Zero values
// match everything. Offers with the Unknown price sentinel never satisfy a
// price bound.
type ExportFilter struct {
	OfferType    string
	PropertyType string
	Location     string
	MinPrice     *int64
	MaxPrice     *int64
}

func (f ExportFilter) matches(o *models.Offer) bool {
	if f.OfferType != "" && string(o.OfferType) != f.OfferType {
		return false
	}
	if f.PropertyType != "" && string(o.PropertyType) != f.PropertyType {
		return false
	}
	if f.Location != "" && !strings.Contains(o.Location, f.Location) {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		if !o.HasPrice() {
			return false
		}
		price, err := strconv.ParseInt(o.Price, 10, 64)
		if err != nil {
			return false
		}
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}
	return true
}

var exportHeader = []string{
	"نوع العرض",
	"نوع العقار",
	"الموقع",
	"المساحة",
	"السعر",
	"عدد الغرف",
	"دورات المياه",
	"رقم الهاتف",
	"المجموعة",
	"اسم المرسل",
	"التاريخ",
	"معرف الرسالة",
	"النص الكامل",
}

// WriteCSV writes the filtered offers as a UTF-8 CSV. A byte order mark is
// emitted first so spreadsheet applications render the Arabic columns.
func WriteCSV(w io.Writer, offers []models.Offer, filter ExportFilter) (int, error) {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return 0, fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	written := 0
	for i := range offers {
		o := &offers[i]
		if !filter.matches(o) {
			continue
		}

		record := []string{
			orDefault(string(o.OfferType), models.ValueUnknown),
			orDefault(string(o.PropertyType), models.ValueUnknown),
			orDefault(o.Location, models.ValueUnknown),
			orDefault(o.Area, models.ValueUnknown),
			orDefault(o.Price, models.ValueUnknown),
			orDefault(o.Rooms, models.ValueUnknown),
			orDefault(o.Bathrooms, models.ValueUnknown),
			orDefault(o.Phone, models.PhoneUnavailable),
			orDefault(o.GroupName, models.ValueUnknown),
			orDefault(o.Sender, models.ValueUnknown),
			orDefault(o.Timestamp, models.ValueUnknown),
			orDefault(o.MessageID, models.ValueUnknown),
			orDefault(o.FullText, models.PhoneUnavailable),
		}
		if err := cw.Write(record); err != nil {
			return written, fmt.Errorf("failed to write record: %w", err)
		}
		written++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("failed to flush csv: %w", err)
	}

	return written, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

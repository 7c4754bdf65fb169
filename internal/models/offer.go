package models

// Sentinel values preserved from the snapshot file contract. Field extractors
// return these instead of errors: a caller cannot distinguish "not present"
// from "not parseable".
const (
	ValueUnknown     = "غير محدد"
	PhoneUnavailable = "غير متوفر"
	SenderUnknown    = "غير معروف"
)

// OfferType classifies the transaction advertised by a message.
type OfferType string

const (
	OfferSale    OfferType = "بيع"
	OfferRent    OfferType = "إيجار"
	OfferBuy     OfferType = "شراء"
	OfferUnknown OfferType = ValueUnknown
)

// PropertyType classifies the kind of property advertised.
type PropertyType string

const (
	PropertyApartment  PropertyType = "شقة"
	PropertyVilla      PropertyType = "فيلا"
	PropertyLand       PropertyType = "أرض"
	PropertyBuilding   PropertyType = "عمارة"
	PropertyCommercial PropertyType = "محل تجاري"
	PropertyOffice     PropertyType = "مكتب"
	PropertyResthouse  PropertyType = "استراحة"
	PropertyWarehouse  PropertyType = "مستودع"
	PropertyUnknown    PropertyType = ValueUnknown
)

// Offer is a structured real-estate listing extracted from one source message.
// The JSON keys are the snapshot file contract and must not change.
type Offer struct {
	OfferType    OfferType    `json:"نوع العرض"`
	PropertyType PropertyType `json:"نوع العقار"`
	Location     string       `json:"الموقع"`
	Area         string       `json:"المساحة"`
	Price        string       `json:"السعر"`
	Rooms        string       `json:"عدد الغرف"`
	Bathrooms    string       `json:"دورات المياه"`
	Phone        string       `json:"رقم الهاتف"`
	GroupName    string       `json:"المجموعة"`
	Sender       string       `json:"المرسل"`
	Timestamp    string       `json:"التاريخ"`
	MessageID    string       `json:"معرف الرسالة"`
	FullText     string       `json:"النص الكامل"`
}

// HasPhone reports whether a usable contact number was extracted.
func (o *Offer) HasPhone() bool {
	return o.Phone != "" && o.Phone != PhoneUnavailable
}

// HasPrice reports whether the price field is numeric rather than the
// Unknown sentinel. Consumers must check this before comparing prices.
func (o *Offer) HasPrice() bool {
	return o.Price != "" && o.Price != ValueUnknown
}

// Package extract implements the relevance filter and the field extractors
// for Saudi real-estate listing messages. Every extractor is a pure, total
// function over the message text: the result is either an extracted value or
// the documented sentinel, never an error.
//
// Each extractor is an ordered cascade of patterns; the first pattern that
// matches wins. The order of every table in this file is load-bearing.
package extract

import "aqarscan/internal/models"

// Keyword categories for the relevance filter. A candidate must hit at least
// two distinct categories (plus contain a digit); co-occurrence across
// categories is what separates listings from casual mentions of a single term.
var (
	propertyTerms    = []string{"شقة", "فيلا", "أرض", "ارض", "عمارة", "شاليه", "مستودع", "محل", "مكتب", "استراحة"}
	transactionTerms = []string{"للبيع", "للايجار", "للإيجار", "للشراء", "للتأجير", "إيجار", "بيع"}
	measurementTerms = []string{"متر", "م²", "م2", "مساحة", "المساحة", "مساحته", "مساحتها"}
	priceTerms       = []string{"ريال", "مليون", "الف", "ألف", "سعر", "السعر", "بسعر", "قيمة", "بقيمة"}
)

// Religious and advertising phrases that disqualify a message outright,
// regardless of what else it contains.
var excludedTerms = []string{
	"اللهم", "الحمد لله", "سبحان الله", "استغفر الله", "صلى الله عليه وسلم",
	"وظائف", "تخفيضات", "عروض", "خصم", "وظيفة", "توظيف",
}

// saudiCities is the location gazetteer. A direct containment hit on any of
// these wins over the pattern fallback, in list order.
var saudiCities = []string{
	"الرياض", "جدة", "مكة", "المدينة", "الدمام", "الخبر", "جازان", "تبوك", "القصيم", "حائل", "عسير",
	"أبها", "الطائف", "نجران", "الجبيل", "الاحساء", "ينبع", "بريدة", "الخرج", "حفر الباطن", "الجوف",
	"عرعر", "الباحة", "سكاكا", "جيزان", "خميس مشيط", "المجمعة", "شقراء", "رماح", "رأس تنورة", "القطيف",
}

// Captured location spans containing any of these are discarded as
// false positives of the labeled-phrase patterns.
var invalidLocationTerms = []string{"التواصل", "الواتس", "للتواصل", "الاتصال", "الرقم"}

// propertyLexicon maps each property category to its keyword synonyms.
// Matching is longest-keyword-wins across all categories; on equal length the
// earlier entry keeps the match, so the slice order breaks ties.
var propertyLexicon = []struct {
	Type     models.PropertyType
	Keywords []string
}{
	{models.PropertyApartment, []string{"شقة", "شقه", "شقق", "دور", "دوبلكس", "روف", "بنتهاوس", "شقة مفروشة", "استديو"}},
	{models.PropertyVilla, []string{"فيلا", "فلل", "فيلل", "فلة", "قصر", "منزل", "بيت", "دوبلكس", "تاون هاوس", "فيلا دوبلكس"}},
	{models.PropertyLand, []string{"أرض", "ارض", "قطعة", "قطعه", "قطع اراضي", "قطع أراضي", "أرض فضاء", "صك", "مخطط"}},
	{models.PropertyBuilding, []string{"عمارة", "عماره", "عمائر", "بناية", "بنايه", "برج", "إسكان", "اسكان", "مبنى", "مبنى سكني"}},
	{models.PropertyCommercial, []string{"محل", "معرض", "محلات", "معارض", "مول", "سوق", "محل تجاري", "دور أرضي تجاري"}},
	{models.PropertyOffice, []string{"مكتب", "مكاتب", "أوفيس", "اوفيس", "مقر", "مكتب إداري", "برج إداري", "مكتب تجاري"}},
	{models.PropertyResthouse, []string{"استراحة", "استراحه", "شاليه", "مزرعة", "مزرعه", "قاعة", "قاعه", "منتجع", "استراحات"}},
	{models.PropertyWarehouse, []string{"مستودع", "مستودعات", "هناجر", "هنجر", "مخزن", "مخازن", "ورشة", "ورشه", "مصنع"}},
}

// Offer-type keyword lists, checked in strict priority order: sale beats
// rent beats buy.
var (
	saleKeywords = []string{"للبيع", "بيع", "تمليك", "يبيع", "عرض بيع", "معروض للبيع", "البيع", "يعرض", "بسعر"}
	rentKeywords = []string{"للايجار", "للإيجار", "للتأجير", "ايجار", "إيجار", "تأجير", "مؤجر", "للإجار", "استئجار"}
	buyKeywords  = []string{"شراء", "للشراء", "أرغب بشراء", "يبغى يشتري", "أريد شراء", "مطلوب شراء", "مطلوب", "ابغى"}
)

// Price/deed context words used by the offer-type fallback heuristic.
var saleContextTerms = []string{"بسعر", "سعر", "مليون", "صك"}

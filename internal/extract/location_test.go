package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationGazetteerPrecedence(t *testing.T) {
	// A gazetteer city beats a labeled phrase no matter where it appears.
	got := Location("فيلا في حي الياسمين بمدينة الرياض")
	assert.Equal(t, "الرياض", got)
}

func TestLocationGazetteer(t *testing.T) {
	assert.Equal(t, "جدة", Location("شقة للبيع في جدة حي الروضة"))
	assert.Equal(t, "خميس مشيط", Location("أرض في خميس مشيط للبيع"))
}

func TestLocationPatternFallback(t *testing.T) {
	assert.Equal(t, "النرجس", Location("شقة للبيع في النرجس موقع ممتاز"))
	assert.Equal(t, "الوادي", Location("الموقع: الوادي قريب من الخدمات"))
}

func TestLocationRejectsFalsePositives(t *testing.T) {
	// Contact phrases captured by the labeled patterns are discarded.
	assert.Equal(t, "غير محدد", Location("في للتواصل اتصل بنا"))
}

func TestLocationUnknown(t *testing.T) {
	assert.Equal(t, "غير محدد", Location(""))
	assert.Equal(t, "غير محدد", Location("عرض مميز بسعر مغري"))
}

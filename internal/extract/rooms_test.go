package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRooms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"count before unit", "شقة 4 غرف وصالة", "4"},
		{"labeled", "غرف النوم: 3 وصالتين", "3"},
		{"composed phrase", "تتكون من 5 غرف نوم", "5"},
		{"bedroom unit", "3 غرفة نوم ومجلس", "3"},
		{"no rooms", "أرض تجارية على شارعين", "غير محدد"},
		{"empty", "", "غير محدد"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rooms(tt.text))
		})
	}
}

func TestBathrooms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"count before unit", "فيلا فيها 3 دورات مياه", "3"},
		{"labeled", "حمامات: 2 ومطبخ واسع", "2"},
		{"single bathroom", "شقة 1 حمام وغرفتين", "1"},
		{"no bathrooms", "مكتب مفتوح بدون خدمات", "غير محدد"},
		{"empty", "", "غير محدد"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bathrooms(tt.text))
		})
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCategory(t *testing.T) {
	cases := []struct {
		name        string
		productType string
		title       string
		want        ProductCategory
	}{
		{"beef meat", "Үхрийн цул мах", "Үхрийн цул мах - 1-р зэрэглэл", CategoryMeat},
		{"meat only in title", "1-р зэрэглэл", "Үхрийн мах", CategoryMeat},
		{"intestines", "Гэдэс дотор", "Гэдэс дотор", CategoryMeat},
		{"orom", "Өрөм", "Шинэ өрөм (1кг)", CategoryDairy},
		{"aaruul", "Ааруул", "Ааруул (Чихэртэй)", CategoryDairy},
		{"airag", "Айраг", "Айраг (Булган)", CategoryDairy},
		{"tarag", "Тараг", "Тараг", CategoryDairy},
		{"cashmere", "Ноолуур", "Ямааны ноолуур (Цагаан)", CategoryHides},
		{"hide", "Арьс шир", "Үхрийн арьс", CategoryHides},
		{"live animal", "Амьд хонь", "Амьд хонь", CategoryLive},
		{"livestock", "Мал", "Мал", CategoryLive},
		{"unknown", "Зөгийн бал", "Зөгийн бал", CategoryOther},
		{"empty", "", "", CategoryOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectCategory(tc.productType, tc.title))
		})
	}
}

func TestIsTrashed(t *testing.T) {
	assert.False(t, Product{}.IsTrashed())

	bin := TrashBinAdmin
	assert.True(t, Product{TrashBin: &bin}.IsTrashed())
}

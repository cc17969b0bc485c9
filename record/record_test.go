package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vuadocau-analyzer/internal/types"
)

func fptr(v float64) *float64 { return &v }

func TestClassify_RuleOrder(t *testing.T) {
	cases := []struct {
		name string
		want types.ProductType
	}{
		{"Cần câu tay Shimano 4m5", types.TypeRodHandheld},
		{"can cau tay carbon", types.TypeRodHandheld},
		{"Cần câu tay kèm máy", types.TypeRodHandheld}, // first rule wins over rod+reel
		{"Cần câu kèm máy ngang", types.TypeRodReel},
		{"Máy câu ngang Daiwa", types.TypeReelHorizontal},
		{"Máy câu đứng 5000", types.TypeReelVertical},
		{"Mồi giả lure mini", types.TypeLure},
		{"Phao câu đêm", types.TypeFloat},
		{"Dây cước tàng hình", types.TypeLine},
		{"Lưỡi câu Nhật", types.TypeHook},
		{"Ghế câu gấp gọn", types.TypeOther},
		{"", types.TypeOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.name), tc.name)
	}
}

func TestAssemble_EndToEnd(t *testing.T) {
	html := `<html><body>
		<h1>Cần câu tay GP-10 mồi</h1>
		<div class="star-rating" aria-label="4.8 out of 5"></div>
		<a class="woocommerce-review-link">(12)</a>
		<span>đã bán 120</span>
	</body></html>`
	raw := types.RawProduct{
		ProductURL: "https://vuadocau.com/san-pham/can-cau-tay-gp-10",
		Title:      "Cần câu tay GP-10 mồi",
		PageHTML:   html,
		Variations: []types.Variation{
			{Attributes: map[string]string{"attribute_size": "4m5"}, Price: fptr(150000), Purchasable: true},
			{Attributes: map[string]string{"attribute_size": "5m4"}, Price: fptr(180000), Purchasable: true},
		},
	}

	rec, err := Assemble(raw)
	require.NoError(t, err)

	assert.Equal(t, types.TypeRodHandheld, rec.ProductType)
	assert.Equal(t, "4m5|5m4", rec.SizeRaw)
	assert.Equal(t, "150000|180000", rec.PriceRaw)
	require.NotNil(t, rec.SoldCount)
	assert.Equal(t, 120, *rec.SoldCount)
	require.NotNil(t, rec.RatingScore)
	assert.Equal(t, 4.8, *rec.RatingScore)
	require.NotNil(t, rec.ReviewCount)
	assert.Equal(t, 12, *rec.ReviewCount)
}

func TestAssemble_SizePriceAligned(t *testing.T) {
	raw := types.RawProduct{
		ProductURL: "https://vuadocau.com/p",
		Variations: []types.Variation{
			{Attributes: map[string]string{"attribute_size": "6m3"}, Price: fptr(300), Purchasable: true},
			{Attributes: map[string]string{"attribute_size": "4m5"}, Price: fptr(100), Purchasable: true},
		},
	}
	rec, err := Assemble(raw)
	require.NoError(t, err)

	sizes := strings.Split(rec.SizeRaw, "|")
	prices := strings.Split(rec.PriceRaw, "|")
	assert.Len(t, prices, len(sizes))
	assert.Equal(t, []string{"4m5", "6m3"}, sizes)
	assert.Equal(t, []string{"100", "300"}, prices)
}

func TestAssemble_MostlyAbsentStillProducesRecord(t *testing.T) {
	rec, err := Assemble(types.RawProduct{
		ProductURL: "https://vuadocau.com/p",
		Title:      "Ghế câu",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ghế câu", rec.Name)
	assert.Empty(t, rec.SizeRaw)
	assert.Empty(t, rec.PriceRaw)
	assert.Nil(t, rec.RatingScore)
	assert.Nil(t, rec.SoldCount)
	assert.Equal(t, types.TypeOther, rec.ProductType)
}

func TestAssemble_StructuralFailures(t *testing.T) {
	_, err := Assemble(types.RawProduct{Title: "no url"})
	assert.Error(t, err)

	_, err = Assemble(types.RawProduct{ProductURL: "https://vuadocau.com/p"})
	assert.Error(t, err, "an entirely empty candidate bag is the one visible error")
}

func TestAssemble_ImageOnlyBagIsNotStructuralFailure(t *testing.T) {
	rec, err := Assemble(types.RawProduct{
		ProductURL: "https://vuadocau.com/p",
		ImageURL:   "https://cdn.example.com/can-cau.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/can-cau.jpg", rec.ImageURL)
	assert.Empty(t, rec.Name)
}

func TestAssemble_CleansOutputStrings(t *testing.T) {
	rec, err := Assemble(types.RawProduct{
		ProductURL: "https://vuadocau.com/p",
		Title:      "Cần câu\r\ntay\x01 GP-7",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cần câu tay GP-7", rec.Name)
}

func TestDedup_FirstOccurrenceKept(t *testing.T) {
	a := types.ProductRecord{
		Name: "Cần câu tay", SizeRaw: "4m5", PriceRaw: "150000",
		ProductURL: "https://vuadocau.com/p1", ColorGroup: "Đỏ",
	}
	b := a
	b.ColorGroup = "Xanh" // same dedup tuple, different payload

	out := Dedup([]types.ProductRecord{a, b})
	require.Len(t, out, 1)
	assert.Equal(t, "Đỏ", out[0].ColorGroup)
}

func TestDedup_DifferentURLsSurvive(t *testing.T) {
	a := types.ProductRecord{Name: "Cần câu tay", SizeRaw: "4m5", PriceRaw: "150000", ProductURL: "https://vuadocau.com/p1"}
	b := a
	b.ProductURL = "https://vuadocau.com/p2"

	out := Dedup([]types.ProductRecord{a, b})
	assert.Len(t, out, 2)
}

func TestPriceClean(t *testing.T) {
	n, ok := PriceClean("150.000 ₫")
	require.True(t, ok)
	assert.Equal(t, int64(150000), n)

	_, ok = PriceClean("")
	assert.False(t, ok)

	n, ok = PriceClean("150000|180000")
	require.True(t, ok, "joined prices concatenate into one normalized integer")
	assert.Equal(t, int64(150000180000), n)
}

func TestPartition_IsAPurePartition(t *testing.T) {
	records := []types.ProductRecord{
		{Name: "a", SizeRaw: "4m5", PriceRaw: "150000", ProductURL: "u1"},
		{Name: "b", SizeRaw: "", PriceRaw: "150000", ProductURL: "u2"},
		{Name: "c", SizeRaw: "4m5", PriceRaw: "", ProductURL: "u3"},
		{Name: "d", SizeRaw: "XL", PriceRaw: "99000", ProductURL: "u4"},
	}

	clean, incomplete := Partition(records)
	assert.Len(t, clean, 1)
	assert.Len(t, incomplete, 3)
	assert.Equal(t, "a", clean[0].Name)
	assert.Equal(t, len(records), len(clean)+len(incomplete))
}

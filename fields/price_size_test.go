package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vuadocau-analyzer/internal/types"
)

func fptr(v float64) *float64 { return &v }

func variation(size string, price float64, purchasable bool) types.Variation {
	return types.Variation{
		Attributes:  map[string]string{"attribute_size": size},
		Price:       fptr(price),
		Purchasable: purchasable,
	}
}

func TestSizePriceFromVariations_FirstSeenWins(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		ProductURL: "https://vuadocau.com/p",
		Variations: []types.Variation{
			variation("4m5", 150000, true),
			variation("4m5", 160000, true),
		},
	})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "4m5", sp.SizeRaw())
	assert.Equal(t, "150000", sp.PriceRaw())
}

func TestSizePriceFromVariations_SortedByLeadingNumber(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		Variations: []types.Variation{
			variation("6m3", 300, true),
			variation("4m5", 100, true),
			variation("5m4", 200, true),
		},
	})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "4m5|5m4|6m3", sp.SizeRaw())
	assert.Equal(t, "100|200|300", sp.PriceRaw())
	assert.Len(t, sp.Prices, len(sp.Sizes), "sizes and prices stay index-aligned")
}

func TestSizePriceFromVariations_SkipsNonPurchasable(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		Variations: []types.Variation{
			variation("4m5", 150000, false),
			variation("5m4", 180000, true),
		},
	})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "5m4", sp.SizeRaw())
	assert.Equal(t, "180000", sp.PriceRaw())
}

func TestSizePriceFromVariations_SkipsMissingPrice(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		Variations: []types.Variation{
			{Attributes: map[string]string{"attribute_size": "4m5"}, Purchasable: true},
		},
	})

	_, ok := ExtractSizePrice(c)
	assert.False(t, ok)
}

func TestSizePriceFromVariations_FallsBackToFirstAttribute(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		Variations: []types.Variation{
			{
				Attributes:  map[string]string{"attribute_pa_phien-ban": "Cao cấp"},
				Price:       fptr(250000),
				Purchasable: true,
			},
		},
	})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "Cao cấp", sp.SizeRaw())
	assert.Equal(t, "250000", sp.PriceRaw())
}

func TestSizePriceFromVariations_FractionalPriceKept(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		Variations: []types.Variation{
			variation("4m5", 150000.5, true),
		},
	})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "150000.5", sp.PriceRaw())
}

func TestPriceFromSelectors_SimpleProduct(t *testing.T) {
	html := `<html><body>
		<p class="price"><span class="woocommerce-Price-amount amount"><bdi>185.000&nbsp;₫</bdi></span></p>
	</body></html>`
	c := NewCandidates(types.RawProduct{PageHTML: html})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Empty(t, sp.Sizes, "simple products carry no size tokens")
	assert.Equal(t, "185000", sp.PriceRaw())
}

func TestPriceFromSelectors_ListingPriceFallback(t *testing.T) {
	c := NewCandidates(types.RawProduct{ListingPrice: "99.000 ₫"})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "99000", sp.PriceRaw())
}

func TestPriceFromCurrencyPattern(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		PageHTML: `<div>Giao hàng 500 VND phí... giá 1.250.000 VNĐ</div>`,
	})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "1250000", sp.PriceRaw(), "amounts at or below 1000 are rejected")
}

func TestExtractSizePrice_AllStrategiesFail(t *testing.T) {
	c := NewCandidates(types.RawProduct{Title: "Cần câu"})

	_, ok := ExtractSizePrice(c)
	assert.False(t, ok)
}

func TestVariationsTakePriorityOverRenderedPrice(t *testing.T) {
	c := NewCandidates(types.RawProduct{
		Variations: []types.Variation{variation("4m5", 150000, true)},
		PageHTML:   `<p class="price"><span class="woocommerce-Price-amount"><bdi>999.000 ₫</bdi></span></p>`,
	})

	sp, ok := ExtractSizePrice(c)
	require.True(t, ok)
	assert.Equal(t, "150000", sp.PriceRaw())
}

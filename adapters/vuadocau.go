package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vuadocau-analyzer/internal/types"
)

// ProductLink is one product discovered on a listing page, together
// with the price text shown on the listing card.
type ProductLink struct {
	URL          string
	ListingPrice string
}

// VuadocauAdapter crawls the vuadocau.com WooCommerce storefront: it
// walks the paginated shop listing and builds the raw candidate bag
// for each product page.
type VuadocauAdapter struct {
	*BaseAdapter
}

// NewVuadocauAdapter creates a new vuadocau.com adapter.
func NewVuadocauAdapter(config *types.Config, logger types.Logger) *VuadocauAdapter {
	return &VuadocauAdapter{BaseAdapter: NewBaseAdapter(config, logger)}
}

// GetStoreName returns the store name.
func (a *VuadocauAdapter) GetStoreName() string {
	return "vuadocau.com"
}

// DiscoverProducts walks the shop pages in order and returns the
// unique product links in discovery order, with listing prices.
func (a *VuadocauAdapter) DiscoverProducts(ctx context.Context) ([]ProductLink, error) {
	a.logger.Info("Starting product discovery")

	seen := make(map[string]bool)
	var links []ProductLink

	for page := 1; ; page++ {
		if a.config.MaxPages > 0 && page > a.config.MaxPages {
			a.logger.Debugf("stopping at configured page limit %d", a.config.MaxPages)
			break
		}

		pageURL := a.shopPageURL(page)
		html, err := a.GetPageContent(ctx, pageURL, "li.product")
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("failed to load shop page: %w", err)
			}
			a.logger.Debugf("page %d not reachable, assuming end of listing: %v", page, err)
			break
		}

		doc, err := a.ParseHTML(html)
		if err != nil {
			return nil, fmt.Errorf("failed to parse shop page %d: %w", page, err)
		}

		added := 0
		doc.Find("li.product").Each(func(_ int, card *goquery.Selection) {
			href := strings.TrimSpace(card.Find("a.woocommerce-LoopProduct-link").First().AttrOr("href", ""))
			if href == "" || seen[href] {
				return
			}
			if _, err := url.Parse(href); err != nil {
				return
			}
			seen[href] = true
			links = append(links, ProductLink{URL: href, ListingPrice: listingPrice(card)})
			added++
		})

		a.logger.Infof("page %d: +%d products (total %d)", page, added, len(links))

		hasNext := doc.Find("a.next.page-numbers").Length() > 0
		if !hasNext {
			a.logger.Debug("no next-page link, listing exhausted")
			break
		}
		// A page of already-seen products (sticky/featured cards) still
		// advances while the listing says there is more.
		if added == 0 {
			a.logger.Debugf("page %d yielded no new products, continuing", page)
		}
		if a.config.MaxProducts > 0 && len(links) >= a.config.MaxProducts {
			break
		}
	}

	if a.config.MaxProducts > 0 && len(links) > a.config.MaxProducts {
		links = links[:a.config.MaxProducts]
	}
	a.logger.Infof("total unique products found: %d", len(links))
	return links, nil
}

func (a *VuadocauAdapter) shopPageURL(page int) string {
	base := strings.TrimRight(a.config.BaseURL, "/")
	if page <= 1 {
		return base + "/"
	}
	return fmt.Sprintf("%s/page/%d/", base, page)
}

// listingPrice reads the price text off a listing card, preferring the
// sale price when the card shows a crossed-out regular one.
func listingPrice(card *goquery.Selection) string {
	priceBox := card.Find("span.price").First()
	if priceBox.Length() == 0 {
		return ""
	}
	if sale := strings.TrimSpace(priceBox.Find("ins span").First().Text()); sale != "" {
		return sale
	}
	return strings.TrimSpace(priceBox.Text())
}

// FetchRawProduct loads one product page and assembles its raw
// candidate bag. A page that cannot be fetched or parsed at all is a
// structural failure and surfaces as an error.
func (a *VuadocauAdapter) FetchRawProduct(ctx context.Context, link ProductLink) (types.RawProduct, error) {
	a.logger.Debugf("fetching product page %s", link.URL)

	html, err := a.GetPageContent(ctx, link.URL, "")
	if err != nil {
		return types.RawProduct{}, fmt.Errorf("failed to get product page: %w", err)
	}
	doc, err := a.ParseHTML(html)
	if err != nil {
		return types.RawProduct{}, fmt.Errorf("failed to parse product page: %w", err)
	}

	raw := types.RawProduct{
		ProductURL:   link.URL,
		ListingPrice: link.ListingPrice,
		PageHTML:     html,
		Title:        a.FirstText(doc, "h1"),
		ShortDesc:    strings.TrimSpace(doc.Find("div.woocommerce-product-details__short-description").First().Text()),
		ImageURL: a.FirstAttr(doc, []string{"src", "data-src"},
			"img.wp-post-image",
			"figure.woocommerce-product-gallery__wrapper img"),
		Variations: a.parseVariations(doc),
	}

	doc.Find("ol.commentlist li.review p").Each(func(_ int, el *goquery.Selection) {
		if text := strings.TrimSpace(el.Text()); text != "" {
			raw.Comments = append(raw.Comments, text)
		}
	})

	return raw, nil
}

// wooVariation mirrors the relevant slice of the WooCommerce
// data-product_variations entries. Attribute values and prices arrive
// as strings or numbers depending on the theme, so both stay loose.
type wooVariation struct {
	Attributes    map[string]any `json:"attributes"`
	DisplayPrice  any            `json:"display_price"`
	Price         any            `json:"price"`
	IsPurchasable *bool          `json:"is_purchasable"`
}

// parseVariations decodes the structured variation payload off the
// variations form. A missing or unreadable payload yields no
// variations, never an error.
func (a *VuadocauAdapter) parseVariations(doc *goquery.Document) []types.Variation {
	data := doc.Find("form.variations_form").First().AttrOr("data-product_variations", "")
	if data == "" {
		return nil
	}
	// Some themes double-escape the attribute value.
	data = strings.ReplaceAll(data, "&quot;", `"`)

	var decoded []wooVariation
	if err := json.Unmarshal([]byte(data), &decoded); err != nil {
		a.logger.Debugf("unreadable variations payload: %v", err)
		return nil
	}

	out := make([]types.Variation, 0, len(decoded))
	for _, wv := range decoded {
		v := types.Variation{
			Attributes:  make(map[string]string, len(wv.Attributes)),
			Purchasable: wv.IsPurchasable == nil || *wv.IsPurchasable,
		}
		for key, val := range wv.Attributes {
			v.Attributes[key] = attrString(val)
		}
		if price := toFloat(wv.DisplayPrice); price != nil {
			v.Price = price
		} else {
			v.Price = toFloat(wv.Price)
		}
		out = append(out, v)
	}
	return out
}

func attrString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

func toFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

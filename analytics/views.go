package analytics

import (
	"sort"
	"strconv"
	"strings"

	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/normalize"
)

// Item is one record of the valid subset: a handheld-rod product with a
// resolved price at the target size. Revenue is absent whenever the
// sold count is absent, and such items stay out of the revenue views.
type Item struct {
	Record  types.ProductRecord `json:"record"`
	Price   int64               `json:"price_at_target"`
	Revenue *int64              `json:"revenue,omitempty"`
}

// View is a named, derived subset of the valid items. Views never
// mutate their input and are recomputed from scratch each run.
type View struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// PriceAtSize resolves the price of the target size token by positional
// correspondence: the token's index in the size sequence read against
// the same index of the price sequence. Absent when the token is
// missing or the price sequence is shorter.
func PriceAtSize(r types.ProductRecord, target string) (int64, bool) {
	if r.SizeRaw == "" || r.PriceRaw == "" {
		return 0, false
	}
	sizes := splitTokens(r.SizeRaw)
	prices := numericTokens(r.PriceRaw)
	for i, s := range sizes {
		if s == target {
			if i < len(prices) {
				return prices[i], true
			}
			return 0, false
		}
	}
	return 0, false
}

func splitTokens(s string) []string {
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// numericTokens parses each delimited price token to its digit value,
// skipping tokens with no digits at all.
func numericTokens(s string) []int64 {
	var out []int64
	for _, p := range strings.Split(s, "|") {
		digits := normalize.ExtractDigits(p)
		if digits == "" {
			continue
		}
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// ValidSubset filters the handheld-rod records with a resolvable price
// at the target size and attaches revenue where the sold count exists.
func ValidSubset(records []types.ProductRecord, target string) []Item {
	var items []Item
	for _, r := range records {
		if r.ProductType != types.TypeRodHandheld {
			continue
		}
		price, ok := PriceAtSize(r, target)
		if !ok {
			continue
		}
		it := Item{Record: r, Price: price}
		if r.SoldCount != nil {
			rev := price * int64(*r.SoldCount)
			it.Revenue = &rev
		}
		items = append(items, it)
	}
	return items
}

// Views computes the ten signal views over the valid subset. An empty
// subset produces ten empty views, never an error.
func Views(items []Item) []View {
	prices := make([]float64, len(items))
	for i, it := range items {
		prices[i] = float64(it.Price)
	}
	var sold []float64
	for _, it := range items {
		if it.Record.SoldCount != nil {
			sold = append(sold, float64(*it.Record.SoldCount))
		}
	}

	priceQ := func(q float64) (float64, bool) { return Quantile(prices, q) }
	soldQ := func(q float64) (float64, bool) { return Quantile(sold, q) }

	return []View{
		underpricedHot(items, priceQ, soldQ),
		topRevenue(items, 10),
		highRatingLowReview(items),
		lowRatingHighSold(items, soldQ),
		noCommentButHot(items, soldQ),
		revenueCore(items),
		priceOutliers(items, priceQ),
		premiumButSlow(items, priceQ, soldQ),
		goodValueScalable(items, priceQ, soldQ),
		fragileRating(items),
	}
}

type quantileFn func(q float64) (float64, bool)

func filter(items []Item, keep func(Item) bool) []Item {
	var out []Item
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func soldOf(it Item) (float64, bool) {
	if it.Record.SoldCount == nil {
		return 0, false
	}
	return float64(*it.Record.SoldCount), true
}

func ratingOf(it Item) (float64, bool) {
	if it.Record.RatingScore == nil {
		return 0, false
	}
	return *it.Record.RatingScore, true
}

func reviewsOf(it Item) (float64, bool) {
	if it.Record.ReviewCount == nil {
		return 0, false
	}
	return float64(*it.Record.ReviewCount), true
}

func underpricedHot(items []Item, priceQ, soldQ quantileFn) View {
	p25, okP := priceQ(0.25)
	s75, okS := soldQ(0.75)
	v := View{Name: "underpriced_hot", Title: "Underpriced but selling hot"}
	if !okP || !okS {
		return v
	}
	v.Items = filter(items, func(it Item) bool {
		sold, ok := soldOf(it)
		return ok && float64(it.Price) < p25 && sold > s75
	})
	return v
}

// byRevenueDesc sorts a copy of the revenue-bearing items descending,
// ties in input order.
func byRevenueDesc(items []Item) []Item {
	withRev := filter(items, func(it Item) bool { return it.Revenue != nil })
	sorted := append([]Item(nil), withRev...)
	sort.SliceStable(sorted, func(i, j int) bool { return *sorted[i].Revenue > *sorted[j].Revenue })
	return sorted
}

func topRevenue(items []Item, n int) View {
	sorted := byRevenueDesc(items)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return View{Name: "top_revenue", Title: "Top products by revenue", Items: sorted}
}

func highRatingLowReview(items []Item) View {
	return View{
		Name:  "high_rating_low_review",
		Title: "High rating, few reviews (trust risk)",
		Items: filter(items, func(it Item) bool {
			rating, okR := ratingOf(it)
			reviews, okN := reviewsOf(it)
			return okR && okN && rating >= 4.5 && reviews < 5
		}),
	}
}

func lowRatingHighSold(items []Item, soldQ quantileFn) View {
	s75, ok := soldQ(0.75)
	v := View{Name: "low_rating_high_sold", Title: "Low rating but selling strong"}
	if !ok {
		return v
	}
	v.Items = filter(items, func(it Item) bool {
		rating, okR := ratingOf(it)
		sold, okS := soldOf(it)
		return okR && okS && rating < 4 && sold > s75
	})
	return v
}

func noCommentButHot(items []Item, soldQ quantileFn) View {
	s90, ok := soldQ(0.9)
	v := View{Name: "no_comment_but_hot", Title: "No comments but selling very well"}
	if !ok {
		return v
	}
	v.Items = filter(items, func(it Item) bool {
		sold, okS := soldOf(it)
		return okS && it.Record.FirstComment == "" && sold > s90
	})
	return v
}

// revenueCore keeps the revenue-sorted prefix whose cumulative revenue
// share stays at or below 80%. The share comparison cross-multiplies in
// integers so a cumulative share of exactly 0.8 is inclusive.
func revenueCore(items []Item) View {
	v := View{Name: "revenue_core", Title: "Products carrying 80% of revenue"}
	sorted := byRevenueDesc(items)
	var total int64
	for _, it := range sorted {
		total += *it.Revenue
	}
	if total <= 0 {
		return v
	}
	var cum int64
	for _, it := range sorted {
		cum += *it.Revenue
		if cum*5 > total*4 {
			break
		}
		v.Items = append(v.Items, it)
	}
	return v
}

func priceOutliers(items []Item, priceQ quantileFn) View {
	p01, ok1 := priceQ(0.01)
	p99, ok2 := priceQ(0.99)
	v := View{Name: "price_outliers", Title: "Abnormal prices (check listings)"}
	if !ok1 || !ok2 {
		return v
	}
	v.Items = filter(items, func(it Item) bool {
		p := float64(it.Price)
		return p < p01 || p > p99
	})
	return v
}

func premiumButSlow(items []Item, priceQ, soldQ quantileFn) View {
	p80, okP := priceQ(0.8)
	s30, okS := soldQ(0.3)
	v := View{Name: "premium_but_slow", Title: "Premium priced but slow moving"}
	if !okP || !okS {
		return v
	}
	v.Items = filter(items, func(it Item) bool {
		sold, ok := soldOf(it)
		return ok && float64(it.Price) > p80 && sold < s30
	})
	return v
}

func goodValueScalable(items []Item, priceQ, soldQ quantileFn) View {
	priceMed, okP := priceQ(0.5)
	soldMed, okS := soldQ(0.5)
	v := View{Name: "good_value_scalable", Title: "Good value, room to scale"}
	if !okP || !okS {
		return v
	}
	v.Items = filter(items, func(it Item) bool {
		rating, okR := ratingOf(it)
		sold, okSold := soldOf(it)
		return okR && okSold && rating >= 4.5 && float64(it.Price) <= priceMed && sold > soldMed
	})
	return v
}

func fragileRating(items []Item) View {
	return View{
		Name:  "fragile_rating",
		Title: "High rating on too little review data",
		Items: filter(items, func(it Item) bool {
			rating, okR := ratingOf(it)
			reviews, okN := reviewsOf(it)
			return okR && okN && rating >= 4.8 && reviews <= 3
		}),
	}
}

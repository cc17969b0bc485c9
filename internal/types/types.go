package types

import "time"

// ProductType is the coarse product category derived from the product name.
type ProductType string

const (
	TypeRodHandheld    ProductType = "rod_handheld"
	TypeRodReel        ProductType = "rod_reel"
	TypeReelHorizontal ProductType = "reel_horizontal"
	TypeReelVertical   ProductType = "reel_vertical"
	TypeLure           ProductType = "lure"
	TypeFloat          ProductType = "float"
	TypeLine           ProductType = "line"
	TypeHook           ProductType = "hook"
	TypeOther          ProductType = "other"
)

// Variation is one purchasable size/color combination of a product,
// decoded from the WooCommerce data-product_variations payload.
type Variation struct {
	Attributes  map[string]string `json:"attributes"`
	Price       *float64          `json:"price,omitempty"`
	Purchasable bool              `json:"purchasable"`
}

// RawProduct is the bag of raw per-product field candidates handed to the
// extraction core. Every field except ProductURL may be empty; extractors
// degrade to absent rather than fail.
type RawProduct struct {
	ProductURL   string      `json:"product_url"`
	Title        string      `json:"title,omitempty"`
	ShortDesc    string      `json:"short_description,omitempty"`
	Variations   []Variation `json:"variations,omitempty"`
	PageHTML     string      `json:"page_html,omitempty"`
	ListingPrice string      `json:"listing_price,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	Comments     []string    `json:"comments,omitempty"`
}

// Empty reports whether the bag carries no usable candidates at all.
// An empty bag is a structural extraction failure, not field absence.
func (r RawProduct) Empty() bool {
	return r.Title == "" && r.ShortDesc == "" && len(r.Variations) == 0 &&
		r.PageHTML == "" && r.ListingPrice == "" && r.ImageURL == "" &&
		len(r.Comments) == 0
}

// ProductRecord is the canonical, immutable output unit of the pipeline.
// Numeric fields are pointers so a parsed zero stays distinct from a
// failed parse; string fields use "" for absent.
type ProductRecord struct {
	Name         string      `json:"name,omitempty"`
	SizeRaw      string      `json:"size_raw,omitempty"`
	PriceRaw     string      `json:"price_raw,omitempty"`
	ColorGroup   string      `json:"color_group,omitempty"`
	RatingScore  *float64    `json:"rating_score,omitempty"`
	ReviewCount  *int        `json:"review_count,omitempty"`
	SoldCount    *int        `json:"sold_count,omitempty"`
	FirstComment string      `json:"first_comment,omitempty"`
	ShortDesc    string      `json:"short_description,omitempty"`
	ProductURL   string      `json:"product_url"`
	ImageURL     string      `json:"image_url,omitempty"`
	ProductType  ProductType `json:"product_type"`
}

// ExtractionError records a product whose raw input could not be read at
// all. Field-level absence is never reported here.
type ExtractionError struct {
	ProductURL string `json:"product_url"`
	Reason     string `json:"reason"`
}

// RunResult is the outcome of a full extraction pass: the deduplicated
// record set split into clean and incomplete, plus structural failures.
type RunResult struct {
	Clean      []ProductRecord   `json:"clean"`
	Incomplete []ProductRecord   `json:"incomplete"`
	Errors     []ExtractionError `json:"errors,omitempty"`
}

// Records returns clean and incomplete records as one slice, clean first.
func (r RunResult) Records() []ProductRecord {
	out := make([]ProductRecord, 0, len(r.Clean)+len(r.Incomplete))
	out = append(out, r.Clean...)
	return append(out, r.Incomplete...)
}

// Config holds the runtime configuration for crawling and analytics.
type Config struct {
	BaseURL               string
	RequestDelay          time.Duration
	MaxRetries            int
	Timeout               time.Duration
	MaxConcurrentRequests int
	UseHeadlessBrowser    bool
	UserAgent             string
	MaxPages              int
	MaxProducts           int
	TargetSize            string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:               "https://vuadocau.com/shop/",
		RequestDelay:          1 * time.Second,
		MaxRetries:            3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 5,
		UseHeadlessBrowser:    true,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		MaxPages:              0,
		MaxProducts:           0,
		TargetSize:            "4m5",
	}
}

// Logger defines the logging interface.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

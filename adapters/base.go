package adapters

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/utils"
)

// BaseAdapter provides the page-access layer store adapters build on:
// an HTTP client for static pages and a headless browser for
// script-rendered ones, selected by configuration.
type BaseAdapter struct {
	config        *types.Config
	logger        types.Logger
	httpClient    *utils.HTTPClient
	browserClient *utils.BrowserClient
}

// NewBaseAdapter creates a base adapter with initialized clients.
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config:        config,
		logger:        logger,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// GetPageContent retrieves a page's HTML, waiting for waitSelector when
// the headless browser is in use.
func (b *BaseAdapter) GetPageContent(ctx context.Context, url, waitSelector string) (string, error) {
	if b.config.UseHeadlessBrowser {
		return b.browserClient.GetPageContent(ctx, url, waitSelector)
	}

	body, err := b.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ParseHTML parses HTML content into a goquery document.
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// FirstText returns the trimmed text of the first selector in the list
// that matches a non-empty element.
func (b *BaseAdapter) FirstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// FirstAttr returns the first non-empty value among the given
// attributes of the first element matching any selector.
func (b *BaseAdapter) FirstAttr(doc *goquery.Document, attrs []string, selectors ...string) string {
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		for _, attr := range attrs {
			if v := strings.TrimSpace(el.AttrOr(attr, "")); v != "" {
				return v
			}
		}
	}
	return ""
}

// Config returns the adapter configuration.
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}

// Close cleans up resources.
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}

package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"vuadocau-analyzer/internal/types"
)

// BrowserClient renders JavaScript-driven storefront pages through a
// headless browser. The product grid and variation widgets only exist
// after scripts run, so the plain HTTP client misses them.
type BrowserClient struct {
	config *types.Config
	logger types.Logger
}

// NewBrowserClient creates a new browser client.
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	// Suppress chromedp debug logging
	log.SetOutput(io.Discard)

	return &BrowserClient{
		config: config,
		logger: logger,
	}
}

// GetPageContent navigates to url and returns the rendered HTML. When
// waitSelector is non-empty, rendering blocks until that element is
// visible before the snapshot is taken.
func (b *BrowserClient) GetPageContent(ctx context.Context, url, waitSelector string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.config.Timeout)
	defer cancel()

	actions := []chromedp.Action{chromedp.Navigate(url)}
	if waitSelector != "" {
		actions = append(actions, chromedp.WaitVisible(waitSelector))
	} else {
		actions = append(actions, chromedp.Sleep(500*time.Millisecond))
	}

	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("failed to get page content: %w", err)
	}

	b.logger.Debugf("rendered %s (%d bytes)", url, len(html))
	return html, nil
}

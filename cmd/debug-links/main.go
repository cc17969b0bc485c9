// Command debug-links dumps what product discovery sees on a shop
// listing page, for tuning selectors against theme changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vuadocau-analyzer/internal/types"
	"vuadocau-analyzer/utils"
)

func main() {
	pageURL := flag.String("url", "https://vuadocau.com/shop/", "Listing page to inspect")
	useBrowser := flag.Bool("browser", false, "Render the page with the headless browser")
	flag.Parse()

	config := types.DefaultConfig()
	config.UseHeadlessBrowser = *useBrowser
	logger := &debugLogger{}

	var html string
	var err error
	if *useBrowser {
		html, err = utils.NewBrowserClient(config, logger).GetPageContent(context.Background(), *pageURL, "li.product")
	} else {
		var body []byte
		body, err = utils.NewHTTPClient(config, logger).Get(context.Background(), *pageURL)
		html = string(body)
	}
	if err != nil {
		log.Fatalf("Failed to get listing page: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Fatalf("Failed to parse HTML: %v", err)
	}

	cards := doc.Find("li.product")
	fmt.Printf("Product cards found: %d\n", cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		href := card.Find("a.woocommerce-LoopProduct-link").First().AttrOr("href", "")
		price := strings.TrimSpace(card.Find("span.price").First().Text())
		fmt.Printf("  %d: href='%s', price='%s'\n", i+1, href, price)
	})

	fmt.Printf("Next-page link present: %v\n", doc.Find("a.next.page-numbers").Length() > 0)

	fmt.Println("Sample of all links:")
	count := 0
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		if count >= 10 {
			return
		}
		href := s.AttrOr("href", "")
		text := strings.TrimSpace(s.Text())
		if href != "" && len(href) < 100 {
			fmt.Printf("  %d: href='%s', text='%s'\n", i+1, href, text)
			count++
		}
	})
}

type debugLogger struct{}

func (d *debugLogger) Debug(args ...interface{})                 { fmt.Println(args...) }
func (d *debugLogger) Info(args ...interface{})                  { fmt.Println(args...) }
func (d *debugLogger) Warn(args ...interface{})                  { fmt.Println(args...) }
func (d *debugLogger) Error(args ...interface{})                 { fmt.Println(args...) }
func (d *debugLogger) Debugf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Infof(format string, args ...interface{})  { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Warnf(format string, args ...interface{})  { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Errorf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }

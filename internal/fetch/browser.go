package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the extracted-text size below which a plain HTTP fetch
// is assumed to have hit a JavaScript-rendered page.
const MinContentLength = 500

const defaultBrowserTimeout = 30 * time.Second

// Settle times after navigation: one for client-side rendering, one after
// dismissing a consent overlay.
const (
	renderSettleDelay  = 3 * time.Second
	dismissSettleDelay = 1 * time.Second
)

var headlessFlags = []chromedp.ExecAllocatorOption{
	chromedp.Flag("headless", true),
	chromedp.Flag("disable-gpu", true),
	chromedp.Flag("no-sandbox", true),
	chromedp.Flag("disable-dev-shm-usage", true),
}

// ShouldUseBrowser reports whether the plain HTTP fetch produced too little
// text to be worth ingesting.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser loads a page in headless Chrome and returns the fully rendered
// HTML. Chrome or Chromium must be installed on the host.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:], headlessFlags...)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettleDelay),
		dismissConsentOverlay(),
		chromedp.Sleep(dismissSettleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// dismissConsentOverlay clicks a visible cookie or consent accept button when
// one exists. Sites without one are left alone; the click never fails the run.
func dismissConsentOverlay() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		sel := `button[id*="accept"], button[class*="accept"], button:contains("OK"), button:contains("Accept")`
		_ = chromedp.Click(sel, chromedp.NodeVisible).Do(ctx)
		return nil
	})
}

// BrowserSimple renders a page with the default timeout.
func BrowserSimple(ctx context.Context, url string, verbose bool) (string, error) {
	return WithBrowser(ctx, url, defaultBrowserTimeout, verbose)
}

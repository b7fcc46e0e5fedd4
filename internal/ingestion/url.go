package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/deck-generator/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestFromURL fetches a page, extracts the main article text, cleans it,
// and returns it with metadata. If useBrowser is true, falls back to a
// headless browser when the page looks like a JavaScript-rendered SPA.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	textContent, err := fetch.ExtractMainText(result.HTML, fetch.ArticleSelectors())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(textContent))
	}

	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(textContent), fetch.MinContentLength)
		}

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, verbose)
		if browserErr != nil {
			if verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
			// Continue with HTTP content if browser fails
		} else {
			rendered, extractErr := fetch.ExtractMainText(browserHTML, fetch.ArticleSelectors())
			if extractErr == nil {
				textContent = rendered
			} else if verbose {
				log.Printf("[VERBOSE] Browser content extraction failed: %v", extractErr)
			}
		}
	}

	cleaned := CleanText(textContent)
	truncated := Truncate(cleaned)

	metadata := NewMetadata(truncated, urlStr)
	metadata.Truncated = len(truncated) < len(cleaned)

	return truncated, metadata, nil
}

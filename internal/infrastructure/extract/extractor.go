package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

const (
	defaultContentLimit = 10000
	truncationMarker    = "... [content truncated]"

	// Many sources reject requests carrying default Go user agents.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// nonContentSelector lists the elements stripped before text extraction.
const nonContentSelector = "script, style, nav, header, footer, aside, form"

// Extractor fetches a URL and turns the page into bounded cleaned text.
// Fetch failures are classified and captured inside the returned document,
// never raised.
type Extractor struct {
	client       *http.Client
	contentLimit int
}

var _ ports.ContentExtractor = (*Extractor)(nil)

// NewExtractor wires an HTTP client; a nil client gets a 10s timeout
// default. contentLimit <= 0 falls back to 10000 characters.
func NewExtractor(client *http.Client, contentLimit int) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if contentLimit <= 0 {
		contentLimit = defaultContentLimit
	}
	return &Extractor{client: client, contentLimit: contentLimit}
}

// Extract GETs the candidate URL and returns a document holding cleaned
// text on success or a classified fetch error. The error message is stored
// as content for rendering; Status and ErrorKind are the canonical signal.
func (e *Extractor) Extract(ctx context.Context, candidate domain.CandidateURL) domain.Document {
	doc := domain.Document{
		URL:         candidate.URL,
		PublishedAt: candidate.PublishedAt,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate.URL, nil)
	if err != nil {
		return failed(doc, domain.FetchOther, 0,
			fmt.Sprintf("Error extracting content: %v for %s", err, candidate.URL))
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		kind := classifyTransportError(err)
		switch kind {
		case domain.FetchTimeout:
			return failed(doc, kind, 0, fmt.Sprintf("Error: request timed out for %s", candidate.URL))
		case domain.FetchConnection:
			return failed(doc, kind, 0, fmt.Sprintf("Error: connection error for %s", candidate.URL))
		default:
			return failed(doc, kind, 0, fmt.Sprintf("Error extracting content: %v for %s", err, candidate.URL))
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return failed(doc, domain.FetchHTTPStatus, resp.StatusCode,
			fmt.Sprintf("Error: HTTP error %s for %s", resp.Status, candidate.URL))
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return failed(doc, domain.FetchOther, 0,
			fmt.Sprintf("Error extracting content: %v for %s", err, candidate.URL))
	}

	if doc.PublishedAt.IsZero() {
		doc.PublishedAt = publicationDate(page)
	}

	doc.Status = domain.StatusOK
	doc.Content = e.cleanText(page)
	return doc
}

// cleanText strips non-content elements, collapses all whitespace runs into
// single spaces, and bounds the result. The transformation is idempotent:
// re-cleaning cleaned text yields the same bytes.
func (e *Extractor) cleanText(page *goquery.Document) string {
	page.Find(nonContentSelector).Remove()

	text := strings.Join(strings.Fields(page.Text()), " ")

	runes := []rune(text)
	if len(runes) > e.contentLimit {
		text = string(runes[:e.contentLimit]) + truncationMarker
	}
	return text
}

// publicationDate reads common publication-date meta tags; zero when absent.
func publicationDate(page *goquery.Document) time.Time {
	candidates := []string{
		"meta[property='article:published_time']",
		"meta[name='pubdate']",
		"meta[name='date']",
	}

	for _, selector := range candidates {
		raw, ok := page.Find(selector).First().Attr("content")
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z0700", "2006-01-02"} {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed
			}
		}
	}

	if raw, ok := page.Find("time[datetime]").First().Attr("datetime"); ok {
		raw = strings.TrimSpace(raw)
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed
			}
		}
	}

	return time.Time{}
}

// classifyTransportError maps a client.Do failure to a fetch error kind.
func classifyTransportError(err error) domain.FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FetchTimeout
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return domain.FetchTimeout
		}
		return domain.FetchConnection
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.FetchTimeout
	}

	return domain.FetchOther
}

func failed(doc domain.Document, kind domain.FetchErrorKind, statusCode int, message string) domain.Document {
	doc.Status = domain.StatusFetchError
	doc.ErrorKind = kind
	doc.HTTPStatusCode = statusCode
	doc.Content = message
	return doc
}

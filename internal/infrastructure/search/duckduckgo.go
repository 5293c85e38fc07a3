package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

const duckDuckGoEndpoint = "https://lite.duckduckgo.com/lite/"

// browserUserAgent is sent on scrape-style requests; the lite interface
// rejects default Go agents.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DuckDuckGo scrapes the DuckDuckGo lite HTML interface. It is the keyless
// backend: no credentials required.
type DuckDuckGo struct {
	client   *http.Client
	endpoint string
}

var _ ports.SearchBackend = (*DuckDuckGo)(nil)

// NewDuckDuckGo wires an HTTP client; a nil client gets a 15s timeout default.
func NewDuckDuckGo(client *http.Client) *DuckDuckGo {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &DuckDuckGo{client: client, endpoint: duckDuckGoEndpoint}
}

// Name identifies the backend inside the registry.
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// Search posts the query to the lite endpoint and scrapes result links.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]domain.CandidateURL, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}

	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	return parseLiteResults(doc, maxResults), nil
}

// parseLiteResults walks the lite page's result links, skipping internal
// navigation, deduplicating by URL.
func parseLiteResults(doc *goquery.Document, maxResults int) []domain.CandidateURL {
	results := make([]domain.CandidateURL, 0, maxResults)
	seen := map[string]struct{}{}
	snippets := doc.Find("td.result-snippet")

	doc.Find("a.result-link").EachWithBreak(func(i int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		title := strings.TrimSpace(link.Text())
		if !ok || href == "" || title == "" {
			return true
		}
		if strings.HasPrefix(href, "/") || strings.Contains(href, "duckduckgo.com") {
			return true
		}
		if _, dup := seen[href]; dup {
			return true
		}
		seen[href] = struct{}{}

		snippet := ""
		if i < snippets.Length() {
			snippet = strings.TrimSpace(snippets.Eq(i).Text())
		}

		results = append(results, domain.CandidateURL{
			URL:     href,
			Rank:    len(results),
			Title:   title,
			Snippet: snippet,
		})
		return len(results) < maxResults
	})

	return results
}

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

const googleCSEEndpoint = "https://www.googleapis.com/customsearch/v1"

// GoogleCSE queries the Google Custom Search JSON API. Requires an API key
// and a custom search engine ID.
type GoogleCSE struct {
	apiKey   string
	cseID    string
	client   *http.Client
	endpoint string
}

var _ ports.SearchBackend = (*GoogleCSE)(nil)

// NewGoogleCSE builds the key-based backend from credentials.
func NewGoogleCSE(apiKey, cseID string, client *http.Client) *GoogleCSE {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoogleCSE{apiKey: apiKey, cseID: cseID, client: client, endpoint: googleCSEEndpoint}
}

// Name identifies the backend inside the registry.
func (g *GoogleCSE) Name() string {
	return "googlecse"
}

// Search issues one API call and returns the item links in API order.
func (g *GoogleCSE) Search(ctx context.Context, query string, maxResults int) ([]domain.CandidateURL, error) {
	if g.apiKey == "" || g.cseID == "" {
		return nil, fmt.Errorf("googlecse credentials are missing")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", g.apiKey)
	params.Set("cx", g.cseID)
	params.Set("num", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googlecse returned %s", resp.Status)
	}

	var payload struct {
		Items []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]domain.CandidateURL, 0, len(payload.Items))
	for _, item := range payload.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		results = append(results, domain.CandidateURL{
			URL:     link,
			Rank:    len(results),
			Title:   item.Title,
			Snippet: item.Snippet,
		})
		if len(results) >= maxResults {
			break
		}
	}

	return results, nil
}

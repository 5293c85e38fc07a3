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

const newsAPIEndpoint = "https://newsapi.org/v2/everything"

// NewsAPI queries the NewsAPI.org everything endpoint, restricted to a
// recency window. The alternate key-based backend; articles carry a
// publication date that pre-populates the resulting documents.
type NewsAPI struct {
	apiKey   string
	daysBack int
	client   *http.Client
	endpoint string
	now      func() time.Time
}

var _ ports.SearchBackend = (*NewsAPI)(nil)

// NewNewsAPI builds the backend; daysBack bounds article age, defaulting to 7.
func NewNewsAPI(apiKey string, daysBack int, client *http.Client) *NewsAPI {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if daysBack <= 0 {
		daysBack = 7
	}
	return &NewsAPI{
		apiKey:   apiKey,
		daysBack: daysBack,
		client:   client,
		endpoint: newsAPIEndpoint,
		now:      time.Now,
	}
}

// Name identifies the backend inside the registry.
func (n *NewsAPI) Name() string {
	return "newsapi"
}

// Search issues one everything-endpoint call sorted by relevancy.
func (n *NewsAPI) Search(ctx context.Context, query string, maxResults int) ([]domain.CandidateURL, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("newsapi key is missing")
	}

	end := n.now()
	start := end.AddDate(0, 0, -n.daysBack)

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", start.Format("2006-01-02"))
	params.Set("to", end.Format("2006-01-02"))
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(maxResults))
	params.Set("page", "1")
	params.Set("apiKey", n.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned %s", resp.Status)
	}

	var payload struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Articles []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", payload.Message)
	}

	results := make([]domain.CandidateURL, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		link := strings.TrimSpace(article.URL)
		if link == "" {
			continue
		}

		publishedAt := time.Time{}
		if parsed, pErr := time.Parse(time.RFC3339, article.PublishedAt); pErr == nil {
			publishedAt = parsed
		}

		results = append(results, domain.CandidateURL{
			URL:         link,
			Rank:        len(results),
			Title:       article.Title,
			Snippet:     article.Description,
			PublishedAt: publishedAt,
		})
		if len(results) >= maxResults {
			break
		}
	}

	return results, nil
}

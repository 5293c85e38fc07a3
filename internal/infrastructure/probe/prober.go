package probe

import (
	"context"
	"net/http"
	"time"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Prober runs the lightweight HEAD reachability check, independent of the
// GET-based extraction. The check is conservative: transport uncertainty
// reads as Denied, while any status other than 403 reads as Accessible.
type Prober struct {
	client *http.Client
}

var _ ports.AccessibilityProber = (*Prober)(nil)

// NewProber wires an HTTP client; a nil client gets a 5s timeout default.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Prober{client: client}
}

// Probe issues one HEAD request and maps the outcome to a verdict.
func (p *Prober) Probe(ctx context.Context, url string) domain.AccessibilityVerdict {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return domain.Denied
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Denied
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return domain.Denied
	}
	return domain.Accessible
}

package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

// stubClient records the last request and returns a canned response.
type stubClient struct {
	response string
	err      error
	lastReq  ports.CompletionRequest
}

func (s *stubClient) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestEnhancerTrimsResponse(t *testing.T) {
	t.Parallel()

	client := &stubClient{response: "  ev tax credit changes 2025  \n"}
	enhancer := NewEnhancer(client, "gpt-3.5-turbo", nil)

	got := enhancer.Enhance(context.Background(), "electric vehicle tax credits")
	if got != "ev tax credit changes 2025" {
		t.Fatalf("unexpected enhanced query: %q", got)
	}
	if client.lastReq.Model != "gpt-3.5-turbo" {
		t.Fatalf("wrong model tier: %s", client.lastReq.Model)
	}
	if client.lastReq.MaxTokens != 100 {
		t.Fatalf("wrong token bound: %d", client.lastReq.MaxTokens)
	}
}

func TestEnhancerFallsBackOnError(t *testing.T) {
	t.Parallel()

	client := &stubClient{err: errors.New("quota")}
	enhancer := NewEnhancer(client, "gpt-3.5-turbo", nil)

	raw := "electric vehicle tax credits"
	if got := enhancer.Enhance(context.Background(), raw); got != raw {
		t.Fatalf("expected raw query back, got %q", got)
	}
}

func TestEnhancerFallsBackOnBlankResponse(t *testing.T) {
	t.Parallel()

	client := &stubClient{response: "   "}
	enhancer := NewEnhancer(client, "gpt-3.5-turbo", nil)

	raw := "some query"
	if got := enhancer.Enhance(context.Background(), raw); got != raw {
		t.Fatalf("expected raw query back, got %q", got)
	}
}

func TestDistillerSuccess(t *testing.T) {
	t.Parallel()

	client := &stubClient{response: "- fact one\n- fact two"}
	distiller := NewDistiller(client, "gpt-4-turbo")

	published := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	doc := domain.Document{
		URL:         "https://example.com/a",
		PublishedAt: published,
		Content:     "cleaned article text",
		Status:      domain.StatusOK,
	}

	got := distiller.Distill(context.Background(), doc, "tax credits")

	if got.Status != domain.Distilled {
		t.Fatalf("expected distilled status, got %s", got.Status)
	}
	if got.Facts != "- fact one\n- fact two" {
		t.Fatalf("unexpected facts: %q", got.Facts)
	}
	if got.URL != doc.URL || !got.PublishedAt.Equal(published) {
		t.Fatalf("source attribution lost: %+v", got)
	}
	if !strings.Contains(client.lastReq.Prompt, "SOURCE URL: https://example.com/a") {
		t.Fatalf("prompt missing source url: %q", client.lastReq.Prompt)
	}
	if !strings.Contains(client.lastReq.Prompt, "PUBLICATION DATE: 2025-03-14") {
		t.Fatalf("prompt missing publication date: %q", client.lastReq.Prompt)
	}
}

func TestDistillerCapturesError(t *testing.T) {
	t.Parallel()

	client := &stubClient{err: errors.New("model overloaded")}
	distiller := NewDistiller(client, "gpt-4-turbo")

	got := distiller.Distill(context.Background(), domain.Document{URL: "https://example.com/a"}, "q")

	if got.Status != domain.DistillFailed {
		t.Fatalf("expected failed status, got %s", got.Status)
	}
	if !strings.HasPrefix(got.Facts, "Error in distillation: ") {
		t.Fatalf("error facts missing prefix: %q", got.Facts)
	}
}

func TestSynthesizerBuildsReport(t *testing.T) {
	t.Parallel()

	client := &stubClient{response: "# Report\n\nInsights."}
	synth := NewSynthesizer(client, "gpt-4-turbo")

	distilled := []domain.DistilledDocument{
		{URL: "https://example.com/a", Facts: "- fact", Status: domain.Distilled},
		{URL: "https://example.com/b", Facts: "Error in distillation: timeout", Status: domain.DistillFailed},
	}

	report := synth.Synthesize(context.Background(), distilled, "tax credits")

	if report.Status != domain.ReportGenerated {
		t.Fatalf("expected generated report, got %s", report.Status)
	}
	if report.Body != "# Report\n\nInsights." {
		t.Fatalf("unexpected body: %q", report.Body)
	}
	if report.GeneratedAt.IsZero() {
		t.Fatal("GeneratedAt not set")
	}
	if !strings.Contains(client.lastReq.Prompt, "Source: https://example.com/a") {
		t.Fatalf("prompt missing source header: %q", client.lastReq.Prompt)
	}
	if !strings.Contains(client.lastReq.Prompt, "Source: https://example.com/b") {
		t.Fatalf("failed distillation dropped from synthesis input")
	}
	if client.lastReq.MaxTokens != 4000 || client.lastReq.Temperature != 0.5 {
		t.Fatalf("wrong synthesis bounds: %+v", client.lastReq)
	}
}

func TestSynthesizerCapturesError(t *testing.T) {
	t.Parallel()

	client := &stubClient{err: errors.New("context too long")}
	synth := NewSynthesizer(client, "gpt-4-turbo")

	report := synth.Synthesize(context.Background(), nil, "q")

	if report.Status != domain.ReportFailed {
		t.Fatalf("expected failed report, got %s", report.Status)
	}
	if !strings.HasPrefix(report.Body, "Error in report generation: ") {
		t.Fatalf("body missing error prefix: %q", report.Body)
	}
	if report.Body == "" {
		t.Fatal("report body must never be empty")
	}
}

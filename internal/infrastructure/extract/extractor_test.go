package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"NewsAnalyst/internal/domain"
)

func TestExtractCleansMarkup(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
		  <script>var tracked = true;</script>
		  <style>.hidden { display: none; }</style>
		  <nav>Home | About</nav>
		  <header>Site Header</header>
		  <article>
		    <p>Electric   vehicle
		    tax credits   changed.</p>
		    <p>New rules apply.</p>
		  </article>
		  <aside>Related links</aside>
		  <form><input name="q"></form>
		  <footer>Copyright</footer>
		</body></html>`))
	}))
	defer server.Close()

	ex := NewExtractor(server.Client(), 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	if doc.Status != domain.StatusOK {
		t.Fatalf("expected ok status, got %s (%s)", doc.Status, doc.Content)
	}

	want := "Electric vehicle tax credits changed. New rules apply."
	if doc.Content != want {
		t.Fatalf("unexpected content: %q", doc.Content)
	}
}

func TestExtractCleaningIsIdempotent(t *testing.T) {
	t.Parallel()

	first := "Electric vehicle tax credits changed. New rules apply."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(first))
	}))
	defer server.Close()

	ex := NewExtractor(server.Client(), 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	if doc.Status != domain.StatusOK {
		t.Fatalf("expected ok status, got %s", doc.Status)
	}
	if doc.Content != first {
		t.Fatalf("re-cleaning changed the text: %q", doc.Content)
	}
}

func TestExtractTruncatesLongContent(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 15000)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	ex := NewExtractor(server.Client(), 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	if doc.Status != domain.StatusOK {
		t.Fatalf("expected ok status, got %s", doc.Status)
	}

	want := long[:10000] + truncationMarker
	if doc.Content != want {
		t.Fatalf("expected first 10000 chars plus marker, got %d chars ending %q",
			len(doc.Content), doc.Content[len(doc.Content)-30:])
	}
	if len(doc.Content) > 10000+len(truncationMarker) {
		t.Fatalf("content exceeds cap: %d", len(doc.Content))
	}
}

func TestExtractShortContentHasNoMarker(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>short text</p></body></html>"))
	}))
	defer server.Close()

	ex := NewExtractor(server.Client(), 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	if strings.Contains(doc.Content, truncationMarker) {
		t.Fatalf("marker present on short content: %q", doc.Content)
	}
}

func TestExtractClassifiesHTTPStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	ex := NewExtractor(server.Client(), 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	if doc.Status != domain.StatusFetchError {
		t.Fatalf("expected fetch error, got %s", doc.Status)
	}
	if doc.ErrorKind != domain.FetchHTTPStatus {
		t.Fatalf("expected http_status kind, got %s", doc.ErrorKind)
	}
	if doc.HTTPStatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", doc.HTTPStatusCode)
	}
	if !strings.HasPrefix(doc.Content, "Error: HTTP error") {
		t.Fatalf("unexpected error message: %q", doc.Content)
	}
}

func TestExtractClassifiesTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := &http.Client{Timeout: 50 * time.Millisecond}
	ex := NewExtractor(client, 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	if doc.Status != domain.StatusFetchError {
		t.Fatalf("expected fetch error, got %s", doc.Status)
	}
	if doc.ErrorKind != domain.FetchTimeout {
		t.Fatalf("expected timeout kind, got %s", doc.ErrorKind)
	}
	if !strings.HasPrefix(doc.Content, "Error: request timed out") {
		t.Fatalf("unexpected error message: %q", doc.Content)
	}
}

func TestExtractClassifiesConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	ex := NewExtractor(&http.Client{Timeout: time.Second}, 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: url})

	if doc.Status != domain.StatusFetchError {
		t.Fatalf("expected fetch error, got %s", doc.Status)
	}
	if doc.ErrorKind != domain.FetchConnection {
		t.Fatalf("expected connection kind, got %s", doc.ErrorKind)
	}
	if !strings.HasPrefix(doc.Content, "Error: connection error") {
		t.Fatalf("unexpected error message: %q", doc.Content)
	}
}

func TestExtractReadsPublicationDate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
		  <meta property="article:published_time" content="2025-03-14T09:30:00Z">
		</head><body><p>dated content</p></body></html>`))
	}))
	defer server.Close()

	ex := NewExtractor(server.Client(), 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	want := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	if !doc.PublishedAt.Equal(want) {
		t.Fatalf("unexpected publication date: %v", doc.PublishedAt)
	}
}

func TestExtractKeepsCandidateDate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
		  <meta property="article:published_time" content="2025-03-14T09:30:00Z">
		</head><body><p>dated content</p></body></html>`))
	}))
	defer server.Close()

	fromBackend := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	ex := NewExtractor(server.Client(), 0)
	doc := ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL, PublishedAt: fromBackend})

	if !doc.PublishedAt.Equal(fromBackend) {
		t.Fatalf("backend date overridden: %v", doc.PublishedAt)
	}
}

func TestExtractSendsBrowserUserAgent(t *testing.T) {
	t.Parallel()

	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	ex := NewExtractor(server.Client(), 0)
	ex.Extract(context.Background(), domain.CandidateURL{URL: server.URL})

	if !strings.HasPrefix(gotAgent, "Mozilla/5.0") {
		t.Fatalf("expected browser user agent, got %q", gotAgent)
	}
}

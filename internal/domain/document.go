package domain

import "time"

// Query carries the raw user text and the search-optimized rewrite.
// Enhanced falls back to Raw when enhancement fails, so it is never empty
// for a non-empty Raw.
type Query struct {
	Raw      string
	Enhanced string
}

// CandidateURL is a search hit that has not been fetched yet. Rank is the
// 0-based position in the backend's result order and is used only for
// stable iteration, never for scoring.
type CandidateURL struct {
	URL         string
	Rank        int
	Title       string
	Snippet     string
	PublishedAt time.Time
}

// DocumentStatus tags the outcome of a content fetch.
type DocumentStatus string

const (
	StatusOK         DocumentStatus = "ok"
	StatusFetchError DocumentStatus = "fetch_error"
)

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind string

const (
	FetchTimeout    FetchErrorKind = "timeout"
	FetchConnection FetchErrorKind = "connection"
	FetchHTTPStatus FetchErrorKind = "http_status"
	FetchOther      FetchErrorKind = "other"
)

// AccessibilityVerdict is the result of the lightweight HEAD probe,
// computed independently of the GET-based fetch status.
type AccessibilityVerdict string

const (
	Accessible AccessibilityVerdict = "accessible"
	Denied     AccessibilityVerdict = "denied"
)

// Document is one fetched source. Content holds cleaned text when Status is
// StatusOK, or a renderable error message otherwise; callers branch on
// Status and ErrorKind, never on the content shape. A zero PublishedAt
// means the publication date is unknown.
type Document struct {
	URL            string
	PublishedAt    time.Time
	Content        string
	Status         DocumentStatus
	ErrorKind      FetchErrorKind
	HTTPStatusCode int
	Accessibility  AccessibilityVerdict
}

// Fetched reports whether the GET succeeded and Content holds cleaned text.
func (d Document) Fetched() bool {
	return d.Status == StatusOK
}

// Usable reports whether the document passed both gates (GET succeeded and
// the HEAD probe did not deny it) and may enter distillation.
func (d Document) Usable() bool {
	return d.Status == StatusOK && d.Accessibility == Accessible
}

// DistillStatus tags the outcome of one per-document distillation call.
type DistillStatus string

const (
	Distilled     DistillStatus = "distilled"
	DistillFailed DistillStatus = "failed"
)

// DistilledDocument is the per-document fact extraction. On failure Facts
// carries an error message with a distinct prefix and the document stays in
// the aggregate so report completeness can be audited.
type DistilledDocument struct {
	URL         string
	PublishedAt time.Time
	Facts       string
	Status      DistillStatus
}

// ReportStatus tags whether the final synthesis call succeeded.
type ReportStatus string

const (
	ReportGenerated ReportStatus = "generated"
	ReportFailed    ReportStatus = "failed"
)

// Report is the synthesized markdown analysis. Body is never empty: a
// failed synthesis stores an explanatory error string instead.
type Report struct {
	Query       string
	Body        string
	GeneratedAt time.Time
	Status      ReportStatus
}

// RunSummary exposes the counts callers use for user-facing summaries.
// Usable is the number of documents that passed both gates (fetched and
// not denied by the probe) and therefore entered distillation.
type RunSummary struct {
	TotalCandidates int
	Fetched         int
	FetchFailures   int
	DeniedByProbe   int
	Usable          int
	Distilled       int
	DistillFailures int
}

// RunResult is the explicit value object carrying everything one pipeline
// run produced. Nothing outlives the run unless the caller retains it.
type RunResult struct {
	RunID      string
	Query      Query
	Candidates []CandidateURL
	Documents  []Document
	Distilled  []DistilledDocument
	Report     Report
	Summary    RunSummary
}

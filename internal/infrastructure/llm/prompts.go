package llm

import (
	"fmt"
	"strings"
	"time"

	"NewsAnalyst/internal/domain"
)

const (
	enhancerSystemPrompt = "You are a helpful assistant that converts user queries into effective search queries."

	distillerSystemPrompt = "You are an expert analyst who extracts and distills all key information from content. Be thorough and comprehensive."

	synthesizerSystemPrompt = "You are an expert analyst who creates detailed, well-structured reports based on distilled information."
)

func enhancerPrompt(raw string) string {
	return fmt.Sprintf(`Convert the following user query into an effective web search query.
Make it more specific and targeted to get relevant results:

User Query: %s

Enhanced Search Query:`, raw)
}

func distillerPrompt(doc domain.Document, analysisQuery string) string {
	return fmt.Sprintf(`Analyze the following article content and extract ALL relevant information, facts, and insights,
even if they seem only tangentially related to the query: %q

SOURCE URL: %s
PUBLICATION DATE: %s

CONTENT:
%s

Distill this article into key facts, quotes, statistics, and insights. Be comprehensive and capture ALL useful information,
not just what seems immediately relevant to the query. Format your response as a bulleted list of clear, concise points.`,
		analysisQuery, doc.URL, formatDate(doc.PublishedAt), doc.Content)
}

func synthesizerPrompt(distilled []domain.DistilledDocument, analysisQuery string) string {
	blocks := make([]string, 0, len(distilled))
	for _, item := range distilled {
		blocks = append(blocks, fmt.Sprintf("Source: %s\nDate: %s\n%s",
			item.URL, formatDate(item.PublishedAt), item.Facts))
	}

	return fmt.Sprintf(`Based on the following distilled information from multiple sources, create a comprehensive analysis report
addressing this query: %s

DISTILLED CONTENT FROM SOURCES:
%s

Please structure your report with clear sections, bullet points where appropriate,
and highlight key insights. Format your response in markdown.`,
		analysisQuery, strings.Join(blocks, "\n\n"))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2006-01-02")
}

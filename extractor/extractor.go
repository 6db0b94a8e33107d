// Package extractor fetches a news URL and reduces it to plain text for
// prompting. It handles ordinary HTML pages plus two common variants seen in
// the wild: RSS/Atom feed URLs and raw markdown documents.
package extractor

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/yuin/goldmark"

	"github.com/hellothatsmoa/AI-News/apperr"
)

const (
	// Some news sites refuse requests without a browser UA.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	defaultTitle = "Untitled"

	// Only the first maxContentChars of text survive, so there is no point
	// reading more than a couple MiB of body.
	maxBodyBytes    = 2 << 20
	maxContentChars = 5000
)

// Extraction is the plain-text form of a fetched page.
type Extraction struct {
	Title     string
	Content   string
	SourceURL string
}

// Extractor fetches pages over HTTP and strips them down to text.
type Extractor struct {
	httpClient *http.Client
}

func New() *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Extract downloads pageURL and returns its title and readable text.
// Transport failures map to apperr.Network, non-2xx responses to apperr.Fetch.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Extraction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &apperr.Network{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.Network{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperr.Fetch{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &apperr.Network{URL: pageURL, Err: err}
	}

	raw := string(body)
	contentType := resp.Header.Get("Content-Type")

	if isFeed(contentType, raw) {
		if ex, ok := extractFeed(raw, pageURL); ok {
			return ex, nil
		}
	}
	if isMarkdown(contentType, pageURL) {
		raw = renderMarkdown(raw)
	}
	return extractHTML(raw, pageURL), nil
}

// extractHTML pulls the title from the first <title> element and strips every
// tag from the body. Best effort only: no JS execution, no readability
// heuristics.
func extractHTML(raw, sourceURL string) *Extraction {
	title := defaultTitle
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err == nil {
		if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
			title = t
		}
		doc.Find("script, style").Remove()
		if cleaned, herr := doc.Html(); herr == nil && cleaned != "" {
			raw = cleaned
		}
	}
	return &Extraction{
		Title:     title,
		Content:   stripTags(raw, maxContentChars),
		SourceURL: sourceURL,
	}
}

// extractFeed treats the body as RSS/Atom and extracts the first item.
// Returns ok=false when the body does not parse as a feed or has no items,
// in which case the caller falls back to the HTML path.
func extractFeed(raw, sourceURL string) (*Extraction, bool) {
	parsed, err := gofeed.NewParser().ParseString(raw)
	if err != nil || len(parsed.Items) == 0 {
		return nil, false
	}

	item := parsed.Items[0]
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = strings.TrimSpace(parsed.Title)
	}
	if title == "" {
		title = defaultTitle
	}

	content := item.Content
	if strings.TrimSpace(content) == "" {
		content = item.Description
	}

	return &Extraction{
		Title:     title,
		Content:   stripTags(content, maxContentChars),
		SourceURL: sourceURL,
	}, true
}

// stripTags removes every HTML tag, collapses whitespace runs to single
// spaces, and caps the result at limit.
func stripTags(raw string, limit int) string {
	text := bluemonday.StrictPolicy().Sanitize(raw)
	joined := strings.Join(strings.Fields(text), " ")
	if len(joined) <= limit {
		return joined
	}
	return joined[:limit]
}

func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

func isFeed(contentType, body string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "application/rss") || strings.Contains(ct, "application/atom") {
		return true
	}
	prologue := strings.TrimSpace(body)
	if strings.HasPrefix(prologue, "<?xml") {
		if end := strings.Index(prologue, "?>"); end >= 0 {
			prologue = strings.TrimSpace(prologue[end+2:])
		}
	}
	return strings.HasPrefix(prologue, "<rss") || strings.HasPrefix(prologue, "<feed")
}

func isMarkdown(contentType, pageURL string) bool {
	if strings.Contains(strings.ToLower(contentType), "markdown") {
		return true
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Path, ".md") || strings.HasSuffix(u.Path, ".markdown")
}

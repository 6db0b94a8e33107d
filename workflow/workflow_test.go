package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellothatsmoa/AI-News/apperr"
	"github.com/hellothatsmoa/AI-News/extractor"
	"github.com/hellothatsmoa/AI-News/generator"
	"github.com/hellothatsmoa/AI-News/imagegen"
)

type stubExtractor struct {
	mu    sync.Mutex
	ex    *extractor.Extraction
	err   error
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, url string) (*extractor.Extraction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.ex, nil
}

type stubText struct {
	mu       sync.Mutex
	summary  *generator.Summary
	sumErr   error
	caption  string
	capErr   error
	sumCalls int
	capCalls int
	lastText string
}

func (s *stubText) SummarizeArticle(_ context.Context, text string) (*generator.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sumCalls++
	s.lastText = text
	if s.sumErr != nil {
		return nil, s.sumErr
	}
	return s.summary, nil
}

func (s *stubText) Caption(_ context.Context, summary string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capCalls++
	if s.capErr != nil {
		return "", s.capErr
	}
	return s.caption, nil
}

type stubImages struct {
	mu      sync.Mutex
	res     *imagegen.GenerationResult
	err     error
	calls   int
	lastReq imagegen.GenerationRequest
}

func (s *stubImages) Generate(_ context.Context, req imagegen.GenerationRequest) (*imagegen.GenerationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func proceedSummary() *generator.Summary {
	return &generator.Summary{
		SummaryOneLiner: "S",
		VisualBrief:     "V",
		ImagePrompt:     "P",
		Action:          generator.ActionProceed,
	}
}

func TestRunSuccess(t *testing.T) {
	saved := "generated_images/lora_x.jpg"
	ext := &stubExtractor{ex: &extractor.Extraction{Title: "T", Content: "C", SourceURL: "https://example.com"}}
	text := &stubText{summary: proceedSummary(), caption: "Caption!"}
	images := &stubImages{res: &imagegen.GenerationResult{ImageURL: "https://x/y.jpg", SavedToFile: &saved}}

	res, err := NewOrchestrator(ext, text, images, nil).Run(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "https://example.com", res.URL)
	assert.Equal(t, "T", res.Title)
	assert.Equal(t, "S", res.Summary)
	assert.Equal(t, "V", res.VisualBrief)
	assert.Equal(t, "P", res.ImagePrompt)
	assert.Equal(t, "https://x/y.jpg", res.ImageURL)
	require.NotNil(t, res.SavedImage)
	assert.Equal(t, saved, *res.SavedImage)
	assert.Equal(t, "Caption!", res.InstagramCaption)
	assert.Empty(t, res.Reason)

	parsed, terr := time.Parse(time.RFC3339, res.Timestamp)
	require.NoError(t, terr)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)

	assert.Contains(t, text.lastText, "Title: T")
	assert.Contains(t, text.lastText, "C")
	assert.Equal(t, "P", images.lastReq.Prompt)
	require.Len(t, images.lastReq.StyleAdapters, 1)
	assert.Equal(t, defaultStyleAdapter, images.lastReq.StyleAdapters[0])
}

func TestRunSkipShortCircuits(t *testing.T) {
	ext := &stubExtractor{ex: &extractor.Extraction{Title: "T", Content: "C"}}
	text := &stubText{summary: &generator.Summary{
		SummaryOneLiner: "S",
		VisualBrief:     "V",
		ImagePrompt:     "P",
		Action:          generator.ActionSkip,
	}}
	images := &stubImages{}

	res, err := NewOrchestrator(ext, text, images, nil).Run(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, "T", res.Title)
	assert.Equal(t, "content flagged as sensitive", res.Reason)
	assert.Empty(t, res.ImageURL)
	assert.Empty(t, res.InstagramCaption)

	assert.Equal(t, 0, images.calls)
	assert.Equal(t, 0, text.capCalls)
}

func TestRunExtractError(t *testing.T) {
	ext := &stubExtractor{err: &apperr.Fetch{URL: "https://example.com", StatusCode: 404}}

	res, err := NewOrchestrator(ext, &stubText{}, &stubImages{}, nil).Run(context.Background(), "https://example.com")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract:")

	var fetchErr *apperr.Fetch
	assert.ErrorAs(t, err, &fetchErr)
}

func TestRunSummarizeError(t *testing.T) {
	ext := &stubExtractor{ex: &extractor.Extraction{Title: "T", Content: "C"}}
	text := &stubText{sumErr: errors.New("model down")}

	res, err := NewOrchestrator(ext, text, &stubImages{}, nil).Run(context.Background(), "https://example.com")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarize:")
}

func TestRunImageError(t *testing.T) {
	ext := &stubExtractor{ex: &extractor.Extraction{Title: "T", Content: "C"}}
	text := &stubText{summary: proceedSummary(), caption: "x"}
	images := &stubImages{err: &apperr.Provider{Provider: "fal", StatusCode: 500}}

	res, err := NewOrchestrator(ext, text, images, nil).Run(context.Background(), "https://example.com")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate image:")
}

func TestRunCaptionError(t *testing.T) {
	ext := &stubExtractor{ex: &extractor.Extraction{Title: "T", Content: "C"}}
	text := &stubText{summary: proceedSummary(), capErr: errors.New("model down")}
	images := &stubImages{res: &imagegen.GenerationResult{ImageURL: "https://x/y.jpg"}}

	res, err := NewOrchestrator(ext, text, images, nil).Run(context.Background(), "https://example.com")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "caption:")
	assert.Equal(t, 1, images.calls)
}

// Package workflow sequences the full news-to-post pipeline: extract the
// article, summarize it, render an illustration, write a caption. All steps
// are direct in-process calls; the HTTP endpoints are thin adapters over the
// same clients.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hellothatsmoa/AI-News/extractor"
	"github.com/hellothatsmoa/AI-News/generator"
	"github.com/hellothatsmoa/AI-News/imagegen"
)

// Result statuses on the wire.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

const skipReason = "content flagged as sensitive"

// Every workflow illustration goes through the realism style adapter.
var defaultStyleAdapter = imagegen.StyleAdapter{
	Path:   "https://huggingface.co/XLabs-AI/flux-RealismLora/resolve/main/lora.safetensors",
	Weight: 1.0,
}

// Extractor fetches a URL and reduces it to plain text.
type Extractor interface {
	Extract(ctx context.Context, url string) (*extractor.Extraction, error)
}

// Summarizer covers the two text-model operations the pipeline needs.
type Summarizer interface {
	SummarizeArticle(ctx context.Context, text string) (*generator.Summary, error)
	Caption(ctx context.Context, summary string) (string, error)
}

// ImageGenerator renders one illustration for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, req imagegen.GenerationRequest) (*imagegen.GenerationResult, error)
}

// Result is the outcome of one pipeline run. Fields beyond Status and URL
// are populated per status: success carries the full set, skipped only the
// title and reason.
type Result struct {
	Status           string  `json:"status"`
	URL              string  `json:"url"`
	Title            string  `json:"title,omitempty"`
	Summary          string  `json:"summary,omitempty"`
	VisualBrief      string  `json:"visual_brief,omitempty"`
	ImagePrompt      string  `json:"image_prompt,omitempty"`
	ImageURL         string  `json:"image_url,omitempty"`
	SavedImage       *string `json:"saved_image,omitempty"`
	InstagramCaption string  `json:"instagram_caption,omitempty"`
	Reason           string  `json:"reason,omitempty"`
	Timestamp        string  `json:"timestamp,omitempty"`
}

// Orchestrator holds the pipeline collaborators.
type Orchestrator struct {
	extractor  Extractor
	summarizer Summarizer
	images     ImageGenerator
	log        *slog.Logger
}

func NewOrchestrator(ex Extractor, sum Summarizer, img ImageGenerator, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		extractor:  ex,
		summarizer: sum,
		images:     img,
		log:        log,
	}
}

// Run executes the pipeline for one URL. A SKIP verdict from the model
// short-circuits before image generation; any step error aborts the run,
// wrapped with the step name.
func (o *Orchestrator) Run(ctx context.Context, url string) (*Result, error) {
	o.log.Info("workflow started", "url", url)

	ex, err := o.extractor.Extract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	o.log.Info("article extracted", "title", ex.Title, "chars", len(ex.Content))

	summary, err := o.summarizer.SummarizeArticle(ctx, articleText(ex))
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	if summary.Skipped() {
		o.log.Info("story skipped", "url", url, "title", ex.Title)
		return &Result{
			Status: StatusSkipped,
			URL:    url,
			Title:  ex.Title,
			Reason: skipReason,
		}, nil
	}

	image, err := o.images.Generate(ctx, imagegen.GenerationRequest{
		Prompt:        summary.ImagePrompt,
		StyleAdapters: []imagegen.StyleAdapter{defaultStyleAdapter},
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	caption, err := o.summarizer.Caption(ctx, summary.SummaryOneLiner)
	if err != nil {
		return nil, fmt.Errorf("caption: %w", err)
	}

	o.log.Info("workflow finished", "url", url, "title", ex.Title)
	return &Result{
		Status:           StatusSuccess,
		URL:              url,
		Title:            ex.Title,
		Summary:          summary.SummaryOneLiner,
		VisualBrief:      summary.VisualBrief,
		ImagePrompt:      summary.ImagePrompt,
		ImageURL:         image.ImageURL,
		SavedImage:       image.SavedToFile,
		InstagramCaption: caption,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// articleText merges title and body into the text handed to the model.
func articleText(ex *extractor.Extraction) string {
	return fmt.Sprintf("Title: %s\n\n%s", ex.Title, ex.Content)
}

// Package imagegen renders editorial illustrations through the fal.ai FLUX
// endpoints and hands the result to the persister.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hellothatsmoa/AI-News/apperr"
	"github.com/hellothatsmoa/AI-News/storage"
)

const (
	defaultBaseURL = "https://fal.run"

	modelFlux     = "fal-ai/flux/dev"
	modelFluxLora = "fal-ai/flux-lora"

	// Portrait format sized for social feeds.
	defaultWidth    = 1080
	defaultHeight   = 1350
	defaultSteps    = 28
	defaultGuidance = 3.5
)

// StyleAdapter references a LoRA checkpoint applied during generation.
type StyleAdapter struct {
	Path   string  `json:"path"`
	Weight float64 `json:"weight"`
}

// GenerationRequest describes one image to render. Zero-valued dimensions and
// sampler settings fall back to the defaults above; a nil SyncMode means
// synchronous.
type GenerationRequest struct {
	Prompt        string
	StyleAdapters []StyleAdapter
	Width         int
	Height        int
	Steps         int
	GuidanceScale float64
	SyncMode      *bool
}

// GenerationResult reports where the provider hosted the image plus the
// outcome of the local save. Exactly one of SavedToFile and SaveError is set.
type GenerationResult struct {
	ImageURL    string  `json:"image_url"`
	SavedToFile *string `json:"saved_to_file"`
	SaveError   *string `json:"save_error"`
}

type imageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type generatePayload struct {
	Prompt              string         `json:"prompt"`
	ImageSize           imageSize      `json:"image_size"`
	NumInferenceSteps   int            `json:"num_inference_steps"`
	GuidanceScale       float64        `json:"guidance_scale"`
	NumImages           int            `json:"num_images"`
	EnableSafetyChecker bool           `json:"enable_safety_checker"`
	OutputFormat        string         `json:"output_format"`
	SyncMode            bool           `json:"sync_mode"`
	Loras               []StyleAdapter `json:"loras,omitempty"`
}

type generateResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// Client calls fal.ai over plain HTTP. Authentication is the Key scheme in
// the Authorization header.
type Client struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
	store      *storage.Store
}

func NewClient(apiKey string, store *storage.Store) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		store:      store,
	}
}

// Generate renders one image. The flux-lora route is used when style adapters
// are present, the plain flux route otherwise. A failed local save is
// reported inline and never fails the call.
func (c *Client) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if c.APIKey == "" {
		return nil, &apperr.Config{Missing: "FAL_KEY"}
	}

	model := modelFlux
	prefix := "generated"
	if len(req.StyleAdapters) > 0 {
		model = modelFluxLora
		prefix = "lora"
	}

	imageURL, err := c.post(ctx, model, buildPayload(req))
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{ImageURL: imageURL}
	filename := fmt.Sprintf("%s_%s.jpg", prefix, timestampSlug(time.Now()))
	saved := c.store.SaveImage(ctx, imageURL, filename)
	if saved.OK {
		result.SavedToFile = &saved.Path
	} else {
		result.SaveError = &saved.Err
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, model string, payload generatePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+model, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &apperr.Provider{Provider: "fal", Message: fmt.Sprintf("fal request failed: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperr.Provider{Provider: "fal", Message: fmt.Sprintf("read fal response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &apperr.Provider{
			Provider:   "fal",
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	var data generateResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", &apperr.Provider{
			Provider: "fal",
			Message:  "fal returned an unparseable response",
			Body:     string(raw),
		}
	}
	if len(data.Images) == 0 || data.Images[0].URL == "" {
		return "", &apperr.Provider{
			Provider: "fal",
			Message:  "fal returned no images",
			Body:     string(raw),
		}
	}
	return data.Images[0].URL, nil
}

func buildPayload(req GenerationRequest) generatePayload {
	width, height := req.Width, req.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	steps := req.Steps
	if steps <= 0 {
		steps = defaultSteps
	}

	guidance := req.GuidanceScale
	if guidance <= 0 {
		guidance = defaultGuidance
	}

	sync := true
	if req.SyncMode != nil {
		sync = *req.SyncMode
	}

	return generatePayload{
		Prompt:              req.Prompt,
		ImageSize:           imageSize{Width: width, Height: height},
		NumInferenceSteps:   steps,
		GuidanceScale:       guidance,
		NumImages:           1,
		EnableSafetyChecker: true,
		OutputFormat:        "jpeg",
		SyncMode:            sync,
		Loras:               req.StyleAdapters,
	}
}

// timestampSlug renders t as UTC ISO-8601 with the characters unsafe for
// filenames replaced.
func timestampSlug(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z")
	s = strings.ReplaceAll(s, ":", "-")
	return strings.ReplaceAll(s, ".", "-")
}

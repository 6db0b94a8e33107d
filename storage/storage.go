// Package storage persists generated images to local disk. Failures are
// reported inline in SaveResult rather than as errors: losing the local copy
// never fails the generation call.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveResult reports one save attempt.
type SaveResult struct {
	OK       bool
	Path     string
	Filename string
	Err      string
}

// Store writes images beneath a single output directory.
type Store struct {
	outputDir  string
	httpClient *http.Client
}

func NewStore(outputDir string) *Store {
	return &Store{
		outputDir:  outputDir,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SaveImage persists ref under filename in the output directory. ref is
// either an http(s) URL to fetch or base64 data, optionally carrying a
// leading data: header. Providers return one form or the other depending on
// sync mode, so both are accepted.
func (s *Store) SaveImage(ctx context.Context, ref, filename string) SaveResult {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return failure(filename, fmt.Errorf("create output dir: %w", err))
	}

	path := filepath.Join(s.outputDir, filename)

	var err error
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		err = s.download(ctx, ref, path)
	} else {
		err = writeBase64(ref, path)
	}
	if err != nil {
		return failure(filename, err)
	}

	return SaveResult{OK: true, Path: path, Filename: filename}
}

func (s *Store) download(ctx context.Context, imageURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func writeBase64(ref, path string) error {
	data := ref
	if strings.HasPrefix(data, "data:") {
		if comma := strings.Index(data, ","); comma >= 0 {
			data = data[comma+1:]
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}
	if err := os.WriteFile(path, decoded, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func failure(filename string, err error) SaveResult {
	return SaveResult{Filename: filename, Err: err.Error()}
}

package storage

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var imageBytes = []byte("\xff\xd8\xff fake jpeg payload")

func TestSaveImageBase64(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	res := store.SaveImage(context.Background(), base64.StdEncoding.EncodeToString(imageBytes), "plain.jpg")

	require.True(t, res.OK, res.Err)
	assert.Equal(t, "plain.jpg", res.Filename)
	assert.Equal(t, filepath.Join(dir, "plain.jpg"), res.Path)

	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, imageBytes, written)
}

func TestSaveImageDataURL(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	ref := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes)
	res := store.SaveImage(context.Background(), ref, "data.jpg")

	require.True(t, res.OK, res.Err)
	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, imageBytes, written)
}

func TestSaveImageFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageBytes)
	}))
	defer srv.Close()

	dir := t.TempDir()
	res := NewStore(dir).SaveImage(context.Background(), srv.URL, "remote.jpg")

	require.True(t, res.OK, res.Err)
	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, imageBytes, written)
}

func TestSaveImageDownloadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	res := NewStore(t.TempDir()).SaveImage(context.Background(), srv.URL, "remote.jpg")

	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "status 404")
	assert.Equal(t, "remote.jpg", res.Filename)
}

func TestSaveImageBadBase64(t *testing.T) {
	res := NewStore(t.TempDir()).SaveImage(context.Background(), "!!!not-base64!!!", "bad.jpg")

	assert.False(t, res.OK)
	assert.Contains(t, res.Err, "base64")
}

func TestSaveImageCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	store := NewStore(dir)

	res := store.SaveImage(context.Background(), base64.StdEncoding.EncodeToString(imageBytes), "a.jpg")

	require.True(t, res.OK, res.Err)
	_, err := os.Stat(filepath.Join(dir, "a.jpg"))
	assert.NoError(t, err)
}

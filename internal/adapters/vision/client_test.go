package vision_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/adapters/vision"
	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(apiKey, apiURL string, timeout time.Duration) *vision.Client {
	return vision.NewClient(&config.Config{
		VisionAPIKey:       apiKey,
		VisionAPIURL:       apiURL,
		VisionModel:        "gpt-4o",
		VisionTimeout:      timeout,
		MaxReceiptFileSize: 1 << 20,
	})
}

func completionServer(t *testing.T, status int, content string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzeReceipt_UnsupportedType_NoCall(t *testing.T) {
	var calls atomic.Int32
	server := completionServer(t, http.StatusOK, "{}", &calls)
	defer server.Close()

	client := newTestClient("test-key", server.URL, time.Second)
	_, err := client.AnalyzeReceipt(context.Background(), []byte("GIF89a"), "image/gif")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFile)
	assert.Equal(t, int32(0), calls.Load(), "rejection must happen before any network I/O")
}

func TestAnalyzeReceipt_NotConfigured(t *testing.T) {
	var calls atomic.Int32
	server := completionServer(t, http.StatusOK, "{}", &calls)
	defer server.Close()

	for _, key := range []string{"", config.VisionKeyPlaceholder} {
		client := newTestClient(key, server.URL, time.Second)
		_, err := client.AnalyzeReceipt(context.Background(), []byte("fake"), "image/jpeg")
		assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestAnalyzeReceipt_FileTooLarge_NoCall(t *testing.T) {
	var calls atomic.Int32
	server := completionServer(t, http.StatusOK, "{}", &calls)
	defer server.Close()

	client := vision.NewClient(&config.Config{
		VisionAPIKey:       "test-key",
		VisionAPIURL:       server.URL,
		VisionModel:        "gpt-4o",
		VisionTimeout:      time.Second,
		MaxReceiptFileSize: 4,
	})
	_, err := client.AnalyzeReceipt(context.Background(), []byte("12345"), "image/png")

	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)
	assert.Equal(t, int32(0), calls.Load())
}

func TestAnalyzeReceipt_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, apperrors.ErrBadCredential},
		{http.StatusTooManyRequests, apperrors.ErrRateLimited},
		{http.StatusRequestEntityTooLarge, apperrors.ErrPayloadTooLarge},
		{http.StatusInternalServerError, apperrors.ErrServiceFailure},
		{http.StatusBadRequest, apperrors.ErrServiceFailure},
	}
	for _, tc := range cases {
		var calls atomic.Int32
		server := completionServer(t, tc.status, "", &calls)
		client := newTestClient("test-key", server.URL, time.Second)

		_, err := client.AnalyzeReceipt(context.Background(), []byte("fake"), "image/jpeg")

		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		assert.Equal(t, int32(1), calls.Load(), "exactly one call, no retry")
		server.Close()
	}
}

func TestAnalyzeReceipt_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL, 20*time.Millisecond)
	_, err := client.AnalyzeReceipt(context.Background(), []byte("fake"), "image/jpeg")

	assert.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestAnalyzeReceipt_NetworkError(t *testing.T) {
	server := completionServer(t, http.StatusOK, "{}", nil)
	server.Close() // connection refused from here on

	client := newTestClient("test-key", server.URL, time.Second)
	_, err := client.AnalyzeReceipt(context.Background(), []byte("fake"), "image/jpeg")

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestAnalyzeReceipt_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL, time.Second)
	_, err := client.AnalyzeReceipt(context.Background(), []byte("fake"), "image/jpeg")

	assert.ErrorIs(t, err, apperrors.ErrServiceFailure)
}

func TestAnalyzeReceipt_Success(t *testing.T) {
	want := `{"merchant":"99 Speedmart","date":"2025-03-01","total":12.50,"currency":"MYR"}`
	var calls atomic.Int32
	server := completionServer(t, http.StatusOK, want, &calls)
	defer server.Close()

	client := newTestClient("test-key", server.URL, time.Second)
	got, err := client.AnalyzeReceipt(context.Background(), []byte("fake-jpeg-bytes"), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnalyzeReceipt_PDFAccepted(t *testing.T) {
	server := completionServer(t, http.StatusOK, "{}", nil)
	defer server.Close()

	client := newTestClient("test-key", server.URL, time.Second)
	_, err := client.AnalyzeReceipt(context.Background(), []byte("%PDF-1.4"), "application/pdf")

	require.NoError(t, err)
}

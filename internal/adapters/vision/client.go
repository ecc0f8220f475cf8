package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/dompetku/dompetku_backend/internal/platform/config"
)

// supportedMimeTypes is the allow-list of receipt uploads. Checked before any
// network I/O.
var supportedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Client calls an OpenAI-compatible chat completions endpoint with the
// receipt file inlined as a base64 data URL. It makes exactly one request
// per AnalyzeReceipt call; retrying is left to the user.
type Client struct {
	apiKey      string
	apiURL      string
	model       string
	maxFileSize int64
	httpClient  *http.Client
}

// NewClient builds a vision client from configuration. The returned client is
// safe for concurrent use.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:      cfg.VisionAPIKey,
		apiURL:      cfg.VisionAPIURL,
		model:       cfg.VisionModel,
		maxFileSize: cfg.MaxReceiptFileSize,
		httpClient: &http.Client{
			Timeout: cfg.VisionTimeout,
		},
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeReceipt submits the file to the vision model and returns the raw
// completion text. File type, size and configuration are checked before any
// I/O so those failures cost nothing.
func (c *Client) AnalyzeReceipt(ctx context.Context, data []byte, mimeType string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !supportedMimeTypes[mimeType] {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFile, mimeType)
	}
	if c.maxFileSize > 0 && int64(len(data)) > c.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes", apperrors.ErrPayloadTooLarge, len(data))
	}
	if c.apiKey == "" || c.apiKey == config.VisionKeyPlaceholder {
		return "", apperrors.ErrNotConfigured
	}

	payload := base64.StdEncoding.EncodeToString(data)
	reqBody := chatRequest{
		Model:     c.model,
		MaxTokens: 500,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: receiptPrompt},
					{Type: "image_url", ImageURL: &imageURL{
						URL: fmt.Sprintf("data:%s;base64,%s", mimeType, payload),
					}},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("%w after %s", apperrors.ErrTimeout, time.Since(start).Round(time.Millisecond))
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	logger.Debug("vision service responded", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return "", apperrors.ErrBadCredential
		case http.StatusTooManyRequests:
			return "", apperrors.ErrRateLimited
		case http.StatusRequestEntityTooLarge:
			return "", apperrors.ErrPayloadTooLarge
		}
		return "", fmt.Errorf("%w: status %d: %s", apperrors.ErrServiceFailure, resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", apperrors.ErrServiceFailure, err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", apperrors.ErrServiceFailure)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// isTimeout reports whether err is a transport-level timeout, which the
// net/http client reports via the net.Error interface rather than
// context.DeadlineExceeded.
func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

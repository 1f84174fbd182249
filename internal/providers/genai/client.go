// Package genai is the boundary to the external text-generation service.
// The service is an opaque collaborator: this package sends the structured
// input, trims the returned text, and categorizes failures. Retries and
// backoff are intentionally not implemented here.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"promptforge/internal/domain"
)

// Generator is the external generation capability consumed by the session.
// Ready reports precondition failures (a missing credential) without any
// network traffic, so callers can refuse before showing a loading state.
type Generator interface {
	Ready() error
	GeneratePrompt(ctx context.Context, structuredInput, modelHint string) (string, error)
	EnhancePrompt(ctx context.Context, existingPrompt, modelHint string) (string, error)
}

const (
	defaultTimeout = 60 * time.Second
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// Engines the client actually calls; the user's model hint only steers
	// which of the two does the reasoning.
	engineFlash = "gemini-2.5-flash"
	enginePro   = "gemini-3-pro-preview"

	generateTemperature = 0.8
	enhanceTemperature  = 0.85
)

// Options configures the Gemini-backed client.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient builds a Client. An empty API key is allowed here; calls made
// without one fail with domain.ErrMissingCredential before any request.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		client:  client,
	}
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature    float64 `json:"temperature,omitempty"`
	CandidateCount int     `json:"candidateCount,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Ready reports whether the client is configured to make calls at all.
func (c *Client) Ready() error {
	if c.apiKey == "" {
		return domain.ErrMissingCredential
	}
	return nil
}

// GeneratePrompt expands the structured user input into a full prompt
// optimized for the model named by the hint.
func (c *Client) GeneratePrompt(ctx context.Context, structuredInput, modelHint string) (string, error) {
	return c.generateContent(ctx, structuredInput, generateInstruction(modelHint), generateTemperature, modelHint)
}

// EnhancePrompt refines an already generated prompt.
func (c *Client) EnhancePrompt(ctx context.Context, existingPrompt, modelHint string) (string, error) {
	return c.generateContent(ctx, existingPrompt, enhanceInstruction(modelHint), enhanceTemperature, modelHint)
}

func (c *Client) generateContent(ctx context.Context, input, instruction string, temperature float64, modelHint string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingCredential
	}
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: input}},
		}},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: instruction}},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:    temperature,
			CandidateCount: 1,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("genai: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(modelHint), &buf)
	if err != nil {
		return "", fmt.Errorf("genai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &domain.UpstreamError{Category: domain.UpstreamUnknown, Detail: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &domain.UpstreamError{Category: domain.UpstreamUnknown, Detail: err.Error()}
	}
	if resp.StatusCode >= 300 {
		return "", categorize(resp.StatusCode, upstreamDetail(body))
	}

	var out geminiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &domain.UpstreamError{Category: domain.UpstreamUnknown, Detail: "unparseable response body"}
	}
	text := extractText(out)
	if text == "" {
		return "", &domain.UpstreamError{Category: domain.UpstreamUnknown, Detail: "empty candidate text"}
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) endpoint(modelHint string) string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(EngineModel(modelHint)))
}

// EngineModel routes the user's target model to one of the two engines the
// service is called with. Pro targets and external reasoning models get the
// pro engine; everything else stays on flash.
func EngineModel(modelHint string) string {
	hint := strings.ToLower(strings.TrimSpace(modelHint))
	if hint == enginePro || strings.Contains(hint, "gpt") || strings.Contains(hint, "claude") {
		return enginePro
	}
	return engineFlash
}

func extractText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

func upstreamDetail(body []byte) string {
	var parsed geminiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		if parsed.Error.Status != "" {
			return parsed.Error.Status + ": " + parsed.Error.Message
		}
		return parsed.Error.Message
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > 512 {
		detail = detail[:512]
	}
	return detail
}

var _ Generator = (*Client)(nil)

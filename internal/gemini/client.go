package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/culstrup/fireflies-raycast/internal/logging"
)

// DefaultBaseURL is the Generative Language API base URL.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultTimeout bounds a single generation request. Long prompts with large
// output budgets can take a while.
const DefaultTimeout = 120 * time.Second

// FallbackModels is tried in order when no explicit model is configured or
// the configured model is not available.
var FallbackModels = []string{
	"gemini-2.5-pro-preview-05-06",
	"gemini-1.5-pro",
	"gemini-pro",
}

// ErrNoAPIKey is returned when a client is created without an API key.
var ErrNoAPIKey = errors.New("GOOGLE_AI_STUDIO_KEY not set. Please add it to your .env file")

// ErrAllModelsFailed is returned when every model in the fallback chain is
// unavailable.
var ErrAllModelsFailed = errors.New("all Gemini models failed")

// errModelUnavailable marks a response meaning the model does not exist for
// this API version. Only these failures advance the fallback chain.
var errModelUnavailable = errors.New("model unavailable")

// Client handles Generative Language API operations.
type Client struct {
	apiKey     string
	models     []string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Gemini API client. When model is non-empty it is tried
// first, ahead of the fallback chain.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	models := FallbackModels
	if model != "" && model != FallbackModels[0] {
		models = append([]string{model}, FallbackModels...)
	}

	c := &Client{
		apiKey:  apiKey,
		models:  models,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// generateRequest is the request structure for generateContent.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse is the response structure from generateContent.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Generate sends the prompt to the first available model. A model the API
// does not know (404, or 400 "not found") advances the chain to the next
// model; any other failure aborts and is returned to the caller so a
// transient error on the preferred model never silently degrades the output.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, model := range c.models {
		text, err := c.generateWithModel(ctx, model, prompt)
		if err == nil {
			c.logger.Info("generation succeeded",
				logging.Service("gemini"),
				slog.String("model", model),
				slog.Int("response_chars", len(text)))
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !errors.Is(err, errModelUnavailable) {
			return "", err
		}
		c.logger.Warn("model unavailable, trying next",
			logging.Service("gemini"),
			slog.String("model", model),
			logging.Err(err))
		lastErr = err
	}
	return "", fmt.Errorf("%w: %v", ErrAllModelsFailed, lastErr)
}

func (c *Client) generateWithModel(ctx context.Context, model, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 8192,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		snippet := string(bodyBytes)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		if modelUnavailable(resp.StatusCode, snippet) {
			return "", fmt.Errorf("%w: status %d: %s", errModelUnavailable, resp.StatusCode, snippet)
		}
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, snippet)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	text := genResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty text in response")
	}
	return text, nil
}

// modelUnavailable reports whether a non-200 response means the model itself
// is unknown to the API. The API answers 404 for unknown model names and 400
// "is not found for API version" for models retired from the endpoint.
func modelUnavailable(status int, body string) bool {
	if status == http.StatusNotFound {
		return true
	}
	return status == http.StatusBadRequest && strings.Contains(strings.ToLower(body), "not found")
}

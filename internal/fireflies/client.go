package fireflies

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

// Endpoint is the Fireflies GraphQL API endpoint.
const Endpoint = "https://api.fireflies.ai/graphql"

// DefaultTimeout bounds a single GraphQL request.
const DefaultTimeout = 60 * time.Second

// ErrNoAPIKey is returned when a client is created without an API key.
var ErrNoAPIKey = errors.New("FIREFLIES_API_KEY not set. Please set it in .env file or provide it directly")

// transcriptFields is the field selection shared by the single-transcript and
// recent-transcript queries.
const transcriptFields = `
    id
    title
    dateString
    transcript_url
    summary {
      overview
    }
    sentences {
      text
      raw_text
      speaker_name
    }`

// searchFields additionally selects every field that may carry participant
// identity, for domain filtering.
const searchFields = `
    id
    title
    dateString
    date
    transcript_url
    host_email
    organizer_email
    participants
    fireflies_users
    meeting_attendees {
      email
      name
      displayName
    }
    summary {
      overview
    }
    sentences {
      text
      raw_text
      speaker_name
    }`

const recentTranscriptsQuery = `
query MyTranscripts($limit: Int) {
  transcripts(limit: $limit, mine: true) {` + transcriptFields + `
  }
}`

const transcriptByIDQuery = `
query GetTranscript($id: String!) {
  transcript(id: $id) {` + transcriptFields + `
  }
}`

const searchPageQuery = `
query MyTranscripts($limit: Int, $skip: Int) {
  transcripts(limit: $limit, skip: $skip, mine: true) {` + searchFields + `
  }
}`

// Client is a client for the Fireflies.ai GraphQL API. It handles
// authentication, request execution and GraphQL error surfacing.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
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

// NewClient creates a Fireflies API client with the given API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	c := &Client{
		apiKey:   apiKey,
		endpoint: Endpoint,
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

// graphqlRequest is the request envelope for a GraphQL POST.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphqlError is a single error in a GraphQL response.
type graphqlError struct {
	Message string `json:"message"`
}

// graphqlEnvelope is the response envelope for a GraphQL POST.
type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Execute runs a GraphQL query and returns the raw data object.
// Non-200 responses and GraphQL-level errors are surfaced as errors.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if variables == nil {
		variables = map[string]any{}
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("executing GraphQL query",
		logging.Service("fireflies"),
		slog.Any("variables", variables))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during API request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp.StatusCode, respBody)
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, gqlErr := range envelope.Errors {
			msg := gqlErr.Message
			if msg == "" {
				msg = "Unknown GraphQL error"
			}
			messages = append(messages, msg)
		}
		return nil, fmt.Errorf("GraphQL errors: %s", strings.Join(messages, "; "))
	}

	return envelope.Data, nil
}

// statusError builds an error for a non-200 response, preferring the first
// GraphQL error message when the body is parseable.
func (c *Client) statusError(statusCode int, body []byte) error {
	var envelope graphqlEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 && envelope.Errors[0].Message != "" {
		return fmt.Errorf("API request failed with status %d: %s", statusCode, envelope.Errors[0].Message)
	}

	snippet := string(body)
	if len(snippet) > 100 {
		snippet = snippet[:100]
	}
	return fmt.Errorf("API request failed with status %d: %s", statusCode, snippet)
}

// RecentTranscripts returns up to limit of the caller's most recent
// transcripts. The result may be empty.
func (c *Client) RecentTranscripts(ctx context.Context, limit int) ([]*Transcript, error) {
	data, err := c.Execute(ctx, recentTranscriptsQuery, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent transcripts: %w", err)
	}

	var result struct {
		Transcripts []*Transcript `json:"transcripts"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding transcripts: %w", err)
	}

	c.logger.Info("fetched recent transcripts",
		logging.Service("fireflies"),
		slog.Int("count", len(result.Transcripts)))
	return result.Transcripts, nil
}

// TranscriptByID fetches a single transcript. A nil transcript without an
// error means the transcript was not found.
func (c *Client) TranscriptByID(ctx context.Context, id string) (*Transcript, error) {
	data, err := c.Execute(ctx, transcriptByIDQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript %s: %w", id, err)
	}

	var result struct {
		Transcript *Transcript `json:"transcript"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding transcript: %w", err)
	}

	if result.Transcript == nil {
		c.logger.Warn("transcript not found",
			logging.Service("fireflies"),
			logging.TranscriptID(id))
	}
	return result.Transcript, nil
}

// SearchPage fetches one page of the caller's transcript history, newest
// first, with the full participant field set selected.
func (c *Client) SearchPage(ctx context.Context, limit, skip int) ([]*Transcript, error) {
	data, err := c.Execute(ctx, searchPageQuery, map[string]any{"limit": limit, "skip": skip})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript page at skip %d: %w", skip, err)
	}

	var result struct {
		Transcripts []*Transcript `json:"transcripts"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding transcript page: %w", err)
	}
	return result.Transcripts, nil
}

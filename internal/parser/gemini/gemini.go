// Package gemini calls the text-understanding service that powers magic
// paste: free text in, a ParsedReservationIntent-shaped JSON object out. The
// client is a collaborator, not core logic; its whole obligation is to pass
// the raw text through unmodified and to collapse every failure into one of
// two outcomes the UI knows how to phrase.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/madewira/tripdesk/internal/intent"
	"github.com/madewira/tripdesk/internal/logger"
)

var (
	// ErrAPIKeyMissing surfaces at construction: no silent empty-key calls.
	ErrAPIKeyMissing = errors.New("gemini api key is not configured")
	// ErrBusy means a prior parse is still in flight; at most one runs at a time.
	ErrBusy = errors.New("a parse request is already in flight")
	// ErrUnavailable covers transport failures and timeouts.
	ErrUnavailable = errors.New("text understanding service unavailable")
	// ErrUnparseable covers everything the service returned but we cannot use.
	ErrUnparseable = errors.New("could not extract reservation details")
)

const (
	defaultModel   = "gemini-3-flash-preview"
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 20 * time.Second
)

type Config struct {
	L          *logger.Logger
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	l          *logger.Logger
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	busy       atomic.Bool
}

func New(conf Config) (*Client, error) {
	if conf.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	if conf.Model == "" {
		conf.Model = defaultModel
	}

	if conf.BaseURL == "" {
		conf.BaseURL = defaultBaseURL
	}

	if conf.Timeout <= 0 {
		conf.Timeout = defaultTimeout
	}

	if conf.HTTPClient == nil {
		conf.HTTPClient = &http.Client{}
	}

	return &Client{
		l:          conf.L,
		apiKey:     conf.APIKey,
		model:      conf.Model,
		baseURL:    strings.TrimSuffix(conf.BaseURL, "/"),
		timeout:    conf.Timeout,
		httpClient: conf.HTTPClient,
	}, nil
}

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
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var responseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"category": {"type": "STRING", "enum": ["TOUR", "TRANSFER", "FAST_BOAT", "CHARTER"]},
		"guestName": {"type": "STRING"},
		"contactNumber": {"type": "STRING"},
		"pax": {"type": "NUMBER"},
		"date": {"type": "STRING"},
		"time": {"type": "STRING"},
		"notes": {"type": "STRING"}
	}
}`)

// Parse sends the raw text to the model and decodes its structured answer.
// It returns ErrBusy while a prior call is unresolved, ErrUnavailable when
// the service cannot be reached before the timeout, and ErrUnparseable when
// nothing usable came back.
func (c *Client) Parse(ctx context.Context, text string) (intent.Parsed, error) {
	if strings.TrimSpace(text) == "" {
		return intent.Parsed{}, ErrUnparseable
	}

	if !c.busy.CompareAndSwap(false, true) {
		return intent.Parsed{}, ErrBusy
	}
	defer c.busy.Store(false)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Extract reservation details from the following text into a JSON object.

Text: %q

If a category isn't clear, guess based on keywords (e.g. "boat" -> FAST_BOAT, "airport" -> TRANSFER, "tour" -> TOUR).
Date should be YYYY-MM-DD if possible, or ISO string.`, text)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	})
	if err != nil {
		return intent.Parsed{}, fmt.Errorf("encode generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return intent.Parsed{}, fmt.Errorf("build generate request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return intent.Parsed{}, fmt.Errorf("call %v: %w", c.model, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if c.l != nil {
			c.l.LogWarnf("Parse request to %v returned status %v", c.model, resp.StatusCode)
		}

		return intent.Parsed{}, fmt.Errorf("status %v from %v: %w", resp.StatusCode, c.model, ErrUnavailable)
	}

	var generated generateResponse

	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return intent.Parsed{}, fmt.Errorf("decode generate response: %w", ErrUnparseable)
	}

	if len(generated.Candidates) == 0 || len(generated.Candidates[0].Content.Parts) == 0 {
		return intent.Parsed{}, fmt.Errorf("empty candidates: %w", ErrUnparseable)
	}

	answer := generated.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(answer) == "" {
		return intent.Parsed{}, fmt.Errorf("empty answer: %w", ErrUnparseable)
	}

	var parsed intent.Parsed

	if err := json.Unmarshal([]byte(answer), &parsed); err != nil {
		return intent.Parsed{}, fmt.Errorf("decode intent payload: %w", ErrUnparseable)
	}

	return parsed, nil
}

// Package assistant is the one-shot request/response port to the Gemini API.
// It carries no conversation state: callers hand it a fully-built context
// string (or document bytes) and receive back text. Building the context is
// the itinerary package's job; interpreting the answer is the caller's.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultBaseURL is the production Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client calls the Gemini generateContent endpoint over plain HTTP.
// The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Gemini client. baseURL is overridable for tests;
// pass "" for the production endpoint.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ---- wire types ------------------------------------------------------------

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ---- calls -----------------------------------------------------------------

// GenerateText sends a plain text prompt and returns the model's text answer.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	return c.generate(ctx, req)
}

// Extraction is the structured record the model extracts from a travel
// document. All fields are raw strings straight from the model; the itinerary
// core treats them as untrusted boundary data like any other stored item.
type Extraction struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
	Location  string `json:"location,omitempty"`
	Details   string `json:"details,omitempty"`
}

// extractionPrompt instructs the model to return the Extraction JSON shape.
const extractionPrompt = `Analyze this travel document (ticket, reservation, receipt).
Extract the details into a JSON object with keys: type (one of flight, hotel,
activity, transport, meal, note), title, start_time, end_time, location,
details. Use ISO 8601 for times. Omit keys you cannot determine except type,
title, and start_time, which are required.`

// ExtractDocument sends a base64-encoded document image/PDF and returns the
// model's structured reading of it.
func (c *Client) ExtractDocument(ctx context.Context, mimeType, base64Data string) (Extraction, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: base64Data}},
			{Text: extractionPrompt},
		}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return Extraction{}, err
	}

	var ex Extraction
	if err := json.Unmarshal([]byte(text), &ex); err != nil {
		return Extraction{}, fmt.Errorf("assistant.Client.ExtractDocument: decode model output: %w", err)
	}
	return ex, nil
}

// generate posts one generateContent request with retry on transient
// failures (network errors and 5xx / 429 responses). 4xx responses other
// than 429 fail immediately — retrying a bad request never helps.
func (c *Client) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("assistant.Client.generate: encode: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var text string
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return retry.RetryableError(err)
		}

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return retry.RetryableError(fmt.Errorf("gemini status %d", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, body)
		}

		var gr generateResponse
		if err := json.Unmarshal(body, &gr); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
			return fmt.Errorf("empty response")
		}
		text = gr.Candidates[0].Content.Parts[0].Text
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("assistant.Client.generate: %w", err)
	}
	return text, nil
}

package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MockSuggestions is returned by Generate in mock mode
const MockSuggestions = "What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||What's a simple thing that makes you happy?"

var ErrEmptyCompletion = errors.New("model returned no text")

// Client represents a hosted text generation API client
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	MockAPI bool
	client  *http.Client
}

type generateRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

type apiError struct {
	Error string `json:"error"`
}

// NewClient creates a new text generation client
func NewClient(baseURL, apiKey, model string, mockAPI bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate returns the model's completion for prompt, without the prompt echoed back
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.MockAPI {
		return MockSuggestions, nil
	}

	body, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: map[string]any{
			"max_new_tokens":   400,
			"return_full_text": false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("text generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("text generation API returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("text generation API returned %d", resp.StatusCode)
	}

	var generations []generation
	if err := json.Unmarshal(respBody, &generations); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(generations) == 0 || generations[0].GeneratedText == "" {
		return "", ErrEmptyCompletion
	}
	return generations[0].GeneratedText, nil
}

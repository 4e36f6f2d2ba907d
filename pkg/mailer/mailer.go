package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/mystery-message-backend/internal/config"
)

// Email is a single outbound message
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer represents an email delivery interface
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

// ResendMailer delivers email through a Resend-compatible HTTP API
type ResendMailer struct {
	BaseURL    string
	APIKey     string
	From       string
	httpClient *http.Client
}

// MockMailer records emails instead of sending them
type MockMailer struct {
	logger logrus.FieldLogger

	mu   sync.Mutex
	sent []Email
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// New returns the mailer selected by configuration
func New(cfg config.MailConfig, logger logrus.FieldLogger) Mailer {
	if cfg.MockMail {
		return NewMockMailer(logger)
	}
	return NewResendMailer(cfg.BaseURL, cfg.APIKey, cfg.From)
}

// NewResendMailer creates a new HTTP mailer
func NewResendMailer(baseURL, apiKey, from string) *ResendMailer {
	return &ResendMailer{
		BaseURL: baseURL,
		APIKey:  apiKey,
		From:    from,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewMockMailer creates a mailer that only logs
func NewMockMailer(logger logrus.FieldLogger) *MockMailer {
	return &MockMailer{logger: logger}
}

// Send posts the email to the provider and returns its message id
func (m *ResendMailer) Send(ctx context.Context, email Email) (string, error) {
	body, err := json.Marshal(sendRequest{
		From:    m.From,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed sendResponse
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Message != "" {
			return "", fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, parsed.Message)
		}
		return "", fmt.Errorf("mail provider returned %d", resp.StatusCode)
	}

	return parsed.ID, nil
}

// Send logs the email and keeps it for inspection
func (m *MockMailer) Send(_ context.Context, email Email) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	id := fmt.Sprintf("MOCK-MAIL-%d", len(m.sent))
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
			"mail_id": id,
		}).Info("mock mailer: email not delivered")
	}
	return id, nil
}

// Sent returns a copy of everything sent so far
func (m *MockMailer) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}

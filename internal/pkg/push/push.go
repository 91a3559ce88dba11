package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akash/placementhub/internal/pkg/logger"
)

// Dispatcher delivers push notifications to registered device tokens.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) (*Result, error)
}

// Message is one push payload addressed to a set of device tokens.
type Message struct {
	Tokens []string          `json:"-"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// Result reports the delivery outcome. DeliveredTokens lists the tokens
// the provider accepted; InvalidTokens lists tokens the provider no
// longer recognises, callers should prune them.
type Result struct {
	Delivered       int
	DeliveredTokens []string
	InvalidTokens   []string
}

// Config holds push provider connection settings.
type Config struct {
	Endpoint  string        `yaml:"endpoint" env:"PUSH_ENDPOINT"`
	ServerKey string        `yaml:"serverKey" env:"PUSH_SERVER_KEY"`
	Timeout   time.Duration `yaml:"timeout" env:"PUSH_TIMEOUT"`
	Enabled   bool          `yaml:"enabled" env:"PUSH_ENABLED"`
}

// Client talks to an FCM-compatible HTTP endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a push client from config.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	RegistrationIDs []string          `json:"registration_ids"`
	Notification    notification      `json:"notification"`
	Data            map[string]string `json:"data,omitempty"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// Send delivers one message to all tokens in a single provider call.
func (c *Client) Send(ctx context.Context, msg Message) (*Result, error) {
	if len(msg.Tokens) == 0 {
		return &Result{}, nil
	}

	payload, err := json.Marshal(sendRequest{
		RegistrationIDs: msg.Tokens,
		Notification:    notification{Title: msg.Title, Body: msg.Body},
		Data:            msg.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error building push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.cfg.ServerKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling push provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	var body sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding push response: %w", err)
	}

	result := &Result{Delivered: body.Success}
	for i, r := range body.Results {
		if i >= len(msg.Tokens) {
			break
		}
		switch r.Error {
		case "":
			result.DeliveredTokens = append(result.DeliveredTokens, msg.Tokens[i])
		case "NotRegistered", "InvalidRegistration":
			result.InvalidTokens = append(result.InvalidTokens, msg.Tokens[i])
		}
	}

	if body.Failure > 0 {
		logger.Warn().
			Int("failure", body.Failure).
			Int("invalid", len(result.InvalidTokens)).
			Msg("Some push deliveries failed")
	}

	return result, nil
}

// Noop is a Dispatcher that drops every message. It stands in when push
// delivery is disabled in config.
type Noop struct{}

// Send discards the message.
func (Noop) Send(_ context.Context, msg Message) (*Result, error) {
	return &Result{}, nil
}

// NewDispatcher returns a Client when push is enabled, a Noop otherwise.
func NewDispatcher(cfg Config) Dispatcher {
	if !cfg.Enabled || cfg.Endpoint == "" {
		logger.Info().Msg("Push delivery disabled")
		return Noop{}
	}
	return NewClient(cfg)
}

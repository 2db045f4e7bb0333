package speech

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

	"github.com/eslkit/vocadeck/internal/entity"
)

// Client speaks through an external TTS engine over HTTP. Each Speak
// cancels any in-flight request before issuing its own, so overlapping
// audio never plays.
type Client struct {
	endpoint string
	voice    string
	http     *http.Client
	logger   *logrus.Logger

	mu      sync.Mutex
	current context.CancelFunc
}

// NewClient builds a narrator bound to the engine endpoint.
func NewClient(endpoint, voice string, logger *logrus.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		voice:    voice,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type speakRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice,omitempty"`
	Rate  float64 `json:"rate"`
}

func (c *Client) Speak(ctx context.Context, text string, rate float64) error {
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.current != nil {
		c.current()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.current = cancel
	c.mu.Unlock()

	body, err := json.Marshal(speakRequest{Text: text, Voice: c.voice, Rate: entity.ClampRate(rate)})
	if err != nil {
		return fmt.Errorf("encode speak request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build speak request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Superseded or cancelled playback is not a failure.
			return nil
		}
		return fmt.Errorf("%w: tts request: %v", entity.ErrRemoteService, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: tts engine returned %d", entity.ErrRemoteService, resp.StatusCode)
	}
	return nil
}

// Cancel stops the current playback, if any.
func (c *Client) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.current()
		c.current = nil
	}
}

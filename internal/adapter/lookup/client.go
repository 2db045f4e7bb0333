// Package lookup calls the AI word-generation service: an OpenAI-style
// chat-completions endpoint reached with a server-side bearer token. The
// browser never sees the credential; it talks to this process only.
package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/eslkit/vocadeck/internal/catalog"
	"github.com/eslkit/vocadeck/internal/entity"
	"github.com/eslkit/vocadeck/internal/usecase"
)

// Client implements usecase.WordGenerator against a chat-completions API.
type Client struct {
	endpoint string
	token    string
	model    string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *logrus.Logger
}

var _ usecase.WordGenerator = (*Client)(nil)

// NewClient builds a lookup client. requestsPerMinute caps outbound calls
// so a misbehaving front-end cannot burn through the model quota.
func NewClient(endpoint, token, model string, requestsPerMinute int, logger *logrus.Logger) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		model:    model,
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
		logger:   logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateWord asks the model for a full record of the given headword and
// normalizes the reply into the canonical Word shape.
func (c *Client) GenerateWord(ctx context.Context, word, sentence string) (*entity.Word, error) {
	raw, err := c.complete(ctx, generateSystemPrompt, generateWordPrompt(word, sentence))
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedResponse, err)
	}
	record := catalog.NormalizeRecord(obj)
	if record.English == "" || record.Translation == "" || record.POS == "" {
		return nil, fmt.Errorf("%w: missing english/translation/pos", entity.ErrMalformedResponse)
	}
	return &record, nil
}

// IdentifyBaseForm asks the model for the dictionary form of an inflected
// word, optionally disambiguated by its sentence.
func (c *Client) IdentifyBaseForm(ctx context.Context, word, sentence string) (*entity.BaseFormInfo, error) {
	raw, err := c.complete(ctx, identifySystemPrompt, identifyPrompt(word, sentence))
	if err != nil {
		return nil, err
	}
	var reply struct {
		BaseForm          string `json:"baseForm"`
		POS               string `json:"pos"`
		Inflection        string `json:"inflection"`
		ContextualMeaning string `json:"contextualMeaning"`
	}
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedResponse, err)
	}
	if reply.BaseForm == "" {
		return nil, fmt.Errorf("%w: missing baseForm", entity.ErrMalformedResponse)
	}
	return &entity.BaseFormInfo{
		BaseForm:          reply.BaseForm,
		POS:               reply.POS,
		Inflection:        reply.Inflection,
		ContextualMeaning: reply.ContextualMeaning,
	}, nil
}

// complete performs one chat-completions round trip and returns the
// extracted JSON payload of the first choice.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	if c.endpoint == "" || c.token == "" {
		return "", fmt.Errorf("%w: lookup service not configured", entity.ErrRemoteService)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrRemoteService, err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrRemoteService, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", entity.ErrRemoteService, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithField("status", resp.StatusCode).Warn("lookup service returned error")
		return "", fmt.Errorf("%w: status %d", entity.ErrRemoteService, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(payload, &chat); err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrMalformedResponse, err)
	}
	if len(chat.Choices) == 0 || strings.TrimSpace(chat.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty completion", entity.ErrMalformedResponse)
	}
	return extractJSON(chat.Choices[0].Message.Content)
}

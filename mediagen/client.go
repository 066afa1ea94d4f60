package mediagen

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/agentflow-media/config"
)

// Fixed image generation parameters. Enhancement is disabled because the
// prompt is enhanced in a separate upstream call.
const (
	imageOutputFormat = "jpeg"
	imageAspectRatio  = "1:1"
)

// SleepFunc waits for the given duration or until the context is done.
// Injectable so tests can poll without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Client talks to the remote media generation API. All calls authenticate
// with the configured API key in the X-API-Key header.
type Client struct {
	cfg     config.Config
	client  *http.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	sleep   SleepFunc

	// pollObserver, when set, is called once per video status poll.
	pollObserver func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithSleep replaces the poll delay function.
func WithSleep(s SleepFunc) Option {
	return func(c *Client) { c.sleep = s }
}

// WithPollObserver registers a hook invoked once per video status poll.
func WithPollObserver(fn func()) Option {
	return func(c *Client) { c.pollObserver = fn }
}

// NewClient creates a media generation client from the plugin configuration.
func NewClient(cfg config.Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 2
	}

	c := &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With(zap.String("component", "mediagen_client")),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		sleep:   defaultSleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path
}

func (c *Client) buildHeaders(req *http.Request) {
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// EnhancePrompt asks the remote API for an enhanced variant of prompt.
// On success the returned prompt is the original with the API's option_1
// appended verbatim. Enhancement is best-effort: any failure (transport,
// non-2xx, malformed body, missing field) logs a warning and returns the
// original prompt unchanged. Never returns an error and never retries.
func (c *Client) EnhancePrompt(ctx context.Context, prompt string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return prompt
	}

	body := enhanceRequest{Prompt: prompt, EnhancePrompt: true}
	payload, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/v1/prompts/enhance"), bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("prompt enhancement request build failed", zap.Error(err))
		return prompt
	}
	c.buildHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("prompt enhancement call failed, using original prompt", zap.Error(err))
		return prompt
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("prompt enhancement returned non-2xx, using original prompt",
			zap.Int("status", resp.StatusCode))
		return prompt
	}

	var eResp enhanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&eResp); err != nil {
		c.logger.Warn("prompt enhancement response malformed, using original prompt", zap.Error(err))
		return prompt
	}
	if eResp.Option1 == "" {
		return prompt
	}

	// Concatenation with no separator: the API's option_1 is written as a
	// continuation of the original prompt.
	return prompt + eResp.Option1
}

// GenerateImage generates a single square JPEG image for the given
// (already enhanced) prompt. A 2xx response missing the url field is a
// distinct fatal error (ErrEmptyResult); HTTP failures map to the error
// taxonomy in mapStatusError. No retries.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewError(ErrUpstream, "rate limiter wait interrupted").WithCause(err)
	}

	body := imageRequest{
		Prompt:        prompt,
		OutputFormat:  imageOutputFormat,
		AspectRatio:   imageAspectRatio,
		EnhancePrompt: false,
	}
	payload, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/v1/images/generations"), bytes.NewReader(payload))
	if err != nil {
		return nil, NewError(ErrUpstream, "build image request").WithCause(err)
	}
	c.buildHeaders(httpReq)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewError(ErrUpstream, "image generation request failed").WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(ErrUpstream, "read image generation response").WithCause(err)
	}

	c.logger.Debug("image generation call completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapStatusError(resp.StatusCode, respBody)
	}

	var iResp imageResponse
	if err := json.Unmarshal(respBody, &iResp); err != nil {
		return nil, NewError(ErrUpstream, "image generation response malformed").WithCause(err)
	}
	if iResp.URL == "" {
		return nil, NewError(ErrEmptyResult, "image generation response has no url")
	}

	return &ImageResult{URL: iResp.URL, ID: iResp.ID}, nil
}

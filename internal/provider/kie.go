package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
	"github.com/justic/justic-api/internal/redact"
)

const generatePath = "/api/v1/veo/generate"

// codeOK is the business success code in provider responses.
const codeOK = 200

type generateRequest struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model"`
	AspectRatio string `json:"aspect_ratio"`
	CallbackURL string `json:"callBackUrl"`
}

type generateResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data *struct {
		TaskID string `json:"taskId"`
	} `json:"data"`
}

// KieClient talks to the kie.ai Veo API.
type KieClient struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	model         string
	aspectRatio   string
	callbackURL   string
	submitTimeout time.Duration
	fetchTimeout  time.Duration
	maxBytes      int64
	logger        *slog.Logger
}

// Ensure KieClient implements Client interface
var _ Client = (*KieClient)(nil)

// NewKieClient creates a client from configuration. httpClient may be nil.
func NewKieClient(cfg config.ProviderConfig, httpClient *http.Client, logger *slog.Logger) *KieClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KieClient{
		httpClient:    httpClient,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		aspectRatio:   cfg.AspectRatio,
		callbackURL:   cfg.CallbackURL,
		submitTimeout: cfg.SubmitTimeout(),
		fetchTimeout:  cfg.FetchTimeout(),
		maxBytes:      cfg.MaxArtifactBytes,
		logger:        logger.With("component", "provider_client"),
	}
}

// Submit implements Client.Submit
func (c *KieClient) Submit(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(generateRequest{
		Prompt:      prompt,
		Model:       c.model,
		AspectRatio: c.aspectRatio,
		CallbackURL: c.callbackURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("generation request failed", "error", redact.Error(err))
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Error("provider returned error status",
			"status_code", resp.StatusCode,
			"body", redact.String(string(snippet)))
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrUpstreamContract, err)
	}

	if out.Code != codeOK {
		log.Warn("provider rejected generation request", "code", out.Code, "msg", out.Msg)
		return "", fmt.Errorf("%w: code %d: %s", domain.ErrUpstreamRejected, out.Code, out.Msg)
	}

	if out.Data == nil || out.Data.TaskID == "" {
		return "", fmt.Errorf("%w: response has no task id", domain.ErrUpstreamContract)
	}
	if err := domain.ValidateIdentifier(out.Data.TaskID); err != nil {
		return "", fmt.Errorf("%w: unusable task id: %w", domain.ErrUpstreamContract, err)
	}

	log.Info("generation request accepted",
		"task_id", out.Data.TaskID,
		"duration_ms", time.Since(start).Milliseconds())
	return out.Data.TaskID, nil
}

// Fetch implements Client.Fetch. Downloads larger than the configured
// maximum are aborted.
func (c *KieClient) Fetch(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return 0, fmt.Errorf("%w: invalid result url", domain.ErrUpstreamContract)
	}

	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: download: %w", domain.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: download status %d", domain.ErrUpstream, resp.StatusCode)
	}
	if resp.ContentLength > c.maxBytes {
		return 0, fmt.Errorf("%w: artifact of %d bytes exceeds limit", domain.ErrUpstreamContract, resp.ContentLength)
	}

	n, err := io.Copy(w, io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return n, fmt.Errorf("%w: download: %w", domain.ErrUpstream, err)
	}
	if n > c.maxBytes {
		return n, fmt.Errorf("%w: artifact exceeds %d bytes", domain.ErrUpstreamContract, c.maxBytes)
	}
	return n, nil
}

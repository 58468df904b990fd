package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	DefaultBaseURL = "https://api.deepone.io"
	DefaultTimeout = 30 * time.Second

	verifyPath = "/v1/attribution/verify"
	linksPath  = "/v1/links"
	apiKeyHdr  = "X-Api-Key"
)

var errMissingLink = errors.New("response carried no link url")

type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
	// Transport overrides the HTTP round tripper, for recording or tests.
	Transport http.RoundTripper
}

// Client talks to the remote attribution service over JSON/HTTP.
type Client struct {
	baseURL   string
	client    *http.Client
	transport http.RoundTripper
	logger    *slog.Logger
}

var _ ports.AttributionService = (*Client)(nil)

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: timeout},
		transport: cfg.Transport,
		logger:    logger,
	}
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e apiError) String() string {
	switch {
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

func (c *Client) builder(path string, apiKey string) *requests.Builder {
	b := requests.
		URL(c.baseURL).
		Client(c.client).
		Path(path).
		Header(apiKeyHdr, apiKey).
		ContentType("application/json").
		Accept("application/json")
	if c.transport != nil {
		b = b.Transport(c.transport)
	}
	return b
}

func (c *Client) Verify(ctx context.Context, fingerprint domain.DeviceFingerprint, apiKey string) (domain.VerifyResult, error) {
	body, err := verifyBody(fingerprint)
	if err != nil {
		return domain.VerifyResult{}, err
	}

	var raw string
	var failure apiError
	err = c.builder(verifyPath, apiKey).
		Post().
		BodyBytes(body).
		ToString(&raw).
		ErrorJSON(&failure).
		Fetch(ctx)
	if err != nil {
		return domain.VerifyResult{}, requestError("verify attribution", err, failure)
	}

	if !gjson.Valid(raw) {
		return domain.VerifyResult{}, fmt.Errorf("verify attribution: invalid json response")
	}

	result := parseVerifyResponse(raw)
	c.logger.Debug("attribution verify completed", "has_link", result.Link != "")
	return result, nil
}

func (c *Client) CreateLink(ctx context.Context, params domain.LinkParameters, apiKey string) (string, error) {
	body, err := params.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encode link parameters: %w", err)
	}

	var raw string
	var failure apiError
	err = c.builder(linksPath, apiKey).
		Post().
		BodyBytes(body).
		ToString(&raw).
		ErrorJSON(&failure).
		Fetch(ctx)
	if err != nil {
		return "", requestError("create link", err, failure)
	}

	link := gjson.Get(raw, "url").String()
	if link == "" {
		link = gjson.Get(raw, "link").String()
	}
	if link == "" {
		return "", fmt.Errorf("create link: %w", errMissingLink)
	}

	c.logger.Debug("link created", "param_count", params.Len())
	return link, nil
}

func verifyBody(fingerprint domain.DeviceFingerprint) ([]byte, error) {
	body := []byte(`{}`)
	fields := []struct {
		path  string
		value string
	}{
		{"device.os", fingerprint.OS},
		{"device.model", fingerprint.Model},
		{"device.deviceId", fingerprint.DeviceID},
		{"device.languageCode", fingerprint.LanguageCode},
	}

	var err error
	for _, field := range fields {
		body, err = sjson.SetBytes(body, field.path, field.value)
		if err != nil {
			return nil, fmt.Errorf("encode verify request %s: %w", field.path, err)
		}
	}

	return body, nil
}

func parseVerifyResponse(raw string) domain.VerifyResult {
	parsed := gjson.Parse(raw)

	var result domain.VerifyResult
	if first := parsed.Get("isFirstSession"); first.Exists() {
		value := first.Bool()
		result.IsFirstSession = &value
	}
	result.Link = parsed.Get("link").String()
	if data, ok := parsed.Get("data").Value().(map[string]any); ok {
		result.Data = data
	}

	return result
}

func requestError(op string, err error, failure apiError) error {
	if detail := failure.String(); detail != "" {
		return fmt.Errorf("%s: %w: %s", op, err, detail)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package player

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"linkrelay/config"
	"linkrelay/models"
)

const (
	playerPath = "/youtubei/v1/player"

	// maxResponseBytes bounds how much of the upstream body is decoded.
	maxResponseBytes = 16 << 20
)

var (
	ErrMissingVideoID  = errors.New("missing video id")
	ErrNoStreamingData = errors.New("no streaming data")
	ErrUpstream        = errors.New("upstream request failed")
)

// Client posts player requests to the upstream video platform.
type Client struct {
	httpClient *http.Client
	settings   config.UpstreamSettings
	logger     logrus.FieldLogger
}

// NewClient returns a client with a pooled transport and the configured timeout.
func NewClient(settings config.UpstreamSettings, logger logrus.FieldLogger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   settings.Timeout,
			Transport: newTransport(settings.Timeout),
		},
		settings: settings,
		logger:   logger.WithField("component", "player-client"),
	}
}

func newTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 32
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = timeout
	return t
}

// Endpoint returns the player URL including the api key.
func (c *Client) Endpoint() string {
	query := url.Values{}
	query.Set("key", c.settings.APIKey)
	return strings.TrimRight(c.settings.BaseURL, "/") + playerPath + "?" + query.Encode()
}

// redactedEndpoint is Endpoint with the api key masked, for logs and errors.
func (c *Client) redactedEndpoint() string {
	return strings.TrimRight(c.settings.BaseURL, "/") + playerPath + "?key=REDACTED"
}

// redact strips the request URL, and with it the api key, from err.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.redactedEndpoint()
	}
	return err
}

// Player fetches the player response for videoID. Every transport or
// decoding failure is wrapped in ErrUpstream. The body is decoded whatever
// the status code, since the platform reports errors as JSON documents.
func (c *Client) Player(ctx context.Context, videoID string) (*models.PlayerResponse, error) {
	payload := models.PlayerRequest{
		Context: models.PlayerContext{
			Client: models.PlayerClient{
				ClientName:    c.settings.ClientName,
				ClientVersion: c.settings.ClientVersion,
			},
		},
		VideoID: videoID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrUpstream, c.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.settings.UserAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = c.redact(err)
		c.logger.WithField("videoId", videoID).WithError(err).Warn("player request failed")
		return nil, fmt.Errorf("%w: http request: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	log := c.logger.WithFields(logrus.Fields{
		"videoId":  videoID,
		"status":   resp.StatusCode,
		"duration": time.Since(started).Round(time.Millisecond).String(),
	})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("player responded with non-success status")
	} else {
		log.Debug("player responded")
	}

	var result models.PlayerResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response (status %d): %w", ErrUpstream, resp.StatusCode, err)
	}
	return &result, nil
}

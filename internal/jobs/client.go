// ABOUTME: Client for Galaxy's job rebuild-info endpoint
// ABOUTME: Classifies a rerun request as interactive-client or ordinary with a single GET
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harper/galaxy-nav/internal/models"
)

const (
	// DefaultTimeout caps a probe when the caller's context has no deadline
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes bounds how much of a build_for_rerun response is read
	maxBodyBytes = 4 << 20
)

// ClientConfig holds configuration for the job-info client
type ClientConfig struct {
	BaseURL    string
	AppRoot    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration for a Galaxy server
func DefaultConfig(baseURL string) *ClientConfig {
	return &ClientConfig{
		BaseURL: baseURL,
		AppRoot: "/",
		Timeout: DefaultTimeout,
	}
}

// Client queries the job rebuild-info service
type Client struct {
	baseURL string
	appRoot string
	client  *http.Client
}

// NewClient creates a new job-info client with the default configuration
func NewClient(baseURL string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(baseURL))
}

// NewClientWithConfig creates a new job-info client with custom configuration
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("galaxy base URL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid galaxy base URL: %w", err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		appRoot: normalizeRoot(config.AppRoot),
		client:  httpClient,
	}, nil
}

// RebuildInfo is the part of the build_for_rerun payload the classifier reads
type RebuildInfo struct {
	ModelClass string `json:"model_class"`
}

// Resolve fetches the rebuild info for jobID and classifies it for targetID.
// Any failure is reported as *NetworkError; the call is never retried.
func (c *Client) Resolve(ctx context.Context, jobID, targetID string) (models.RerunClassification, error) {
	info, err := c.BuildForRerun(ctx, jobID)
	if err != nil {
		return models.Ordinary(), err
	}
	return models.ClassifyModel(info.ModelClass, targetID), nil
}

// BuildForRerun issues GET {root}api/jobs/{jobID}/build_for_rerun and decodes the model class
func (c *Client) BuildForRerun(ctx context.Context, jobID string) (*RebuildInfo, error) {
	endpoint := c.endpoint(jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{JobID: jobID, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{JobID: jobID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{JobID: jobID, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{JobID: jobID, StatusCode: resp.StatusCode, Err: errorFromBody(body)}
	}

	var info RebuildInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &NetworkError{JobID: jobID, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return &info, nil
}

func (c *Client) endpoint(jobID string) string {
	return c.baseURL + c.appRoot + "api/jobs/" + url.PathEscape(jobID) + "/build_for_rerun"
}

// errorFromBody pulls Galaxy's err_msg out of an error payload when there is one
func errorFromBody(body []byte) error {
	var payload struct {
		ErrMsg  string `json:"err_msg"`
		ErrCode int    `json:"err_code"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.ErrMsg != "" {
		if payload.ErrCode != 0 {
			return fmt.Errorf("%d: %s", payload.ErrCode, payload.ErrMsg)
		}
		return errors.New(payload.ErrMsg)
	}
	return errors.New("unexpected status")
}

func normalizeRoot(root string) string {
	if root == "" {
		return "/"
	}
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}

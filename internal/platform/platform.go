// Package platform talks to the Serverless Dashboard platform services.
package platform

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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the platform API used when none is configured.
const DefaultBaseURL = "https://api.serverless.com/core"

// ErrRegionNotSupported is returned by LogDestination when log collection is not
// available in the requested region.
var ErrRegionNotSupported = errors.New("log collection is not supported in this region")

// Error is a non-2xx platform response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("platform request failed (%d): %s", e.StatusCode, e.Message)
}

// Metadata describes the platform account.
type Metadata struct {
	AWSAccountID string `json:"awsAccountId"`
}

// DestinationRequest identifies the log destination of one service stage.
type DestinationRequest struct {
	AccessKey   string `json:"-"`
	AppUID      string `json:"appUid"`
	TenantUID   string `json:"tenantUid"`
	StageName   string `json:"stageName"`
	ServiceName string `json:"serviceName"`
	RegionName  string `json:"regionName"`
	AccountID   string `json:"accountId"`
}

// DeployProfileRequest identifies the deployment profile of one service stage.
type DeployProfileRequest struct {
	AccessKey string
	Tenant    string
	App       string
	Service   string
	Stage     string
}

// DeployProfile is the deployment profile configured in the dashboard.
type DeployProfile struct {
	ProviderCredentials *ProviderCredentials `json:"providerCredentials,omitempty"`
}

// ProviderCredentials wraps the provider credentials of a deploy profile.
type ProviderCredentials struct {
	SecretValue AWSCredentials `json:"secretValue"`
}

// AWSCredentials are static AWS credentials.
type AWSCredentials struct {
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	SessionToken    string `json:"sessionToken,omitempty"`
}

// Options configures a Client.
type Options struct {
	// BaseURL of the platform API; DefaultBaseURL when empty
	BaseURL string
	// AccessKey overrides the rc file for every tenant
	AccessKey string
	// RCFile is the credentials file; ~/.serverlessrc when empty
	RCFile string
	// Timeout bounds each request
	Timeout time.Duration
	// Transport is wrapped with tracing; http.DefaultTransport when nil
	Transport http.RoundTripper
	// Logger receives request logs
	Logger logrus.FieldLogger
}

// Client is a platform API client.
type Client struct {
	baseURL   string
	accessKey string
	rcFile    string
	http      *http.Client
	logger    logrus.FieldLogger
}

// NewClient creates a platform client.
func NewClient(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: opts.AccessKey,
		rcFile:    opts.RCFile,
		http: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// Metadata returns the platform account metadata.
func (c *Client) Metadata(ctx context.Context, accessKey string) (*Metadata, error) {
	var out Metadata
	if err := c.do(ctx, http.MethodGet, "/metadata", accessKey, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching platform metadata: %w", err)
	}
	return &out, nil
}

// LogDestination returns the ARN of the log destination for a service stage.
func (c *Client) LogDestination(ctx context.Context, req DestinationRequest) (string, error) {
	var out struct {
		DestinationArn string `json:"destinationArn"`
	}

	err := c.do(ctx, http.MethodPost, "/destinations/create", req.AccessKey, req, &out)
	if err != nil {
		var perr *Error
		if errors.As(err, &perr) && perr.StatusCode < 500 && strings.Contains(strings.ToLower(perr.Message), "not supported in region") {
			return "", fmt.Errorf("%w: %s", ErrRegionNotSupported, req.RegionName)
		}
		return "", fmt.Errorf("fetching log destination: %w", err)
	}
	if out.DestinationArn == "" {
		return "", errors.New("fetching log destination: empty destination ARN")
	}
	return out.DestinationArn, nil
}

// DeployProfile returns the deployment profile of a service stage.
func (c *Client) DeployProfile(ctx context.Context, req DeployProfileRequest) (*DeployProfile, error) {
	path := fmt.Sprintf("/tenants/%s/apps/%s/services/%s/stages/%s/deploymentProfile",
		url.PathEscape(req.Tenant), url.PathEscape(req.App), url.PathEscape(req.Service), url.PathEscape(req.Stage))

	var out DeployProfile
	if err := c.do(ctx, http.MethodGet, path, req.AccessKey, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching deploy profile: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, accessKey string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessKey != "" {
		req.Header.Set("Authorization", "Bearer "+accessKey)
	}

	log := c.logger.WithFields(logrus.Fields{"method": method, "path": path})
	log.Debug("platform request")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	log.WithField("status", resp.StatusCode).Debug("platform response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorMessage extracts the message of an error response body.
func errorMessage(data []byte, status string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return text
	}
	return status
}

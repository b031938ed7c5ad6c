// Package softlayer implements provider.Provider over the SoftLayer REST
// API.
package softlayer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"slreload/internal/provider"
	"slreload/pkg/logging"
)

const (
	applicationJSON = "application/json"
	requestIDHeader = "X-Request-Id"
	userAgent       = "slreload"

	// pageSize is the resultLimit used for account listings.
	pageSize = 100
)

// maxPages bounds a single listing at maxPages*pageSize rows.
var maxPages = 1000

// Options configures a Client.
type Options struct {
	Endpoint string
	Username string
	APIKey   string

	// Timeout bounds each HTTP request; zero means no timeout.
	Timeout time.Duration

	// Retries is how often a failed read-only call is retried. Reload
	// requests are never retried.
	Retries int

	// RequestID is sent with every request to correlate provider-side logs.
	RequestID string
}

// Client talks to the SoftLayer REST API.
type Client struct {
	endpoint  string
	username  string
	apiKey    string
	requestID string
	http      *retryablehttp.Client
}

var _ provider.Provider = (*Client)(nil)

type noRetryKey struct{}

// NewClient creates a client for the given endpoint and credentials.
func NewClient(opts Options) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.Retries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = logging.LeveledLogger{Subsystem: "SoftLayer"}
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.HTTPClient.Timeout = opts.Timeout

	return &Client{
		endpoint:  strings.TrimRight(opts.Endpoint, "/"),
		username:  opts.Username,
		apiKey:    opts.APIKey,
		requestID: opts.RequestID,
		http:      rc,
	}
}

// checkRetry applies the default policy except for requests marked as not
// retryable.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Value(noRetryKey{}) != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// ListVirtualInstances implements provider.Provider.
func (c *Client) ListVirtualInstances(ctx context.Context) ([]provider.Instance, error) {
	raw, err := listAll[computeInstance](ctx, c, "SoftLayer_Account/getVirtualGuests", virtualGuestMask)
	if err != nil {
		return nil, fmt.Errorf("listing virtual guests: %w", err)
	}
	out := make([]provider.Instance, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toInstance(provider.KindVirtual))
	}
	return out, nil
}

// ListHardwareInstances implements provider.Provider.
func (c *Client) ListHardwareInstances(ctx context.Context) ([]provider.Instance, error) {
	raw, err := listAll[computeInstance](ctx, c, "SoftLayer_Account/getHardware", hardwareServerMask)
	if err != nil {
		return nil, fmt.Errorf("listing hardware: %w", err)
	}
	out := make([]provider.Instance, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toInstance(provider.KindHardware))
	}
	return out, nil
}

// ListSSHKeys implements provider.Provider.
func (c *Client) ListSSHKeys(ctx context.Context) ([]provider.SSHKey, error) {
	raw, err := listAll[sshKey](ctx, c, "SoftLayer_Account/getSshKeys", sshKeyMask)
	if err != nil {
		return nil, fmt.Errorf("listing ssh keys: %w", err)
	}
	out := make([]provider.SSHKey, 0, len(raw))
	for _, k := range raw {
		out = append(out, provider.SSHKey{ID: k.ID, Label: k.Label})
	}
	return out, nil
}

// ReloadVirtualInstance implements provider.Provider.
func (c *Client) ReloadVirtualInstance(ctx context.Context, id int64, sshKeyIDs []int64) error {
	return c.reload(ctx, "SoftLayer_Virtual_Guest", id, sshKeyIDs)
}

// ReloadHardwareInstance implements provider.Provider.
func (c *Client) ReloadHardwareInstance(ctx context.Context, id int64, sshKeyIDs []int64) error {
	return c.reload(ctx, "SoftLayer_Hardware_Server", id, sshKeyIDs)
}

func (c *Client) reload(ctx context.Context, service string, id int64, sshKeyIDs []int64) error {
	if sshKeyIDs == nil {
		sshKeyIDs = []int64{}
	}
	body := parameters{Parameters: []interface{}{reloadMode, reloadConfig{SSHKeyIDs: sshKeyIDs}}}
	path := fmt.Sprintf("%s/%d/reloadOperatingSystem", service, id)

	ctx = context.WithValue(ctx, noRetryKey{}, true)
	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// listAll pages through an account listing until a page comes back with
// other than pageSize rows. An endpoint that ignores resultLimit shows up
// as an oversized page or as a page repeating the first row; either ends
// the listing.
func listAll[T any](ctx context.Context, c *Client, path, mask string) ([]T, error) {
	var all []T
	var first json.RawMessage
	for n, offset := 0, 0; n < maxPages; n, offset = n+1, offset+pageSize {
		query := url.Values{}
		query.Set("objectMask", mask)
		query.Set("resultLimit", fmt.Sprintf("%d,%d", offset, pageSize))

		resp, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, err
		}
		var raw []json.RawMessage
		err = json.NewDecoder(resp.Body).Decode(&raw)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}

		if offset > 0 && len(raw) > 0 && bytes.Equal(raw[0], first) {
			logging.Warn("SoftLayer", "%s ignored resultLimit; stopping after %d rows", path, len(all))
			return all, nil
		}
		if offset == 0 && len(raw) > 0 {
			first = raw[0]
		}

		page := make([]T, len(raw))
		for i, r := range raw {
			if err := json.Unmarshal(r, &page[i]); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		}
		all = append(all, page...)
		if len(raw) != pageSize {
			return all, nil
		}
	}
	return nil, fmt.Errorf("listing %s: more than %d pages of %d", path, maxPages, pageSize)
}

// do performs a request and turns non-2xx responses into *provider.APIError.
// On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var payload interface{}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	target := c.endpoint + "/" + path + ".json"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.apiKey)
	req.Header.Set("Accept", applicationJSON)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", applicationJSON)
	}
	if c.requestID != "" {
		req.Header.Set(requestIDHeader, c.requestID)
	}

	logging.Debug("SoftLayer", "%s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body apiErrorBody
	if err := json.Unmarshal(data, &body); err != nil || (body.Error == "" && body.Code == "") {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &provider.APIError{
			Code:       "HTTP" + strconv.Itoa(resp.StatusCode),
			Message:    msg,
			StatusCode: resp.StatusCode,
		}
	}
	return &provider.APIError{
		Code:       body.Code,
		Message:    body.Error,
		StatusCode: resp.StatusCode,
	}
}

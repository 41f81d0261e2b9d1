package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
)

// Client posts assessment sections to the remote appraisal API.
type Client struct {
	baseURL string
	faculty string
	http    *http.Client
	logger  core.Logger
}

var _ assessment.Submitter = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.Remote.BaseURL, "/"),
		faculty: conf.Remote.Faculty,
		http:    &http.Client{Timeout: conf.Remote.Timeout},
		logger:  logger,
	}
}

// URL returns the address of endpoint for the configured faculty.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/" + endpoint + "/" + url.PathEscape(c.faculty)
}

// Submit sends payload as JSON. Any 2xx answer is a success; the response body is decoded
// when it is JSON and otherwise ignored.
func (c *Client) Submit(ctx context.Context, endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encoding payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(endpoint), bytes.NewReader(body))
	if err != nil {
		return &core.TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &core.TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &core.TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	var ack interface{}
	if err = json.NewDecoder(resp.Body).Decode(&ack); err != nil && err != io.EOF {
		c.logger.Debug("non-JSON response from "+endpoint, err)
	} else {
		c.logger.Debug("submitted to "+endpoint, ack)
	}
	return nil
}

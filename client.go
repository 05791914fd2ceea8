package rockset

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
)

// HTTPClient is the interface for HTTP client.
type HTTPClient interface {
	// Get sends a GET request to the server.
	Get(context.Context, *url.URL) (*http.Response, error)
	// Post sends a POST request with a JSON body to the server.
	Post(context.Context, *url.URL, []byte) (*http.Response, error)
	// Delete sends a DELETE request to the server. The body may be nil.
	Delete(context.Context, *url.URL, []byte) (*http.Response, error)
	// Close releases any idle connections held by the client.
	Close()
}

type httpClient struct {
	client *http.Client
	apiKey string
}

// NewHTTPClient creates a new internal HTTP client that authorizes every
// request with the given API key.
func NewHTTPClient(apiKey string) HTTPClient {
	return &httpClient{
		client: http.DefaultClient,
		apiKey: apiKey,
	}
}

// Ensure httpClient implements HTTPClient.
var _ HTTPClient = (*httpClient)(nil)

func (c *httpClient) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return c.client.Do(req)
}

func (c *httpClient) Get(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *httpClient) Post(ctx context.Context, u *url.URL, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *httpClient) Delete(ctx context.Context, u *url.URL, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

func (c *httpClient) Close() {
	c.client.CloseIdleConnections()
}

// Client is the entrance to interact with the service. Use NewClient to
// create one, then construct Workspace, Collection and Query structs
// from it.
type Client struct {
	config *Config
	http   HTTPClient
}

// NewClient creates a new client with the given config.
func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		http:   NewHTTPClient(config.APIKey),
	}
}

// Close closes the client.
//
// You don't typically need to call this as the garbage collector will
// release the resources when the client is no longer referenced. However,
// it can be useful to call this if you want to release the resources
// immediately.
func (c *Client) Close() {
	c.http.Close()
}

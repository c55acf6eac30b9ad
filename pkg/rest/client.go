package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type Confirm func(method, path, contentType string, body io.Reader) error

type Client struct {
	URL string

	client *http.Client

	bearer   string
	username string
	password string

	header http.Header

	confirm Confirm
}

type Option func(*Client)

func New(baseURL string, options ...Option) (*Client, error) {
	url, err := url.Parse(baseURL)

	if err != nil {
		return nil, err
	}

	if !url.IsAbs() || url.Host == "" {
		return nil, fmt.Errorf("invalid base URL")
	}

	c := &Client{
		URL: url.String(),

		client: http.DefaultClient,

		header: http.Header{},
	}

	for _, o := range options {
		o(c)
	}

	return c, nil
}

func WithBearer(bearer string) func(*Client) {
	return func(c *Client) {
		c.bearer = bearer
	}
}

func WithBasicAuth(username, password string) func(*Client) {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

func WithHeader(name, value string) func(*Client) {
	return func(c *Client) {
		c.header.Set(name, value)
	}
}

func WithHTTPClient(client *http.Client) func(*Client) {
	return func(c *Client) {
		c.client = client
	}
}

func WithConfirm(confirm Confirm) func(*Client) {
	return func(c *Client) {
		c.confirm = confirm
	}
}

// Execute performs one request and normalizes the outcome. An answered
// fault (status >= 400) becomes *Error; a failure without a response is
// returned unchanged. Headers set on the client override per-call headers,
// which override the computed content type.
func (c *Client) Execute(ctx context.Context, method, path, contentType string, header http.Header, body io.Reader) (*Response, error) {
	url := strings.TrimRight(c.URL, "/") + "/" + strings.TrimLeft(path, "/")

	var err error
	var data []byte

	if body != nil {
		data, err = io.ReadAll(body)

		if err != nil {
			return nil, err
		}

		body = bytes.NewReader(data)
	}

	if c.confirm != nil {
		var preview io.Reader

		if data != nil {
			preview = bytes.NewReader(data)
		}

		if err := c.confirm(method, path, contentType, preview); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)

	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for name, values := range header {
		req.Header.Del(name)

		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	for name, values := range c.header {
		req.Header.Del(name)

		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	result, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{
			Message: statusMessage(resp),
			Status:  resp.StatusCode,

			Data:   result,
			Header: copyHeader(resp.Header),
		}
	}

	return &Response{
		Data:   result,
		Status: resp.StatusCode,

		Header: copyHeader(resp.Header),
	}, nil
}

// statusMessage keeps the reason phrase the server actually sent, not
// the canonical text for the code.
func statusMessage(resp *http.Response) string {
	message := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	message = strings.TrimSpace(message)

	if message != "" {
		return message
	}

	return "request failed"
}

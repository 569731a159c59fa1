package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/interntrack/internal/client/models"
	"github.com/dmitrijs2005/interntrack/internal/common"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL, e.g.
// "http://localhost:5000".
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{baseURL: u, http: &http.Client{Timeout: defaultTimeout}}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Signup(ctx context.Context, username, password string) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", credentials{username, password}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials{username, password}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) List(ctx context.Context, token, status, query string) ([]*models.Internship, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if query != "" {
		q.Set("q", query)
	}

	path := "/internships"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	items := []*models.Internship{}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) Get(ctx context.Context, token string, id int64) (*models.Internship, error) {
	var item models.Internship
	if err := c.do(ctx, http.MethodGet, itemPath(id), token, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *HTTPClient) Create(ctx context.Context, token string, in models.InternshipInput) (*models.Internship, error) {
	var item models.Internship
	if err := c.do(ctx, http.MethodPost, "/internships", token, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *HTTPClient) Update(ctx context.Context, token string, id int64, in models.InternshipInput) error {
	return c.do(ctx, http.MethodPut, itemPath(id), token, in, nil)
}

func (c *HTTPClient) Delete(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), token, nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func itemPath(id int64) string {
	return "/internships/" + strconv.FormatInt(id, 10)
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
// Non-2xx responses become *APIError; transport failures wrap ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.New().String())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(status int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)

	var kind error
	switch {
	case status == http.StatusBadRequest, status == http.StatusRequestEntityTooLarge:
		kind = ErrBadRequest
	case status == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusConflict:
		kind = ErrConflict
	case status == http.StatusServiceUnavailable:
		kind = ErrUnavailable
	default:
		kind = ErrServer
	}

	return &APIError{Status: status, Message: eb.Error, kind: kind}
}

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/studiowebux/productdesk/internal/types"
)

const productsPath = "/api/products"

// Recorder receives one record per API round trip
type Recorder interface {
	Record(rec types.CallRecord) error
}

// Options configures a Client
type Options struct {
	BaseURL  string
	Timeout  time.Duration // 0 means no client-side timeout
	TLS      *types.TLSConfig
	Recorder Recorder
	Logger   *slog.Logger
}

// Client talks to the product REST API
type Client struct {
	baseURL  string
	http     *http.Client
	recorder Recorder
	logger   *slog.Logger
}

// NewClient creates a client for the API rooted at opts.BaseURL
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient, err := buildHTTPClient(opts.TLS, opts.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		recorder: opts.Recorder,
		logger:   logger,
	}, nil
}

// BaseURL returns the API root the client was built with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListProducts fetches the short list of all products
func (c *Client) ListProducts(ctx context.Context) ([]types.ShortProduct, error) {
	body, err := c.do(ctx, "list", http.MethodGet, productsPath, nil)
	if err != nil {
		return nil, err
	}

	var products []types.ShortProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, &DecodeError{Op: "list", Err: err}
	}
	return products, nil
}

// GetProduct fetches one full product
func (c *Client) GetProduct(ctx context.Context, id types.ProductID) (types.Product, error) {
	body, err := c.do(ctx, "get", http.MethodGet, productPath(id), nil)
	if err != nil {
		return types.Product{}, err
	}

	var product types.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return types.Product{}, &DecodeError{Op: "get", Err: err}
	}
	return product, nil
}

// CreateProduct posts a new product and returns the server's response text
func (c *Client) CreateProduct(ctx context.Context, p types.Product) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode product: %w", err)
	}

	body, err := c.do(ctx, "create", http.MethodPost, productsPath, payload)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// UpdateProduct replaces a product and returns the server's response text
func (c *Client) UpdateProduct(ctx context.Context, p types.Product) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode product: %w", err)
	}

	body, err := c.do(ctx, "update", http.MethodPut, productPath(p.ID), payload)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DeleteProduct removes a product. The response body is ignored.
func (c *Client) DeleteProduct(ctx context.Context, id types.ProductID) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, productPath(id), nil)
	return err
}

func productPath(id types.ProductID) string {
	return productsPath + "/" + url.PathEscape(id.String())
}

// do performs one round trip and returns the response body of a 2xx answer
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	start := time.Now()
	fullURL := c.baseURL + path
	requestID := uuid.NewString()

	rec := types.CallRecord{
		RequestID:   requestID,
		Timestamp:   start,
		Operation:   op,
		Method:      method,
		URL:         fullURL,
		RequestSize: len(payload),
	}

	body, err := c.roundTrip(ctx, method, fullURL, requestID, payload, &rec)
	rec.Duration = time.Since(start).Milliseconds()
	if err != nil {
		rec.Error = err.Error()
	}
	c.finish(ctx, rec)

	return body, err
}

func (c *Client) roundTrip(ctx context.Context, method, fullURL, requestID string, payload []byte, rec *types.CallRecord) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	rec.Status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	rec.ResponseSize = len(body)

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, &StatusError{Method: method, URL: fullURL, Status: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	return body, nil
}

// finish logs and records a completed call
func (c *Client) finish(ctx context.Context, rec types.CallRecord) {
	attrs := []slog.Attr{
		slog.String("request_id", rec.RequestID),
		slog.String("op", rec.Operation),
		slog.String("method", rec.Method),
		slog.String("url", rec.URL),
		slog.Int("status", rec.Status),
		slog.Int64("duration_ms", rec.Duration),
	}
	if rec.Failed() {
		attrs = append(attrs, slog.String("err", rec.Error))
		c.logger.LogAttrs(ctx, slog.LevelError, "api_call_failed", attrs...)
	} else {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "api_call", attrs...)
	}

	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(rec); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "history_record_failed",
			slog.String("request_id", rec.RequestID),
			slog.Any("err", err),
		)
	}
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(tlsConfig *types.TLSConfig, timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if !tlsConfig.IsZero() {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// truncate shortens s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-logr/logr"

	"github.com/nscaledev/inventory-smoke/pkg/openapi"
)

// Response is the raw outcome of a request.  Status codes are never treated
// as errors at this level, interpretation is left to the caller.
type Response struct {
	StatusCode int
	Body       []byte
	TraceID    string
}

type APIClient struct {
	baseURL   string
	client    *http.Client
	config    *Config
	endpoints *Endpoints
	logger    logr.Logger
	validator *openapi.Validator
}

type Option func(*APIClient)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger logr.Logger) Option {
	return func(c *APIClient) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *APIClient) {
		c.client = client
	}
}

// NewAPIClient creates a client for the configured base URL.  Schema validation
// is enabled when the configuration asks for it.
func NewAPIClient(config *Config, options ...Option) (*APIClient, error) {
	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
		logger:    logr.Discard(),
	}

	for _, o := range options {
		o(c)
	}

	if config.ValidateSchema {
		validator, err := openapi.NewValidator()
		if err != nil {
			return nil, err
		}

		c.validator = validator
	}

	return c, nil
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.logger.Error(err, context, "method", method, "path", path, "duration", duration, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.logger.Info("use trace ID to search server logs for this request", "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// A new one is used per request so failures can be found in server logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// validateRequest checks the request against the schema, if enabled.  Mismatches
// are logged and never fail the request.
func (c *APIClient) validateRequest(req *http.Request, traceParent string) *openapi3filter.RequestValidationInput {
	if c.validator == nil {
		return nil
	}

	input, err := c.validator.ValidateRequest(req)
	if err != nil {
		c.logger.Info("schema warning", "method", req.Method, "path", req.URL.Path, "traceparent", traceParent, "error", err.Error())
	}

	return input
}

func (c *APIClient) validateResponse(ctx context.Context, input *openapi3filter.RequestValidationInput, resp *http.Response, body []byte, traceParent string) {
	if c.validator == nil || input == nil {
		return
	}

	if err := c.validator.ValidateResponse(ctx, input, resp.StatusCode, resp.Header, body); err != nil {
		c.logger.Info("schema warning", "method", input.Request.Method, "path", input.Request.URL.Path, "status", resp.StatusCode, "traceparent", traceParent, "error", err.Error())
	}
}

func (c *APIClient) doRequest(ctx context.Context, method, path, token string, body any) (*Response, error) {
	fullURL := c.baseURL + path

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=inventory-smoke")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	input := c.validateRequest(req, traceParent)

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		c.logger.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.logger.Info("response", "method", method, "path", path, "body", string(respBody))
	}

	c.validateResponse(ctx, input, resp, respBody, traceParent)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
	}, nil
}

// Register creates a user account.
func (c *APIClient) Register(ctx context.Context, credentials Credentials) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Register(), "", credentials)
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	return resp, nil
}

// Login exchanges credentials for an access token.
func (c *APIClient) Login(ctx context.Context, credentials Credentials) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Login(), "", credentials)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return resp, nil
}

// CreateProduct adds a product to the inventory.
func (c *APIClient) CreateProduct(ctx context.Context, token string, product Product) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Products(), token, product)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	return resp, nil
}

// UpdateQuantity sets the stock level of a product.
func (c *APIClient) UpdateQuantity(ctx context.Context, token, productID string, quantity int) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, c.endpoints.ProductQuantity(productID), token, QuantityUpdate{Quantity: quantity})
	if err != nil {
		return nil, fmt.Errorf("updating product quantity: %w", err)
	}

	return resp, nil
}

// ListProducts lists the whole inventory.
func (c *APIClient) ListProducts(ctx context.Context, token string) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Products(), token, nil)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return resp, nil
}

/*
Copyright 2024-2025 the Unikorn Authors.
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

//nolint:err113,revive // dynamic errors and naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

var (
	// ErrAuthentication is returned when no usable access token could be obtained.
	ErrAuthentication = errors.New("authentication failed")
)

type APIClient struct {
	baseURL   string
	client    *http.Client
	authToken string
	config    *TestConfig
	endpoints *Endpoints
	contract  *ContractValidator
	log       logr.Logger
}

var _ StoryAPI = (*APIClient)(nil)

// NewAPIClient returns an unauthenticated client for the configured service.
// Each client owns its transport, so closing one never affects another.
func NewAPIClient(config *TestConfig, log logr.Logger) (*APIClient, error) {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("unexpected default transport type %T", http.DefaultTransport)
	}

	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout:   config.RequestTimeout,
			Transport: transport.Clone(),
		},
		config:    config,
		endpoints: NewEndpoints(),
		log:       log,
	}

	if config.ValidateContract {
		contract, err := LoadContractValidator()
		if err != nil {
			return nil, err
		}

		c.contract = contract
	}

	return c, nil
}

// Connect is the per-scenario setup: it authenticates with the configured
// credentials and returns a client presenting the issued token.
func Connect(ctx context.Context, config *TestConfig, log logr.Logger) (*APIClient, error) {
	client, err := NewAPIClient(config, log)
	if err != nil {
		return nil, err
	}

	token, err := client.Authenticate(ctx, config.Credentials())
	if err != nil {
		client.Close()
		return nil, err
	}

	client.SetAuthToken(token)

	return client, nil
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

// Close releases idle connections held by the client's transport.
func (c *APIClient) Close() {
	c.client.CloseIdleConnections()
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.log.Error(err, context, "method", method, "path", path, "duration", duration, "traceID", extractTraceID(traceParent))
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	c.log.Info("unexpected status", "method", method, "path", path, "expected", expectedStatus, "status", actualStatus, "body", body, "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace ID per request lets a failing call be found in the service logs.
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
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest performs a single JSON exchange. A non-nil body is marshaled
// as the request payload. When expectedStatus is positive any other status
// is returned as an error alongside the result.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any, expectedStatus int) (*Result, error) {
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
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed (trace ID: %s): %w", extractTraceID(traceParent), err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
	}

	if c.config.LogRequests {
		c.log.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceID", result.TraceID)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.log.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	if c.contract != nil {
		if err := c.contract.ValidateResponse(ctx, req, result); err != nil {
			return result, fmt.Errorf("%s %s (trace ID: %s): %w", method, path, result.TraceID, err)
		}
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		c.logUnexpectedStatus(method, path, expectedStatus, resp.StatusCode, string(respBody), traceParent)
		return result, fmt.Errorf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", expectedStatus, resp.StatusCode, string(respBody), result.TraceID)
	}

	return result, nil
}

// Authenticate exchanges credentials for an access token. Any failure,
// including a blank token, is reported as ErrAuthentication.
func (c *APIClient) Authenticate(ctx context.Context, credentials Credentials) (string, error) {
	result, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Authenticate(), credentials, http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	var body authResponse
	if err := json.Unmarshal(result.Body, &body); err != nil {
		return "", fmt.Errorf("%w: unmarshaling token response: %w", ErrAuthentication, err)
	}

	if strings.TrimSpace(body.AccessToken) == "" {
		return "", fmt.Errorf("%w: token is null or empty (trace ID: %s)", ErrAuthentication, result.TraceID)
	}

	if info, ok := InspectToken(body.AccessToken); ok {
		c.log.V(1).Info("access token issued", "subject", info.Subject, "expires", info.ExpiresAt)
	} else {
		c.log.V(1).Info("access token is opaque")
	}

	return body.AccessToken, nil
}

// CreateStory posts a new story.
func (c *APIClient) CreateStory(ctx context.Context, payload StoryPayload) (*Result, error) {
	result, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreateStory(), payload, 0)
	if err != nil {
		return result, fmt.Errorf("creating story: %w", err)
	}

	return result, nil
}

// EditStory replaces the story with the given ID.
func (c *APIClient) EditStory(ctx context.Context, storyID string, payload StoryPayload) (*Result, error) {
	result, err := c.doRequest(ctx, http.MethodPut, c.endpoints.EditStory(storyID), payload, 0)
	if err != nil {
		return result, fmt.Errorf("editing story: %w", err)
	}

	return result, nil
}

// ListStories returns every story the service holds.
func (c *APIClient) ListStories(ctx context.Context) (*Result, error) {
	result, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListStories(), nil, 0)
	if err != nil {
		return result, fmt.Errorf("listing stories: %w", err)
	}

	return result, nil
}

// DeleteStory removes the story with the given ID.
func (c *APIClient) DeleteStory(ctx context.Context, storyID string) (*Result, error) {
	result, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.DeleteStory(storyID), nil, 0)
	if err != nil {
		return result, fmt.Errorf("deleting story: %w", err)
	}

	return result, nil
}

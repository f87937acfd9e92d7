package platformsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// jsonBody encodes v for a request body; nil yields no body.
func jsonBody(v any) (io.Reader, map[string]string, error) {
	if v == nil {
		return nil, nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(raw), map[string]string{"Content-Type": "application/json"}, nil
}

// doRequest performs an unauthenticated request with a JSON body.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body any,
	headers map[string]string,
) (*http.Response, error) {
	reader, jsonHeaders, err := jsonBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range jsonHeaders {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doAuthRequest performs a request with the session's access token,
// refreshing it first when it is about to expire.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body any,
	requiredRoles ...string,
) (*http.Response, error) {
	if err := s.checkRoles(requiredRoles...); err != nil {
		return nil, err
	}

	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}

	reader, headers, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a response into target, or returns an *APIError when
// the status is not the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// call is doAuthRequest followed by decodeJSON into a fresh T.
func call[T any](ctx context.Context, s *Session, method, path string, body any, expected int, roles ...string) (*T, error) {
	resp, err := s.doAuthRequest(ctx, method, path, body, roles...)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeJSON(resp, &out, expected); err != nil {
		return nil, err
	}
	return &out, nil
}

// callPublic is the unauthenticated counterpart of call.
func callPublic[T any](ctx context.Context, c *SDKClient, method, path string, body any, headers map[string]string, expected int) (*T, error) {
	resp, err := c.doRequest(ctx, method, path, body, headers)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeJSON(resp, &out, expected); err != nil {
		return nil, err
	}
	return &out, nil
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Envelope is the platform API's standard response wrapper.
type Envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError carries the server-supplied message for a non-2xx response, or the
// HTTP status text when the body had none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform API: %s (HTTP %d)", e.Message, e.StatusCode)
}

// IsConflict reports whether err is a duplicate/conflict answer from the API.
// Some deployments answer 409, older ones 400 with an "already exists" message.
func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusConflict ||
		strings.Contains(strings.ToLower(apiErr.Message), "already exists")
}

func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusForbidden
}

// SchemaError marks a response that decoded but did not match the documented
// shape for its endpoint. It is deliberately distinct from APIError: the call
// reached the server, the answer just wasn't what the contract promises.
type SchemaError struct {
	Endpoint string
	Field    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("platform API: unexpected response shape from %s: missing %s", e.Endpoint, e.Field)
}

// StringID tolerates the API emitting record ids as strings or numbers.
type StringID string

func (s *StringID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = StringID(n.String())
	return nil
}

// Client talks to the platform REST API on behalf of a portal session. It
// attaches the session's bearer token, wraps non-2xx answers into APIError,
// and reports 401s through the OnUnauthorized hook so the stored token can be
// cleared. No retries and no backoff: a failed call is the caller's to retry.
type Client struct {
	baseURL string
	http    *http.Client

	// onUnauthorized receives the token of any request the API answered 401.
	onUnauthorized func(token string)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// OnUnauthorized registers the token-clearing side effect for 401 answers.
// Navigation after that is left to the caller.
func (c *Client) OnUnauthorized(fn func(token string)) {
	c.onUnauthorized = fn
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform API unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onUnauthorized != nil {
		c.onUnauthorized(token)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}
	return raw, nil
}

// request issues a JSON call and decodes the envelope's data into out.
func (c *Client) request(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	raw, err := c.do(ctx, method, path, token, body, contentType)
	if err != nil {
		return err
	}
	return decodeData(path, raw, out)
}

// upload issues a multipart POST with one file part plus plain fields.
// Content-Type is the multipart boundary header, never application/json.
func (c *Client) upload(ctx context.Context, path, token string, fields map[string]string, fileField, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	fw, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("failed to create form file part: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("failed to copy upload body: %w", err)
	}
	if err := w.Close(); err != nil {
		return err
	}

	raw, err := c.do(ctx, http.MethodPost, path, token, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeData(path, raw, out)
}

func decodeData(path string, raw []byte, out any) error {
	if out == nil {
		return nil
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &SchemaError{Endpoint: path, Field: "envelope"}
	}
	if env.Data == nil {
		return &SchemaError{Endpoint: path, Field: "data"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &SchemaError{Endpoint: path, Field: "data"}
	}
	return nil
}

func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}

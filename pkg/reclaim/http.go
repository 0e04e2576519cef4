package reclaim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// newRequest creates a new HTTP request with common headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return req, nil
}

// newJSONRequest creates a new HTTP request with JSON body.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// do sends the request and decodes a 2xx JSON body into out. An empty body
// is a success with out left untouched. Non-2xx responses become *Error.
func (c *Client) do(req *http.Request, op string, out interface{}) error {
	_, err := c.send(req, op, out)
	return err
}

// send is do that also reports whether a body was decoded into out.
func (c *Client) send(req *http.Request, op string, out interface{}) (bool, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return false, newTransportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, newTransportError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, parseErrorResponse(resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		e := newTransportError("decode "+op+" response", err)
		e.StatusCode = resp.StatusCode
		e.Body = string(body)
		return false, e
	}
	return true, nil
}

// parseErrorResponse maps a non-2xx response to the appropriate error type.
func parseErrorResponse(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized:
		e := newAuthenticationError("Invalid API token")
		e.StatusCode = statusCode
		e.Body = string(body)
		return e

	case http.StatusNotFound:
		return newNotFoundError(string(body))

	case http.StatusUnprocessableEntity:
		e := newInvalidRecordError(validationMessage(body))
		e.StatusCode = statusCode
		e.Body = string(body)
		return e

	default:
		return newAPIError(statusCode, string(body))
	}
}

// validationMessage extracts the message of a 422 body.
func validationMessage(body []byte) string {
	var apiErr apiErrorBody
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}
	return "Validation failed"
}

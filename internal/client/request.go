package client

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
)

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, target any) error {
	return c.doJSON(ctx, http.MethodGet, path, q, nil, target)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, nil, body, target)
}

func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, body []byte, target any) error {
	return c.withRetries(ctx, method+" "+path, func() (bool, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
		if err != nil {
			return false, err
		}

		req = c.setHeaders(req)
		if body != nil {
			req.Header.Set("Content-Type", contentType)
		}
		if q != nil {
			req.URL.RawQuery = q.Encode()
		}

		resp, err := c.request(req)
		if err != nil {
			// Transport failures are retried unless the caller gave up.
			return ctx.Err() == nil, err
		}
		defer resp.Body.Close()

		data, err := readBody(resp)
		if err != nil {
			return true, err
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status, Message: errorMessage(data)}
			return statusErr.Temporary(), statusErr
		}

		if target == nil {
			return false, nil
		}

		if err := json.Unmarshal(data, target); err != nil {
			return false, fmt.Errorf("decoding response: %w", err)
		}

		return false, nil
	})
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

// errorMessage extracts the "error" field of an API error body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Error
}

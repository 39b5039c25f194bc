// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the fetch and download
// stages. Requests are issued once; nothing here retries.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// RequestOptions configures a single GET request.
type RequestOptions struct {
	UserAgent string
	Accept    string
}

// maxErrorBody caps how much of a failed response is kept on StatusError.
const maxErrorBody = 64 * 1024

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string

	// Body holds up to 64 KiB of the response body.
	Body []byte
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP %s from %s", status, e.URL)
}

// Get issues one GET request and returns the response when the status is
// 2xx. For any other status the body is read (the start of it is kept on
// the error), closed and a *StatusError is returned. The caller closes the
// body on success.
func Get(ctx context.Context, client *http.Client, url string, opts RequestOptions) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	if opts.Accept != "" {
		req.Header.Set("Accept", opts.Accept)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return resp, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher loads the bytes of a remote source.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) ([]byte, error)
}

// Default limits for HTTPFetcher.
const (
	DefaultMaxBytes     = 10 << 20
	DefaultFetchTimeout = 30 * time.Second
)

// HTTPFetcher downloads fonts with a GET request.
type HTTPFetcher struct {
	// Client defaults to an http.Client with DefaultFetchTimeout.
	Client *http.Client

	// MaxBytes caps the response body; 0 means DefaultMaxBytes.
	MaxBytes int64
}

var defaultClient = &http.Client{Timeout: DefaultFetchTimeout}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = defaultClient
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(src), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{URL: string(src), StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("font: %s exceeds %d bytes", src, limit)
	}
	return data, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download streams a binary resource into memory while reporting
// fractional progress.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paper-importer/internal/httputil"
)

// ErrEmptyBody is returned when a successful response carries no body.
var ErrEmptyBody = errors.New("response body is empty")

// ChunkSize is the size of each read from the response body.
const ChunkSize = 32 * 1024

// Heuristic ramp used when the server sends no Content-Length. The numbers
// are a visual approximation, not a measurement: progress starts at
// rampStart, gains rampPerMB for each megabyte and stops at rampCap until
// the stream ends.
const (
	rampStart = 50.0
	rampPerMB = 10.0
	rampCap   = 90.0
)

// ProgressSink receives progress values in [0, 100].
type ProgressSink interface {
	SetProgress(percent float64)
}

type discardProgress struct{}

func (discardProgress) SetProgress(float64) {}

// Options configures a download request.
type Options struct {
	UserAgent string
}

// Fetch downloads url and returns the body as one contiguous buffer.
// Progress is reported to sink after every chunk and is exactly 100 when
// Fetch returns successfully. On any failure the sink is reset to 0 and no
// partial data is returned. A nil sink discards progress.
func Fetch(ctx context.Context, client *http.Client, url string, sink ProgressSink, opts Options) ([]byte, error) {
	if sink == nil {
		sink = discardProgress{}
	}
	data, err := fetch(ctx, client, url, sink, opts)
	if err != nil {
		sink.SetProgress(0)
		return nil, err
	}
	return data, nil
}

func fetch(ctx context.Context, client *http.Client, url string, sink ProgressSink, opts Options) ([]byte, error) {
	resp, err := httputil.Get(ctx, client, url, httputil.RequestOptions{
		UserAgent: opts.UserAgent,
		Accept:    "application/pdf",
	})
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, ErrEmptyBody
	}
	defer resp.Body.Close()

	tracker := newTracker(resp.ContentLength, sink)

	var chunks [][]byte
	received := 0
	buf := make([]byte, ChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			chunks = append(chunks, chunk)
			received += n
			tracker.update(int64(received))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading body: %w", readErr)
		}
	}

	// Size by what actually arrived, not by the declared length.
	out := make([]byte, received)
	pos := 0
	for _, c := range chunks {
		pos += copy(out[pos:], c)
	}

	tracker.finish()
	return out, nil
}

// tracker converts byte counts into monotone progress values.
type tracker struct {
	total int64
	last  float64
	sink  ProgressSink
}

func newTracker(contentLength int64, sink ProgressSink) *tracker {
	sink.SetProgress(0)
	return &tracker{total: contentLength, sink: sink}
}

func (t *tracker) update(received int64) {
	var p float64
	if t.total > 0 {
		p = float64(received) / float64(t.total) * 100
		if p > 100 {
			p = 100
		}
	} else {
		p = min(rampStart+float64(received)/1_000_000*rampPerMB, rampCap)
	}
	if p < t.last {
		return
	}
	t.last = p
	t.sink.SetProgress(p)
}

func (t *tracker) finish() {
	t.last = 100
	t.sink.SetProgress(100)
}

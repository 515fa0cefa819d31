package graphrun

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// maxStreamLine bounds a single streamed line; run events are JSON objects
// that can carry full model outputs.
const maxStreamLine = 1 << 20

// RunStream is a live run output stream. It wraps the raw response body and
// yields lines as they arrive from the service; no parsing or reassembly
// happens client-side. Callers must Close it when done, including when they
// stop consuming early.
type RunStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

func newRunStream(body io.ReadCloser) *RunStream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 64*1024), maxStreamLine)
	return &RunStream{body: body, scanner: sc}
}

// Next advances to the next line. It returns false when the service closes
// the connection or reading fails; check Err afterwards.
func (s *RunStream) Next() bool { return s.scanner.Scan() }

// Text returns the current line without its trailing newline.
func (s *RunStream) Text() string { return s.scanner.Text() }

// Err reports any error other than a clean end of stream.
func (s *RunStream) Err() error { return s.scanner.Err() }

// Close releases the underlying connection. Closing before the stream is
// drained aborts the transfer, which is the only way to cancel a run stream
// client-side.
func (s *RunStream) Close() error { return s.body.Close() }

// StreamRun starts a run and returns its output stream as soon as response
// headers arrive; the body is not buffered. A non-2xx status is detected at
// the headers, in which case the body is read for the error, the connection
// released, and an *HTTPError returned.
//
// The client's request timeout covers the whole stream read, not just the
// header exchange; size it for the longest expected run when streaming.
func (c *Client) StreamRun(ctx context.Context, req RunRequest) (*RunStream, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req.payload(false)).
		SetDoNotParseResponse(true).
		Post(c.url("/runs/stream"))
	if err != nil {
		return nil, fmt.Errorf("post /runs/stream: %w", err)
	}

	raw := resp.RawBody()
	if resp.IsError() {
		body, _ := io.ReadAll(raw)
		raw.Close()
		return nil, newHTTPError(resp.StatusCode(), body)
	}
	return newRunStream(raw), nil
}

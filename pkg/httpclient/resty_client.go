package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "graphrun-go"

// New creates a resty client tuned for talking to a graph-execution service:
// one shared transport with keep-alive reuse, a per-request timeout, and an
// identifying User-Agent.
func New(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", userAgent)
	return c
}

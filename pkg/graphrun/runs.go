package graphrun

import (
	"context"
	"errors"
	"fmt"
)

// RunRequest carries the parameters for starting a run. Input, Config,
// Checkpoint and Metadata are opaque to the client and forwarded as-is after
// JSON encoding; unset fields are still sent as explicit JSON nulls, which is
// what the service expects on the run endpoints. Extra is merged into the
// body after the named fields and overrides them on key collision.
type RunRequest struct {
	AssistantID string
	Input       any
	Config      map[string]any
	Checkpoint  map[string]any
	Metadata    map[string]any
	Extra       map[string]any
}

func (r RunRequest) payload(withCheckpoint bool) map[string]any {
	p := map[string]any{
		"assistant_id": r.AssistantID,
		"input":        r.Input,
		"config":       r.Config,
		"metadata":     r.Metadata,
	}
	if withCheckpoint {
		p["checkpoint"] = r.Checkpoint
	}
	return mergeExtra(p, r.Extra)
}

// RunStateful executes a run on an existing thread and blocks until the
// service finishes it, returning the run record.
func (c *Client) RunStateful(ctx context.Context, req RunRequest) (map[string]any, error) {
	return c.postJSON(ctx, "/threads/runs/wait", req.payload(true))
}

// RunStateless executes a run without a thread and blocks until the service
// finishes it, returning the run output. HTTP failures are logged with status
// and body before being returned, so a diagnostic trace exists even when the
// caller swallows the error.
func (c *Client) RunStateless(ctx context.Context, req RunRequest) (map[string]any, error) {
	out, err := c.postJSON(ctx, "/runs/wait", req.payload(false))
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		c.log.Errorw("stateless run failed",
			"status", httpErr.StatusCode,
			"body", bodySnippet(httpErr.Body),
		)
	}
	return out, err
}

// RunStatus retrieves the status and details of a run on a thread.
func (c *Client) RunStatus(ctx context.Context, threadID, runID string) (map[string]any, error) {
	return c.getJSON(ctx, fmt.Sprintf("/threads/%s/runs/%s", threadID, runID), nil)
}

// CancelRun cancels a running task. extra is sent as the request body, so
// service-specific cancel options can be passed through; nil sends an empty
// object.
func (c *Client) CancelRun(ctx context.Context, threadID, runID string, extra map[string]any) error {
	body := extra
	if body == nil {
		body = map[string]any{}
	}
	return c.postNoResult(ctx, fmt.Sprintf("/threads/%s/runs/%s/cancel", threadID, runID), body)
}

package graphrun

import (
	"context"
	"fmt"
)

// ThreadState retrieves the current state of a thread.
func (c *Client) ThreadState(ctx context.Context, threadID string) (map[string]any, error) {
	return c.getJSON(ctx, fmt.Sprintf("/threads/%s/state", threadID), nil)
}

// UpdateThreadState writes new values into a thread's state, optionally at a
// specific checkpoint, and returns the updated state. A nil checkpoint is
// sent as an explicit null.
func (c *Client) UpdateThreadState(ctx context.Context, threadID string, values map[string]any, checkpoint map[string]any) (map[string]any, error) {
	payload := map[string]any{
		"values":     values,
		"checkpoint": checkpoint,
	}
	return c.postJSON(ctx, fmt.Sprintf("/threads/%s/state", threadID), payload)
}

package graphrun

import (
	"fmt"
	"strings"
)

// HTTPError is returned for any response with a non-2xx status. The client
// does not interpret status codes further; callers get the code and the raw
// body and decide for themselves.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func newHTTPError(status int, body []byte) *HTTPError {
	return &HTTPError{StatusCode: status, Body: body}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graphrun: http status %d: %s", e.StatusCode, bodySnippet(e.Body))
}

// bodySnippet trims the body for log/error output so huge responses do not
// flood messages.
func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}

package graphrun

import (
	"context"
	"net/url"
)

const defaultSearchLimit = 10

// PutItem stores a key-value pair under a hierarchical namespace in the
// service's persistent store.
func (c *Client) PutItem(ctx context.Context, namespace []string, key string, value map[string]any) error {
	payload := map[string]any{
		"namespace": namespace,
		"key":       key,
		"value":     value,
	}
	return c.putNoResult(ctx, "/store/items", payload)
}

// GetItem retrieves a store item by key. The namespace is encoded as a
// repeated query parameter, one value per path element; a nil namespace
// omits the parameter entirely.
func (c *Client) GetItem(ctx context.Context, namespace []string, key string) (map[string]any, error) {
	query := url.Values{"key": {key}}
	if namespace != nil {
		query["namespace"] = namespace
	}
	return c.getJSON(ctx, "/store/items", query)
}

// SearchRequest carries the parameters for a store search. NamespacePrefix
// and Filter are sent as null when unset; a zero Limit falls back to the
// service's page size of 10.
type SearchRequest struct {
	NamespacePrefix []string
	Filter          map[string]any
	Limit           int
	Offset          int
}

// SearchItems searches the persistent store and returns the result page.
func (c *Client) SearchItems(ctx context.Context, req SearchRequest) (map[string]any, error) {
	limit := req.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}
	payload := map[string]any{
		"namespace_prefix": req.NamespacePrefix,
		"filter":           req.Filter,
		"limit":            limit,
		"offset":           req.Offset,
	}
	return c.postJSON(ctx, "/store/items/search", payload)
}

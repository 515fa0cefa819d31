package graphrun

import (
	"context"
	"fmt"
)

// IfExists strategies for CreateAssistant.
const (
	IfExistsRaise     = "raise"
	IfExistsDoNothing = "do_nothing"
)

// CreateAssistantRequest carries the parameters for creating an assistant.
// Unlike the run endpoints, unset optional fields are omitted from the body
// entirely rather than sent as null: the service distinguishes "use default"
// from "explicit null" on this endpoint.
type CreateAssistantRequest struct {
	GraphID     string
	AssistantID string
	Config      map[string]any
	Metadata    map[string]any
	Name        string
	// IfExists controls conflict handling; empty means IfExistsRaise.
	IfExists string
}

// CreateAssistant registers an assistant for a graph and returns the created
// assistant record.
func (c *Client) CreateAssistant(ctx context.Context, req CreateAssistantRequest) (map[string]any, error) {
	ifExists := req.IfExists
	if ifExists == "" {
		ifExists = IfExistsRaise
	}
	payload := map[string]any{
		"graph_id":  req.GraphID,
		"if_exists": ifExists,
	}
	if req.AssistantID != "" {
		payload["assistant_id"] = req.AssistantID
	}
	if req.Config != nil {
		payload["config"] = req.Config
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}
	if req.Name != "" {
		payload["name"] = req.Name
	}
	return c.postJSON(ctx, "/assistants", payload)
}

// AssistantDetails fetches an assistant's configuration and schemas.
func (c *Client) AssistantDetails(ctx context.Context, assistantID string) (map[string]any, error) {
	return c.getJSON(ctx, fmt.Sprintf("/assistants/%s/schemas", assistantID), nil)
}

// AssistantSchema returns the input schema of an assistant, or an empty map
// when the details document has no input_schema field.
func (c *Client) AssistantSchema(ctx context.Context, assistantID string) (map[string]any, error) {
	details, err := c.AssistantDetails(ctx, assistantID)
	if err != nil {
		return nil, err
	}
	if schema, ok := details["input_schema"].(map[string]any); ok {
		return schema, nil
	}
	return map[string]any{}, nil
}

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/quiverhq/graphrun/internal/config"
	"github.com/quiverhq/graphrun/pkg/graphrun"
)

// CLI wires config and logging into a graphrun client and executes one
// command per invocation.
type CLI struct {
	cfg    *config.Config
	client *graphrun.Client
	log    *zap.SugaredLogger
	out    io.Writer
}

// New builds the CLI runtime from loaded config.
func New(cfg *config.Config, log *zap.SugaredLogger, out io.Writer) (*CLI, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	opts := []graphrun.Option{
		graphrun.WithTimeout(cfg.RequestTimeout),
		graphrun.WithLogger(log),
	}
	if cfg.APIKey != "" {
		opts = append(opts, graphrun.WithHeader("X-Api-Key", cfg.APIKey))
	}
	for k, v := range cfg.Headers {
		opts = append(opts, graphrun.WithHeader(k, v))
	}

	return &CLI{
		cfg:    cfg,
		client: graphrun.New(cfg.BaseURL, opts...),
		log:    log,
		out:    out,
	}, nil
}

// Usage lists the available commands.
const Usage = `usage: graphctl <command> [flags]

commands:
  run               execute a stateless run and wait for its output
  run-thread        execute a run on a thread and wait for the run record
  stream            execute a run and print its output stream line by line
  status            show the status of a run
  cancel            cancel a run
  assistant-create  register an assistant for a graph
  schema            print an assistant's input schema
  state             print a thread's state
  update-state      write values into a thread's state
  store-put         store a key-value item
  store-get         fetch a store item
  store-search      search store items
`

// Run dispatches a command by name. Unknown commands return an error with
// the usage text.
func (c *CLI) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "run":
		return c.runStateless(ctx, args)
	case "run-thread":
		return c.runStateful(ctx, args)
	case "stream":
		return c.streamRun(ctx, args)
	case "status":
		return c.runStatus(ctx, args)
	case "cancel":
		return c.cancelRun(ctx, args)
	case "assistant-create":
		return c.createAssistant(ctx, args)
	case "schema":
		return c.assistantSchema(ctx, args)
	case "state":
		return c.threadState(ctx, args)
	case "update-state":
		return c.updateThreadState(ctx, args)
	case "store-put":
		return c.storePut(ctx, args)
	case "store-get":
		return c.storeGet(ctx, args)
	case "store-search":
		return c.storeSearch(ctx, args)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, Usage)
	}
}

// printJSON writes a command result to stdout as indented JSON.
func (c *CLI) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// parseJSONObject decodes a -config/-metadata style flag value. Empty input
// yields nil so the client sends an explicit null.
func parseJSONObject(flagName, raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("flag -%s: invalid JSON object: %w", flagName, err)
	}
	return out, nil
}

// parseInput decodes a run input flag. JSON documents are passed through
// structured; anything else is forwarded as a plain string.
func parseInput(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

// splitNamespace turns "users,prefs" into its path elements. Empty input
// yields nil.
func splitNamespace(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

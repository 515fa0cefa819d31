package app

import (
	"context"
	"flag"
	"fmt"

	"github.com/quiverhq/graphrun/pkg/graphrun"
)

func (c *CLI) runRequestFlags(fs *flag.FlagSet, withCheckpoint bool) func() (graphrun.RunRequest, error) {
	assistant := fs.String("assistant", "", "assistant id or graph name (required)")
	input := fs.String("input", "", "run input: JSON document or plain string")
	configJSON := fs.String("config", "", "run configuration as a JSON object")
	metadataJSON := fs.String("metadata", "", "run metadata as a JSON object")
	var checkpointJSON *string
	if withCheckpoint {
		checkpointJSON = fs.String("checkpoint", "", "checkpoint to resume from, as a JSON object")
	}

	return func() (graphrun.RunRequest, error) {
		if *assistant == "" {
			return graphrun.RunRequest{}, fmt.Errorf("-assistant is required")
		}
		cfg, err := parseJSONObject("config", *configJSON)
		if err != nil {
			return graphrun.RunRequest{}, err
		}
		md, err := parseJSONObject("metadata", *metadataJSON)
		if err != nil {
			return graphrun.RunRequest{}, err
		}
		req := graphrun.RunRequest{
			AssistantID: *assistant,
			Input:       parseInput(*input),
			Config:      cfg,
			Metadata:    md,
		}
		if withCheckpoint {
			cp, err := parseJSONObject("checkpoint", *checkpointJSON)
			if err != nil {
				return graphrun.RunRequest{}, err
			}
			req.Checkpoint = cp
		}
		return req, nil
	}
}

func (c *CLI) runStateless(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	build := c.runRequestFlags(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req, err := build()
	if err != nil {
		return err
	}
	out, err := c.client.RunStateless(ctx, req)
	if err != nil {
		return fmt.Errorf("stateless run: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) runStateful(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run-thread", flag.ContinueOnError)
	build := c.runRequestFlags(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req, err := build()
	if err != nil {
		return err
	}
	out, err := c.client.RunStateful(ctx, req)
	if err != nil {
		return fmt.Errorf("stateful run: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) streamRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stream", flag.ContinueOnError)
	build := c.runRequestFlags(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req, err := build()
	if err != nil {
		return err
	}

	stream, err := c.client.StreamRun(ctx, req)
	if err != nil {
		return fmt.Errorf("stream run: %w", err)
	}
	defer stream.Close()

	for stream.Next() {
		fmt.Fprintln(c.out, stream.Text())
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

func (c *CLI) runStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	thread := fs.String("thread", "", "thread id (required)")
	run := fs.String("run", "", "run id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *thread == "" || *run == "" {
		return fmt.Errorf("-thread and -run are required")
	}
	out, err := c.client.RunStatus(ctx, *thread, *run)
	if err != nil {
		return fmt.Errorf("run status: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) cancelRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	thread := fs.String("thread", "", "thread id (required)")
	run := fs.String("run", "", "run id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *thread == "" || *run == "" {
		return fmt.Errorf("-thread and -run are required")
	}
	if err := c.client.CancelRun(ctx, *thread, *run, nil); err != nil {
		return fmt.Errorf("cancel run: %w", err)
	}
	c.log.Infow("run cancelled", "thread_id", *thread, "run_id", *run)
	return nil
}

func (c *CLI) createAssistant(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assistant-create", flag.ContinueOnError)
	graph := fs.String("graph", "", "graph id (required)")
	assistant := fs.String("assistant", "", "assistant id to assign")
	name := fs.String("name", "", "assistant name")
	configJSON := fs.String("config", "", "assistant configuration as a JSON object")
	metadataJSON := fs.String("metadata", "", "assistant metadata as a JSON object")
	ifExists := fs.String("if-exists", "", `conflict strategy: "raise" or "do_nothing"`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *graph == "" {
		return fmt.Errorf("-graph is required")
	}
	cfg, err := parseJSONObject("config", *configJSON)
	if err != nil {
		return err
	}
	md, err := parseJSONObject("metadata", *metadataJSON)
	if err != nil {
		return err
	}
	out, err := c.client.CreateAssistant(ctx, graphrun.CreateAssistantRequest{
		GraphID:     *graph,
		AssistantID: *assistant,
		Name:        *name,
		Config:      cfg,
		Metadata:    md,
		IfExists:    *ifExists,
	})
	if err != nil {
		return fmt.Errorf("create assistant: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) assistantSchema(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	assistant := fs.String("assistant", "", "assistant id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *assistant == "" {
		return fmt.Errorf("-assistant is required")
	}
	out, err := c.client.AssistantSchema(ctx, *assistant)
	if err != nil {
		return fmt.Errorf("assistant schema: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) threadState(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("state", flag.ContinueOnError)
	thread := fs.String("thread", "", "thread id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *thread == "" {
		return fmt.Errorf("-thread is required")
	}
	out, err := c.client.ThreadState(ctx, *thread)
	if err != nil {
		return fmt.Errorf("thread state: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) updateThreadState(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-state", flag.ContinueOnError)
	thread := fs.String("thread", "", "thread id (required)")
	valuesJSON := fs.String("values", "", "state values as a JSON object (required)")
	checkpointJSON := fs.String("checkpoint", "", "checkpoint as a JSON object")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *thread == "" {
		return fmt.Errorf("-thread is required")
	}
	values, err := parseJSONObject("values", *valuesJSON)
	if err != nil {
		return err
	}
	if values == nil {
		return fmt.Errorf("-values is required")
	}
	cp, err := parseJSONObject("checkpoint", *checkpointJSON)
	if err != nil {
		return err
	}
	out, err := c.client.UpdateThreadState(ctx, *thread, values, cp)
	if err != nil {
		return fmt.Errorf("update thread state: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) storePut(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("store-put", flag.ContinueOnError)
	namespace := fs.String("namespace", "", "comma-separated namespace path")
	key := fs.String("key", "", "item key (required)")
	valueJSON := fs.String("value", "", "item value as a JSON object (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *key == "" {
		return fmt.Errorf("-key is required")
	}
	value, err := parseJSONObject("value", *valueJSON)
	if err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("-value is required")
	}
	if err := c.client.PutItem(ctx, splitNamespace(*namespace), *key, value); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	c.log.Infow("item stored", "key", *key)
	return nil
}

func (c *CLI) storeGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("store-get", flag.ContinueOnError)
	namespace := fs.String("namespace", "", "comma-separated namespace path")
	key := fs.String("key", "", "item key (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *key == "" {
		return fmt.Errorf("-key is required")
	}
	out, err := c.client.GetItem(ctx, splitNamespace(*namespace), *key)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	return c.printJSON(out)
}

func (c *CLI) storeSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("store-search", flag.ContinueOnError)
	prefix := fs.String("prefix", "", "comma-separated namespace prefix")
	filterJSON := fs.String("filter", "", "filter as a JSON object")
	limit := fs.Int("limit", 0, "page size (service default 10)")
	offset := fs.Int("offset", 0, "items to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := parseJSONObject("filter", *filterJSON)
	if err != nil {
		return err
	}
	out, err := c.client.SearchItems(ctx, graphrun.SearchRequest{
		NamespacePrefix: splitNamespace(*prefix),
		Filter:          filter,
		Limit:           *limit,
		Offset:          *offset,
	})
	if err != nil {
		return fmt.Errorf("search items: %w", err)
	}
	return c.printJSON(out)
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/quiverhq/graphrun/internal/config"
)

func testCLI(t *testing.T, baseURL string) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cli, err := New(&config.Config{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	}, nil, &out)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cli, &out
}

func TestSchemaCommandPrintsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assistants/a1/schemas" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"input_schema":{"type":"object"}}`))
	}))
	defer srv.Close()

	cli, out := testCLI(t, srv.URL)
	if err := cli.Run(context.Background(), "schema", []string{"-assistant", "a1"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["type"] != "object" {
		t.Fatalf("unexpected output %#v", got)
	}
}

func TestRunCommandRequiresAssistant(t *testing.T) {
	cli, _ := testCLI(t, "http://127.0.0.1:1")
	err := cli.Run(context.Background(), "run", nil)
	if err == nil || !strings.Contains(err.Error(), "-assistant is required") {
		t.Fatalf("expected missing-assistant error, got %v", err)
	}
}

func TestUnknownCommandShowsUsage(t *testing.T) {
	cli, _ := testCLI(t, "http://127.0.0.1:1")
	err := cli.Run(context.Background(), "bogus", nil)
	if err == nil || !strings.Contains(err.Error(), "usage: graphctl") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestStreamCommandPrintsLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runs/stream" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("data: one\ndata: two\n"))
	}))
	defer srv.Close()

	cli, out := testCLI(t, srv.URL)
	if err := cli.Run(context.Background(), "stream", []string{"-assistant", "a1"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "data: one\ndata: two\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestParseInput(t *testing.T) {
	if got := parseInput(`{"messages":[]}`); !reflect.DeepEqual(got, map[string]any{"messages": []any{}}) {
		t.Fatalf("JSON input not decoded: %#v", got)
	}
	if got := parseInput("plain prompt"); got != "plain prompt" {
		t.Fatalf("plain input mangled: %#v", got)
	}
	if got := parseInput("  "); got != nil {
		t.Fatalf("blank input should be nil, got %#v", got)
	}
}

func TestSplitNamespace(t *testing.T) {
	if got := splitNamespace("users, prefs"); !reflect.DeepEqual(got, []string{"users", "prefs"}) {
		t.Fatalf("unexpected namespace %#v", got)
	}
	if got := splitNamespace(""); got != nil {
		t.Fatalf("empty namespace should be nil, got %#v", got)
	}
}

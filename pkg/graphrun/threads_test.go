package graphrun

import (
	"context"
	"net/http"
	"reflect"
	"testing"
)

func TestThreadStatePath(t *testing.T) {
	var method, path string
	srv := captureServer(t, http.StatusOK, `{"values":{"counter":1}}`, &method, &path, nil)
	defer srv.Close()

	c := New(srv.URL)
	out, err := c.ThreadState(context.Background(), "t1")
	if err != nil {
		t.Fatalf("ThreadState: %v", err)
	}
	if method != http.MethodGet || path != "/threads/t1/state" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
	if _, ok := out["values"]; !ok {
		t.Fatalf("unexpected result %#v", out)
	}
}

func TestUpdateThreadStatePayload(t *testing.T) {
	var method, path string
	var body map[string]any
	srv := captureServer(t, http.StatusOK, `{"checkpoint_id":"c9"}`, &method, &path, &body)
	defer srv.Close()

	c := New(srv.URL)
	out, err := c.UpdateThreadState(context.Background(), "t1", map[string]any{"counter": 2}, nil)
	if err != nil {
		t.Fatalf("UpdateThreadState: %v", err)
	}
	if method != http.MethodPost || path != "/threads/t1/state" {
		t.Fatalf("unexpected request %s %s", method, path)
	}

	want := map[string]any{
		"values":     map[string]any{"counter": float64(2)},
		"checkpoint": nil,
	}
	if !reflect.DeepEqual(body, want) {
		t.Fatalf("payload mismatch:\n got %#v\nwant %#v", body, want)
	}
	if out["checkpoint_id"] != "c9" {
		t.Fatalf("unexpected result %#v", out)
	}
}

func TestUpdateThreadStateWithCheckpoint(t *testing.T) {
	var method, path string
	var body map[string]any
	srv := captureServer(t, http.StatusOK, `{}`, &method, &path, &body)
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UpdateThreadState(context.Background(), "t1",
		map[string]any{"counter": 2},
		map[string]any{"checkpoint_id": "c1"})
	if err != nil {
		t.Fatalf("UpdateThreadState: %v", err)
	}
	cp, ok := body["checkpoint"].(map[string]any)
	if !ok || cp["checkpoint_id"] != "c1" {
		t.Fatalf("checkpoint not forwarded: %#v", body)
	}
}

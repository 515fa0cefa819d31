// Package graphrun is a thin client for a remote graph-execution service: a
// run/thread/assistant HTTP API plus a key-value store served by the same
// process. Every method is one HTTP round trip; the client keeps no state
// between calls beyond the shared connection pool. Responses are returned as
// generic maps because the service's record schemas are not fixed by this
// client.
package graphrun

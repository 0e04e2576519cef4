package reclaim

import (
	"io"
	"log"
	"testing"

	"github.com/reclaimctl/reclaim/internal/reclaimtest"
)

// newTestServer starts a fake API that is closed when the test ends.
func newTestServer(t *testing.T) *reclaimtest.Server {
	t.Helper()
	server := reclaimtest.NewServer()
	t.Cleanup(server.Close)
	return server
}

// newTestClient returns a client pointed at server. Extra options are
// applied after the defaults.
func newTestClient(t *testing.T, server *reclaimtest.Server, opts ...ClientOption) *Client {
	t.Helper()
	all := []ClientOption{
		WithToken(reclaimtest.DefaultToken),
		WithBaseURL(server.BaseURL()),
		WithLogger(log.New(io.Discard, "", 0)),
	}
	client, err := NewClient(append(all, opts...)...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func floatPtr(f float64) *float64 {
	return &f
}

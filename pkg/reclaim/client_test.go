package reclaim

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/reclaimctl/reclaim/internal/reclaimtest"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		opts        []ClientOption
		wantErr     string
		wantAuth    bool
		wantInvalid bool
	}{
		{
			name:     "missing token",
			opts:     nil,
			wantErr:  "API token is required",
			wantAuth: true,
		},
		{
			name:     "blank token",
			opts:     []ClientOption{WithToken("   ")},
			wantErr:  "API token is required",
			wantAuth: true,
		},
		{
			name:        "empty base URL",
			opts:        []ClientOption{WithToken("tok"), WithBaseURL("")},
			wantErr:     "base URL cannot be empty",
			wantInvalid: true,
		},
		{
			name: "valid options",
			opts: []ClientOption{WithToken("tok")},
		},
		{
			name: "all options",
			opts: []ClientOption{
				WithToken("tok"),
				WithBaseURL("http://localhost:9999/api/"),
				WithTimeout(5 * time.Second),
				WithHTTPClient(&http.Client{}),
				WithUserAgent("test-agent"),
				WithSchemeAlias("focus", "deep work"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				if IsAuthenticationError(err) != tt.wantAuth {
					t.Errorf("IsAuthenticationError() = %v, want %v", IsAuthenticationError(err), tt.wantAuth)
				}
				if IsInvalidRecord(err) != tt.wantInvalid {
					t.Errorf("IsInvalidRecord() = %v, want %v", IsInvalidRecord(err), tt.wantInvalid)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("expected non-nil client")
			}
		})
	}
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client, err := NewClient(WithToken("tok"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}

	client, err = NewClient(WithToken("tok"), WithBaseURL("http://example.com/api/"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.BaseURL() != "http://example.com/api" {
		t.Errorf("BaseURL() = %q, trailing slash should be trimmed", client.BaseURL())
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server, WithUserAgent("reclaim-test"))

	if _, err := client.ListTasks(context.Background(), FilterAll); err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}

	req, ok := server.LastRequest()
	if !ok {
		t.Fatal("no request recorded")
	}
	if req.Authorization != "Bearer "+reclaimtest.DefaultToken {
		t.Errorf("Authorization = %q", req.Authorization)
	}
}

func TestClient_WrongToken(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server, WithToken("wrong"))

	_, err := client.ListTasks(context.Background(), FilterAll)
	if !IsAuthenticationError(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if err.Error() != "Invalid API token" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestClient_TransportError(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)
	server.Close()

	_, err := client.ListTasks(context.Background(), FilterAll)
	if !IsAPIError(err) {
		t.Fatalf("expected API error for a closed server, got %v", err)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)
	server.FailNext(http.StatusOK, `{not json`)

	_, err := client.ListTasks(context.Background(), FilterAll)
	if !IsAPIError(err) {
		t.Fatalf("expected API error for malformed JSON, got %v", err)
	}
}

func TestClient_ServerError(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)
	server.FailNext(http.StatusInternalServerError, "internal")

	_, err := client.GetTask(context.Background(), "t1")
	if !IsAPIError(err) {
		t.Fatalf("expected API error, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "internal") {
		t.Errorf("Error() = %q, want status and body", err.Error())
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	server := newTestServer(t)
	client := newTestClient(t, server)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ListTasks(ctx, FilterAll); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

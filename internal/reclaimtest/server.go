// Package reclaimtest provides an in-memory fake of the Reclaim REST API
// for tests. It speaks the same wire format as the real service: camelCase
// keys, durations in 15-minute chunks, bearer-token authentication.
package reclaimtest

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultToken is the bearer token accepted when no other is configured.
const DefaultToken = "test-token"

// Request is a recorded request received by the fake server.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          []byte
}

// JSON decodes the recorded body as a JSON object. Keys sent as null are
// present with a nil value.
func (r Request) JSON() map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil
	}
	return m
}

// injectedFailure is a canned response returned once instead of the real one.
type injectedFailure struct {
	status int
	body   string
}

// Server is a fake Reclaim API backed by an httptest.Server.
type Server struct {
	*httptest.Server

	token  string
	logger *log.Logger

	mu       sync.Mutex
	order    []string
	tasks    map[string]map[string]interface{}
	schemes  []map[string]interface{}
	requests []Request
	failures []injectedFailure
}

// Option configures a Server.
type Option func(*Server)

// WithToken sets the bearer token the server accepts.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithLogger makes the server log one line per request.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer starts a fake API. Callers must Close it. The client base URL
// is URL() + "/api".
func NewServer(opts ...Option) *Server {
	s := &Server{
		token:  DefaultToken,
		logger: log.New(io.Discard, "", 0),
		tasks:  make(map[string]map[string]interface{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(newRouter(s))
	return s
}

// BaseURL returns the API root to configure clients with.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// AddTask stores a task given in wire format and returns its ID. Missing
// id, status and timestamps are filled in.
func (s *Server) AddTask(attrs map[string]interface{}) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertTask(attrs)
}

// AddTimeScheme registers a time scheme.
func (s *Server) AddTimeScheme(id, title, policyType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemes = append(s.schemes, map[string]interface{}{
		"id":         id,
		"title":      title,
		"policyType": policyType,
	})
}

// Task returns a copy of the stored wire-format task.
func (s *Server) Task(id string) (map[string]interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return copyTask(t), true
}

// FailNext makes the next request receive status and body instead of the
// normal response. Calls queue up.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, injectedFailure{status: status, body: body})
}

// Requests returns all recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// CountRequests returns how many requests matched method and path.
func (s *Server) CountRequests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// insertTask must be called with mu held.
func (s *Server) insertTask(attrs map[string]interface{}) string {
	t := copyTask(attrs)
	id, _ := t["id"].(string)
	if id == "" {
		id = uuid.New().String()
		t["id"] = id
	}
	now := time.Now().UTC().Format(time.RFC3339)
	setDefault(t, "status", "NEW")
	setDefault(t, "deleted", false)
	setDefault(t, "created", now)
	setDefault(t, "updated", now)

	if _, exists := s.tasks[id]; !exists {
		s.order = append(s.order, id)
	}
	s.tasks[id] = t
	return id
}

func (s *Server) record(r Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
}

func (s *Server) popFailure() (injectedFailure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.failures) == 0 {
		return injectedFailure{}, false
	}
	f := s.failures[0]
	s.failures = s.failures[1:]
	return f, true
}

func copyTask(t map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

func setDefault(t map[string]interface{}, key string, value interface{}) {
	if _, ok := t[key]; !ok {
		t[key] = value
	}
}

// Package testhelper provides testdata fixtures and fake servers for provider
// client tests.
package testhelper

import (
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/agentstation/providerhub/pkg/constants"
)

// UpdateTestdata rewrites golden files instead of comparing against them.
var UpdateTestdata = flag.Bool("update", false, "update testdata files")

// LoadTestdata loads a file from the calling package's testdata directory.
func LoadTestdata(t *testing.T, filename string) []byte {
	t.Helper()

	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path) //nolint:gosec // test paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", path, err)
	}
	return data
}

// LoadJSON loads and unmarshals a JSON testdata file.
func LoadJSON(t *testing.T, filename string, v any) {
	t.Helper()

	if err := json.Unmarshal(LoadTestdata(t, filename), v); err != nil {
		t.Fatalf("Failed to unmarshal JSON from testdata file %s: %v", filename, err)
	}
}

// CompareJSONWithTestdata compares actual, marshaled as indented JSON, with
// a golden file. With -update the golden file is rewritten.
func CompareJSONWithTestdata(t *testing.T, filename string, actual any) {
	t.Helper()

	data, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal actual data for comparison: %v", err)
	}
	data = append(data, '\n')

	if *UpdateTestdata {
		if err := os.MkdirAll("testdata", constants.DirPermissions); err != nil {
			t.Fatalf("Failed to create testdata directory: %v", err)
		}
		if err := os.WriteFile(filepath.Join("testdata", filename), data, constants.FilePermissions); err != nil {
			t.Fatalf("Failed to save testdata file %s: %v", filename, err)
		}
		return
	}

	expected := LoadTestdata(t, filename)
	if string(data) != string(expected) {
		t.Errorf("JSON data does not match testdata file %s\nActual:\n%s\nExpected:\n%s",
			filename, data, expected)
	}
}

// Request is what a Server saw.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          []byte
}

// Server is an httptest server answering every request with a fixed status
// and body, recording what it received.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewServer starts a server replying with status and the given testdata
// file. An empty filename replies with an empty body.
func NewServer(t *testing.T, status int, filename string) *Server {
	t.Helper()

	var body []byte
	if filename != "" {
		body = LoadTestdata(t, filename)
	}
	return NewServerWithBody(t, status, body)
}

// NewServerWithBody starts a server replying with status and body.
func NewServerWithBody(t *testing.T, status int, body []byte) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          payload,
		})
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It fails the test when there is none.
func (s *Server) Last(t *testing.T) Request {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("server received no requests")
	}
	return reqs[len(reqs)-1]
}

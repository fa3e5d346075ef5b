package transport

import (
	"net/http"
	"net/url"
	"testing"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&NoAuth{}).Apply(req, "test-api-key")

	if len(req.Header) != 0 {
		t.Errorf("expected no headers, got %d", len(req.Header))
	}
}

func TestBearerAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&BearerAuth{}).Apply(req, "test-api-key")

	if got := req.Header.Get("Authorization"); got != "Bearer test-api-key" {
		t.Errorf("expected bearer header, got %q", got)
	}
}

func TestHeaderAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&HeaderAuth{Header: "xi-api-key"}).Apply(req, "test-api-key")

	if got := req.Header.Get("xi-api-key"); got != "test-api-key" {
		t.Errorf("expected xi-api-key header, got %q", got)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("should not set Authorization")
	}
}

func TestQueryAuth(t *testing.T) {
	u, _ := url.Parse("https://example.com/v1/models?pageSize=10")
	req := &http.Request{Header: make(http.Header), URL: u}
	(&QueryAuth{Param: "key"}).Apply(req, "test-api-key")

	q := req.URL.Query()
	if q.Get("key") != "test-api-key" {
		t.Errorf("expected key param, got %q", q.Get("key"))
	}
	if q.Get("pageSize") != "10" {
		t.Errorf("existing params must survive, got %q", q.Get("pageSize"))
	}

	// nil URL is ignored
	(&QueryAuth{Param: "key"}).Apply(&http.Request{Header: make(http.Header)}, "k")
}

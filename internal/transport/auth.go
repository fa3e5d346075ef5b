package transport

import "net/http"

// Authenticator applies a credential to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth applies nothing.
type NoAuth struct{}

// Apply implements Authenticator.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth sends the key as an OAuth style bearer token.
type BearerAuth struct{}

// Apply implements Authenticator.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth sends the key verbatim in a custom header, e.g. xi-api-key.
type HeaderAuth struct {
	Header string
}

// Apply implements Authenticator.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth sends the key as a query parameter.
type QueryAuth struct {
	Param string
}

// Apply implements Authenticator.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}

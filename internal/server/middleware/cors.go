package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/agentstation/providerhub/internal/matcher"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	// AllowedOrigins lists exact origins or globs such as
	// https://*.example.com. Empty or "*" allows every origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORSConfig allows every origin to use the registry API.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-API-Key"},
	}
}

// WithHeader returns a copy of c that also allows header, e.g. a custom
// API key header.
func (c CORSConfig) WithHeader(header string) CORSConfig {
	if header == "" || slices.ContainsFunc(c.AllowedHeaders, func(h string) bool {
		return strings.EqualFold(h, header)
	}) {
		return c
	}
	c.AllowedHeaders = append(slices.Clone(c.AllowedHeaders), header)
	return c
}

// CORS adds CORS headers and answers preflight requests. Origin patterns
// that do not compile are ignored.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowAll := len(config.AllowedOrigins) == 0 || slices.Contains(config.AllowedOrigins, "*")
	origins := make([]*matcher.Matcher, 0, len(config.AllowedOrigins))
	for _, pattern := range config.AllowedOrigins {
		if m, err := matcher.New(pattern); err == nil && m.Type() == matcher.Glob {
			origins = append(origins, m)
		}
	}
	allowed := func(origin string) bool {
		if slices.Contains(config.AllowedOrigins, origin) {
			return true
		}
		return slices.ContainsFunc(origins, func(m *matcher.Matcher) bool { return m.Match(origin) })
	}

	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && allowed(origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Package store provides the durable key-value persistence used for the
// credential record. Keys are slash separated namespaces such as
// "settings/credentials/providers"; values are opaque bytes.
package store

import (
	"strings"

	"github.com/agentstation/providerhub/pkg/errors"
)

// Store is a synchronous key-value store.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error
}

// validateKey rejects keys that could escape a namespace.
func validateKey(key string) error {
	if key == "" {
		return errors.NewValidationError("key", key, "cannot be empty")
	}
	if strings.HasPrefix(key, "/") {
		return errors.NewValidationError("key", key, "must be relative")
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return errors.NewValidationError("key", key, "contains an invalid segment")
		}
	}
	return nil
}

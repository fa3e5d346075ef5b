package catalogs

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/agentstation/providerhub/pkg/constants"
)

// Credentials holds one provider's user supplied settings, such as
// apiKey, baseUrl and accountId. Values are opaque.
type Credentials map[string]any

// Clone returns a shallow copy of c. A nil map clones to nil.
func (c Credentials) Clone() Credentials {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// String returns the value of key formatted as a string, or "" when absent.
func (c Credentials) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Has reports whether key holds a truthy value. nil, "", false, numeric
// zero and NaN are falsy.
func (c Credentials) Has(key string) bool {
	v, ok := c[key]
	if !ok {
		return false
	}
	return Truthy(v)
}

// Masked returns a copy of c with the values of secret looking keys
// (apiKey, token, secret) replaced by a placeholder. Empty values stay as is.
func (c Credentials) Masked() Credentials {
	out := c.Clone()
	for k, v := range out {
		if isSecret(k) && Truthy(v) {
			out[k] = constants.MaskedSecret
		}
	}
	return out
}

func isSecret(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "key") || strings.Contains(k, "token") || strings.Contains(k, "secret")
}

// Truthy reports whether v counts as set.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && f == f
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// Record maps provider IDs to their credentials.
type Record map[ProviderID]Credentials

// Clone returns a deep copy of r down to the credential maps.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for id, c := range r {
		out[id] = c.Clone()
	}
	return out
}

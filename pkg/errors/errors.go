// Package errors provides the typed errors used across providerhub.
// Every type supports errors.Is against a sentinel so callers can branch
// on the failure class without depending on concrete types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New is the standard library errors.New, re-exported for convenience.
var New = errors.New

// Is and As are re-exported so callers only import one errors package.
var (
	Is = errors.Is
	As = errors.As
)

// Sentinel errors.
var (
	// ErrNotFound indicates that a provider, credential entry or model was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates a broken catalog entry or runtime configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupported indicates that a provider client lacks a requested capability.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrConstruction indicates that a provider factory failed to build a client.
	ErrConstruction = errors.New("provider construction failed")

	// ErrNetwork indicates a transport level failure reaching a provider.
	ErrNetwork = errors.New("network error")

	// ErrRemoteAPI indicates that a provider answered with a failure status.
	ErrRemoteAPI = errors.New("remote API error")

	// ErrAPIKeyRequired indicates that an API key is required but not provided.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrAPIKeyInvalid indicates that the provided API key was rejected.
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// ErrProviderUnavailable indicates a 5xx answer from a provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates that a provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error, including catalog entries
// whose model strategy lacks the data it needs.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// UnsupportedError is returned when a provider client does not offer a
// capability, such as model listing.
type UnsupportedError struct {
	Provider   string
	Capability string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("provider %s does not support %s", e.Provider, e.Capability)
}

// Is implements errors.Is support.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// NewUnsupportedError creates a new UnsupportedError.
func NewUnsupportedError(provider, capability string) *UnsupportedError {
	return &UnsupportedError{Provider: provider, Capability: capability}
}

// ConstructionError wraps a failure raised by a provider factory.
type ConstructionError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to construct provider %s", e.Provider)
	}
	return fmt.Sprintf("failed to construct provider %s: %v", e.Provider, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// NewConstructionError creates a new ConstructionError.
func NewConstructionError(provider string, err error) *ConstructionError {
	return &ConstructionError{Provider: provider, Err: err}
}

// NetworkError represents a transport failure: DNS, refused connection,
// reset, or a cancelled request.
type NetworkError struct {
	Provider string
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error calling %s (%s): %v", e.Provider, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error calling %s: %v", e.Provider, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(provider, endpoint string, err error) *NetworkError {
	return &NetworkError{Provider: provider, Endpoint: endpoint, Err: err}
}

// APIError represents a non-success answer from a provider API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	switch {
	case target == ErrRemoteAPI:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return target == ErrAPIKeyInvalid
	case e.StatusCode >= http.StatusInternalServerError:
		return target == ErrProviderUnavailable
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{Provider: provider, StatusCode: statusCode, Message: message}
}

// AuthenticationError represents a missing or unusable credential.
type AuthenticationError struct {
	Provider string
	Method   string // "api_key", "bearer", "account_id"
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Provider, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired || target == ErrAPIKeyInvalid
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(provider, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{Provider: provider, Method: method, Message: message, Err: err}
}

// ParseError represents an error when decoding a payload or file.
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during storage I/O.
type IOError struct {
	Operation string // "read", "write", "rename", "mkdir"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ResourceError represents a failed operation on a named resource.
type ResourceError struct {
	Operation string // "load", "save", "fetch"
	Resource  string // "credentials", "models", "locale"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: message, Err: err}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsUnsupported checks if an error reports a missing capability.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsConstruction checks if an error came from a provider factory.
func IsConstruction(err error) bool {
	return errors.Is(err, ErrConstruction)
}

// IsNetwork checks if an error is a transport failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsAPIKeyError checks if an error is related to API keys.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsProviderUnavailable checks if an error indicates provider unavailability.
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapResource wraps an error as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapNetwork wraps an error as a NetworkError.
func WrapNetwork(provider, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return NewNetworkError(provider, endpoint, err)
}

// Package catalogs defines the provider catalog: descriptors, model
// selection strategies, model metadata and per-provider credentials.
package catalogs

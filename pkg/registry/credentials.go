package registry

import (
	"github.com/agentstation/providerhub/pkg/catalogs"
	"github.com/agentstation/providerhub/pkg/errors"
)

// InitializeProvider creates the credential entry for id, seeded with the
// descriptor's default base URL, unless it already exists. Unknown IDs are
// ignored. The only error is a persistence failure.
func (r *Registry) InitializeProvider(id catalogs.ProviderID) error {
	desc, ok := r.descriptors.Get(id)
	if !ok {
		return nil
	}

	r.mu.RLock()
	_, exists := r.credentials[id]
	r.mu.RUnlock()
	if exists {
		return nil
	}

	return r.mutate(func(record catalogs.Record) bool {
		if _, exists := record[id]; exists {
			return false
		}
		record[id] = seed(desc)
		return true
	})
}

// Credentials returns a copy of the credentials stored for id.
func (r *Registry) Credentials(id catalogs.ProviderID) (catalogs.Credentials, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	creds, ok := r.credentials[id]
	return creds.Clone(), ok
}

// Record returns a deep copy of the whole credential record.
func (r *Registry) Record() catalogs.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.credentials.Clone()
}

// SetCredentials replaces the credentials of a catalog provider.
func (r *Registry) SetCredentials(id catalogs.ProviderID, creds catalogs.Credentials) error {
	if err := r.requireDescriptor(id); err != nil {
		return err
	}
	next := creds.Clone()
	if next == nil {
		next = catalogs.Credentials{}
	}
	return r.mutate(func(record catalogs.Record) bool {
		record[id] = next
		return true
	})
}

// UpdateCredentials merges patch into the credentials of a catalog provider.
// Keys mapped to nil are removed.
func (r *Registry) UpdateCredentials(id catalogs.ProviderID, patch catalogs.Credentials) error {
	if err := r.requireDescriptor(id); err != nil {
		return err
	}
	return r.mutate(func(record catalogs.Record) bool {
		creds := record[id].Clone()
		if creds == nil {
			creds = catalogs.Credentials{}
		}
		for k, v := range patch {
			if v == nil {
				delete(creds, k)
				continue
			}
			creds[k] = v
		}
		record[id] = creds
		return true
	})
}

// SetCredential sets a single credential field.
func (r *Registry) SetCredential(id catalogs.ProviderID, key string, value any) error {
	if key == "" {
		return errors.NewValidationError("key", key, "cannot be empty")
	}
	return r.UpdateCredentials(id, catalogs.Credentials{key: value})
}

// ResetCredentials restores the seeded entry for id and drops any models
// fetched with the old credentials.
func (r *Registry) ResetCredentials(id catalogs.ProviderID) error {
	desc, ok := r.descriptors.Get(id)
	if !ok {
		return errors.NewNotFoundError("provider", id.String())
	}
	if err := r.mutate(func(record catalogs.Record) bool {
		record[id] = seed(desc)
		return true
	}); err != nil {
		return err
	}
	r.ClearModels(id)
	return nil
}

// ValidateProvider reports whether the credentials of id satisfy the
// descriptor's required fields. Unknown providers, providers without
// credentials and descriptors without required fields are never valid.
func (r *Registry) ValidateProvider(id catalogs.ProviderID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validate(id)
}

// IsConfigured returns the cached result of ValidateProvider.
func (r *Registry) IsConfigured(id catalogs.ProviderID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configured[id]
}

// validate is ValidateProvider without locking.
func (r *Registry) validate(id catalogs.ProviderID) bool {
	creds, ok := r.credentials[id]
	if !ok {
		return false
	}
	desc, ok := r.descriptors.Get(id)
	if !ok || len(desc.RequiredFields) == 0 {
		return false
	}
	for _, field := range desc.RequiredFields {
		if !creds.Has(field) {
			return false
		}
	}
	return true
}

// recompute refreshes the configured set for every catalog provider and
// returns the entries that changed. Callers hold r.mu for writing.
func (r *Registry) recompute() []configuredChange {
	var changes []configuredChange
	for _, id := range r.descriptors.IDs() {
		next := r.validate(id)
		if prev, seen := r.configured[id]; !seen || prev != next {
			if seen || next {
				changes = append(changes, configuredChange{id: id, configured: next})
			}
		}
		r.configured[id] = next
	}
	return changes
}

// mutate applies fn to a copy of the record, persists the copy and swaps it
// in. Nothing changes in memory when persistence fails.
func (r *Registry) mutate(fn func(record catalogs.Record) bool) error {
	r.mu.Lock()
	next := r.credentials.Clone()
	if !fn(next) {
		r.mu.Unlock()
		return nil
	}
	if err := r.save(next); err != nil {
		r.mu.Unlock()
		return err
	}
	r.credentials = next
	changes := r.recompute()
	r.mu.Unlock()

	for _, c := range changes {
		r.logger.Info().
			Str("provider_id", c.id.String()).
			Bool("configured", c.configured).
			Msg("provider configuration changed")
	}
	r.hooks.configuredChanged(changes)
	return nil
}

func (r *Registry) requireDescriptor(id catalogs.ProviderID) error {
	if !r.descriptors.Exists(id) {
		return errors.NewNotFoundError("provider", id.String())
	}
	return nil
}

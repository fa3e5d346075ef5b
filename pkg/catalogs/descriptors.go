package catalogs

import (
	"fmt"

	"github.com/agentstation/providerhub/pkg/errors"
)

// Descriptors is an ordered, read-only provider catalog. Iteration order is
// the order descriptors were supplied in, which is the order aggregate views
// and bulk loads follow.
type Descriptors struct {
	order []ProviderID
	byID  map[ProviderID]*Descriptor
}

// NewDescriptors builds a catalog, rejecting empty and duplicate IDs.
func NewDescriptors(descriptors ...Descriptor) (*Descriptors, error) {
	d := &Descriptors{
		order: make([]ProviderID, 0, len(descriptors)),
		byID:  make(map[ProviderID]*Descriptor, len(descriptors)),
	}
	for i := range descriptors {
		desc := descriptors[i]
		if desc.ID == "" {
			return nil, errors.NewConfigError("catalog", fmt.Sprintf("descriptor at index %d has an empty id", i), nil)
		}
		if _, exists := d.byID[desc.ID]; exists {
			return nil, errors.NewConfigError("catalog", fmt.Sprintf("provider with ID %s already exists", desc.ID), nil)
		}
		d.order = append(d.order, desc.ID)
		d.byID[desc.ID] = &desc
	}
	return d, nil
}

// MustDescriptors is NewDescriptors that panics on error, for static tables.
func MustDescriptors(descriptors ...Descriptor) *Descriptors {
	d, err := NewDescriptors(descriptors...)
	if err != nil {
		panic(err)
	}
	return d
}

// Get returns the descriptor for id.
func (d *Descriptors) Get(id ProviderID) (*Descriptor, bool) {
	desc, ok := d.byID[id]
	return desc, ok
}

// Exists reports whether id is in the catalog.
func (d *Descriptors) Exists(id ProviderID) bool {
	_, ok := d.byID[id]
	return ok
}

// Len returns the number of descriptors.
func (d *Descriptors) Len() int {
	return len(d.order)
}

// IDs returns provider IDs in catalog order.
func (d *Descriptors) IDs() []ProviderID {
	out := make([]ProviderID, len(d.order))
	copy(out, d.order)
	return out
}

// List returns descriptors in catalog order.
func (d *Descriptors) List() []*Descriptor {
	out := make([]*Descriptor, len(d.order))
	for i, id := range d.order {
		out[i] = d.byID[id]
	}
	return out
}

// Validate runs Descriptor.Validate on every entry and returns the first failure.
func (d *Descriptors) Validate() error {
	for _, id := range d.order {
		if err := d.byID[id].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Package vmx builds, renders and parses VMware .vmx virtual machine
// descriptors.
package vmx

import (
	"fmt"
	"io"
)

// RequiredKeys are the entries every generated descriptor must carry
// before it may be written.
var RequiredKeys = []string{".encoding", "displayName", "memsize", "numvcpus", "guestOS"}

// Descriptor is an ordered set of .vmx key/value pairs. Order matters:
// .encoding must be the first line of the file, and keeping insertion
// order makes output diffs stable across runs.
type Descriptor struct {
	keys   []string
	values map[string]string
}

// NewDescriptor returns an empty descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{values: make(map[string]string)}
}

// Set stores an entry. Setting an existing key updates the value in place.
func (d *Descriptor) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value for key and whether it is present.
func (d *Descriptor) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Descriptor) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the entry names in insertion order.
func (d *Descriptor) Keys() []string {
	return d.keys
}

// Len returns the number of entries.
func (d *Descriptor) Len() int {
	return len(d.keys)
}

// Validate checks that every required key is present.
func (d *Descriptor) Validate() error {
	for _, key := range RequiredKeys {
		if !d.Has(key) {
			return fmt.Errorf("descriptor missing required key %q", key)
		}
	}
	return nil
}

// Encode writes the descriptor in .vmx syntax, one key = "value" line per
// entry in insertion order.
func (d *Descriptor) Encode(w io.Writer) error {
	for _, key := range d.keys {
		if _, err := fmt.Fprintf(w, "%s = \"%s\"\n", key, d.values[key]); err != nil {
			return err
		}
	}
	return nil
}

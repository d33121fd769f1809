// Package pve reads Proxmox VE qemu-server VM configuration files.
package pve

// GuestConfig holds the attributes of a single VM configuration.
// Attribute order matches the source file, which keeps disk and NIC
// enumeration deterministic.
type GuestConfig struct {
	keys   []string
	values map[string]string
}

// NewGuestConfig returns an empty guest configuration.
func NewGuestConfig() *GuestConfig {
	return &GuestConfig{values: make(map[string]string)}
}

// Set stores an attribute. Setting an existing key updates the value in place.
func (c *GuestConfig) Set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the raw value for key and whether it is present.
func (c *GuestConfig) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetDefault returns the value for key, or def when absent.
func (c *GuestConfig) GetDefault(key, def string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (c *GuestConfig) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns the attribute names in file order.
func (c *GuestConfig) Keys() []string {
	return c.keys
}

// Len returns the number of attributes.
func (c *GuestConfig) Len() int {
	return len(c.keys)
}

// Package codebook holds alias definitions: a flat mapping from alias name to
// formula text. A Codebook is an immutable snapshot; reloading produces a new
// one with its own version.
package codebook

import (
	"crypto/sha256"
	"encoding/hex"
	"iter"
	"maps"
	"slices"
)

// Codebook is a read-only snapshot of alias definitions. A nil *Codebook is
// valid and empty.
type Codebook struct {
	entries map[string]string
	order   []string
	version string
	source  string
}

// New builds a snapshot from entries. Names are listed in sorted order.
func New(entries map[string]string) *Codebook {
	return build(maps.Clone(entries), slices.Sorted(maps.Keys(entries)), "")
}

func build(entries map[string]string, order []string, source string) *Codebook {
	if entries == nil {
		entries = map[string]string{}
	}
	return &Codebook{
		entries: entries,
		order:   order,
		version: digest(entries),
		source:  source,
	}
}

// digest hashes the sorted entries so equal content gives equal versions
// regardless of file order or format.
func digest(entries map[string]string) string {
	h := sha256.New()
	for _, name := range slices.Sorted(maps.Keys(entries)) {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(entries[name]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Lookup returns the formula text defined for name.
func (c *Codebook) Lookup(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	f, ok := c.entries[name]
	return f, ok
}

// Has reports whether name is defined.
func (c *Codebook) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Len is the number of entries.
func (c *Codebook) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Names lists the aliases in source order.
func (c *Codebook) Names() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// All iterates over aliases and formulas in source order.
func (c *Codebook) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if c == nil {
			return
		}
		for _, name := range c.order {
			if !yield(name, c.entries[name]) {
				return
			}
		}
	}
}

// Version identifies the content of the snapshot.
func (c *Codebook) Version() string {
	if c == nil {
		return digest(nil)
	}
	return c.version
}

// Source is the file the snapshot was loaded from, if any.
func (c *Codebook) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

package coupon

import (
	"context"
)

// CodeSet represents a set of voucher codes for fast lookup.
type CodeSet interface {
	// Contains checks if a code exists in the set.
	Contains(code string) bool

	// Size returns the number of codes in the set.
	Size() int
}

// MutableCodeSet is a CodeSet that supports insert-if-absent and removal.
// Implementations are not safe for concurrent use; callers serialise access.
type MutableCodeSet interface {
	CodeSet

	// Add inserts code and reports whether it was absent before the call.
	Add(code string) bool

	// Remove deletes code from the set.
	Remove(code string)
}

// Generator draws random voucher code suffixes.
type Generator interface {
	// Suffix returns a fixed-width code suffix.
	Suffix() string
}

// Loader defines the interface for loading reserved code files.
type Loader interface {
	// Load reads a gzipped code file and returns a CodeSet.
	Load(ctx context.Context, filePath string) (CodeSet, error)
}

// ReservedList reports codes that must never be handed out.
type ReservedList interface {
	// Contains checks if a code is reserved by any loaded source.
	Contains(code string) bool

	// Size returns the total number of reserved entries across sources.
	Size() int
}

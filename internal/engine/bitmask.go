package engine

import "math/bits"

// Bitmask is a dense set of Buttons, one bit per ordinal. All operations
// are O(1) and branchless; chord resolution performs a superset test
// against every configured chord on every button transition, so this
// type has to stay cheap.
type Bitmask uint32

// EmptyBitmask is the zero value, provided for readability at call sites.
const EmptyBitmask Bitmask = 0

// Insert returns the mask with b set.
func (m Bitmask) Insert(b Button) Bitmask {
	return m | (1 << uint(b))
}

// Remove returns the mask with b cleared.
func (m Bitmask) Remove(b Button) Bitmask {
	return m &^ (1 << uint(b))
}

// Contains reports whether b is set.
func (m Bitmask) Contains(b Button) bool {
	return m&(1<<uint(b)) != 0
}

// IsSuperset reports whether m contains every bit set in other.
// Equivalent to m & other == other.
func (m Bitmask) IsSuperset(other Bitmask) bool {
	return m&other == other
}

// Count returns the number of set bits (popcount).
func (m Bitmask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Empty reports whether no bits are set.
func (m Bitmask) Empty() bool {
	return m == 0
}

// ButtonChord is a non-empty Bitmask naming the buttons that must be held
// together for a rule to apply. Equality is set equality; cardinality is
// Bitmask.Count.
type ButtonChord = Bitmask

package types

import (
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// NormalizeAddress returns the canonical form used for every address comparison.
// Only the letter case is folded; the value is otherwise taken as-is.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// AddressSet holds normalized addresses
type AddressSet map[string]bool

func NewAddressSet(addresses ...string) AddressSet {
	s := make(AddressSet, len(addresses))
	for _, a := range addresses {
		s.Add(a)
	}
	return s
}

func (s AddressSet) Add(address string) {
	s[NormalizeAddress(address)] = true
}

func (s AddressSet) Contains(address string) bool {
	return s[NormalizeAddress(address)]
}

func (s AddressSet) Len() int {
	return len(s)
}

// Merge adds every address of other to s.
func (s AddressSet) Merge(other AddressSet) {
	for a := range other {
		s[a] = true
	}
}

// Sorted returns the addresses in lexical order.
func (s AddressSet) Sorted() []string {
	keys := maps.Keys(s)
	slices.Sort(keys)
	return keys
}

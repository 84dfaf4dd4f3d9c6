// Package strset is a small string set that remembers insertion order and
// can serialize itself deterministically.
package strset

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Set struct {
	m     map[string]struct{}
	order []string
}

func New(members ...string) *Set {
	s := &Set{m: make(map[string]struct{})}
	s.Add(members...)
	return s
}

// Add inserts members, ignoring empty strings and duplicates.
func (s *Set) Add(members ...string) {
	for _, v := range members {
		if v == "" {
			continue
		}
		if _, exists := s.m[v]; exists {
			continue
		}
		s.m[v] = struct{}{}
		s.order = append(s.order, v)
	}
}

// AddSplit splits packed on delim and adds every piece.
func (s *Set) AddSplit(packed, delim string) {
	if packed == "" {
		return
	}
	s.Add(strings.Split(packed, delim)...)
}

func (s *Set) Has(v string) bool {
	_, exists := s.m[v]
	return exists
}

func (s *Set) Len() int {
	return len(s.m)
}

// Ordered returns members in the order they were first added.
func (s *Set) Ordered() []string {
	return append([]string(nil), s.order...)
}

// Sorted returns members in lexical order.
func (s *Set) Sorted() []string {
	keys := maps.Keys(s.m)
	slices.Sort(keys)
	return keys
}

// Join serializes the set in lexical order.
func (s *Set) Join(delim string) string {
	return strings.Join(s.Sorted(), delim)
}

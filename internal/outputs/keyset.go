package outputs

import (
	"maps"
	"slices"
	"strings"
)

// KeySet accumulates artifact keys declared as Markdown. Registration is
// additive only: once a key is in the set nothing removes it.
type KeySet struct {
	keys map[string]struct{}
}

// NewKeySet returns an empty set.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]struct{})}
}

// Register inserts v when it is a string that is non-empty after trimming.
// It reports whether v was a usable key; duplicates are accepted and ignored.
func (s *KeySet) Register(v any) bool {
	key, ok := v.(string)
	if !ok || strings.TrimSpace(key) == "" {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Has reports whether key was registered.
func (s *KeySet) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of distinct keys.
func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the registered keys in sorted order.
func (s *KeySet) Keys() []string {
	if s == nil {
		return []string{}
	}
	out := slices.AppendSeq(make([]string, 0, len(s.keys)), maps.Keys(s.keys))
	slices.Sort(out)
	return out
}

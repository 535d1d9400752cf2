package token

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// Unknown is returned for an empty type identifier.
	Unknown = "Unknown"
	// Generic is returned for an unrecognized bare-address type.
	Generic = "Token"

	maxSegmentLen = 20
)

var hexAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]+$`)

// Resolver maps Move type identifiers to display symbols.
type Resolver struct {
	reg Registry

	mu    sync.RWMutex
	cache map[string]string
}

// NewResolver creates a resolver over the given registry.
func NewResolver(reg Registry) *Resolver {
	return &Resolver{
		reg:   reg,
		cache: make(map[string]string),
	}
}

// Resolve returns the display symbol for typeID. It never fails.
func (r *Resolver) Resolve(typeID string) string {
	r.mu.RLock()
	symbol, ok := r.cache[typeID]
	r.mu.RUnlock()
	if ok {
		return symbol
	}

	symbol = r.resolve(typeID)

	r.mu.Lock()
	r.cache[typeID] = symbol
	r.mu.Unlock()

	return symbol
}

func (r *Resolver) resolve(typeID string) string {
	if typeID == "" {
		return Unknown
	}
	if symbol, ok := r.reg.Exact[typeID]; ok && symbol != "" {
		return symbol
	}

	lower := strings.ToLower(typeID)
	if symbol, ok := matchFragment(lower, r.reg.Primary); ok {
		return symbol
	}

	segment := lastSegment(typeID)
	if utf8.RuneCountInString(segment) <= maxSegmentLen {
		return segment
	}

	if symbol, ok := matchFragment(segment, r.reg.Segment); ok {
		return symbol
	}
	if hexAddressPattern.MatchString(segment) {
		if symbol, ok := matchFragment(lower, r.reg.Extended); ok {
			return symbol
		}
		return Generic
	}

	return segment
}

func matchFragment(s string, table []Fragment) (string, bool) {
	for _, f := range table {
		if f.Match != "" && strings.Contains(s, f.Match) {
			return f.Symbol, true
		}
	}
	return "", false
}

func lastSegment(typeID string) string {
	idx := strings.LastIndex(typeID, "::")
	if idx < 0 {
		return typeID
	}
	segment := typeID[idx+2:]
	if segment == "" {
		return typeID
	}
	return segment
}

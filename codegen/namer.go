// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import "fmt"

// Namer generates unique identifiers for one generation run.
// It tracks used names and resolves collisions with a monotonically
// increasing numeric suffix, so a collision can never reach the
// emitted source.
type Namer struct {
	// escape rewrites names that collide with target reserved words.
	escape func(string) string

	usedNames map[string]struct{}
	counter   uint32
}

// NewNamer creates a namer. escape may be nil when the target has no
// reserved-word concerns.
func NewNamer(escape func(string) string) *Namer {
	if escape == nil {
		escape = func(s string) string { return s }
	}
	return &Namer{
		escape:    escape,
		usedNames: make(map[string]struct{}),
	}
}

// Call generates a unique name based on the given base.
// It escapes reserved words and adds numeric suffixes if needed.
func (n *Namer) Call(base string) string {
	if base == "" {
		base = "unnamed"
	}
	escaped := n.escape(sanitize(base))

	if _, used := n.usedNames[escaped]; !used {
		n.usedNames[escaped] = struct{}{}
		return escaped
	}

	// Add numeric suffix to make unique.
	for {
		n.counter++
		candidate := fmt.Sprintf("%s_%d", escaped, n.counter)
		if _, used := n.usedNames[candidate]; !used {
			n.usedNames[candidate] = struct{}{}
			return candidate
		}
	}
}

// Base returns the sanitized, escaped spelling Call would hand out
// for the name absent collisions. Backends use it to predict the
// derived names (texture/sampler pairs) a node will emit.
func (n *Namer) Base(base string) string {
	if base == "" {
		base = "unnamed"
	}
	return n.escape(sanitize(base))
}

// Reserve marks a name as used without returning it. Useful for
// names the backend emits directly, like entry point parameters.
func (n *Namer) Reserve(name string) {
	n.usedNames[name] = struct{}{}
}

// IsUsed reports whether a name has already been handed out.
func (n *Namer) IsUsed(name string) bool {
	_, used := n.usedNames[name]
	return used
}

// Count returns the number of unique names tracked.
func (n *Namer) Count() int {
	return len(n.usedNames)
}

// sanitize rewrites characters that are not valid in shading-language
// identifiers. Graph node names may contain spaces or punctuation
// from authoring tools.
func sanitize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			out = append(out, c)
		case c >= '0' && c <= '9':
			if len(out) == 0 {
				out = append(out, '_')
			}
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "unnamed"
	}
	return string(out)
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"

	"github.com/gogpu/shadergraph/graph"
)

// NodeImpl is the code-emission strategy bound to a node category for
// one target language. Implementations are stateless across
// invocations: all effects go through the Shader/ShaderStage they are
// handed, which they never retain beyond the call.
//
// Lifecycle: constructed once per target at generator initialization
// and reused for every matching node instance.
type NodeImpl interface {
	// CreateVariables declares the output variables, uniforms or
	// stage IO the node needs before any function-call code
	// references them. It must be idempotent per (node, stage);
	// declare-once blocks make repeated calls safe. It receives the
	// whole Shader so cross-stage declarations (vertex attribute +
	// varying for a fragment-side geometric input) are possible.
	CreateVariables(n *graph.Node, ctx *Context, sh *Shader, stage *ShaderStage) error

	// EmitFunctionCall appends the statement(s) computing the node's
	// outputs into the stage body, referencing already-declared
	// upstream variables by name.
	EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error
}

// Registry maps node categories to implementations for one target
// language. Each backend generator owns one registry, built at
// initialization; collaborators extend it through Register before
// running generation.
type Registry struct {
	target string
	impls  map[string]NodeImpl
}

// NewRegistry creates an empty registry for the named target.
func NewRegistry(target string) *Registry {
	return &Registry{
		target: target,
		impls:  make(map[string]NodeImpl, 32),
	}
}

// Target returns the target-language identifier the registry serves.
func (r *Registry) Target() string { return r.target }

// Register binds an implementation to a node category, replacing any
// previous binding. Registering several categories to one
// implementation value is the normal way to cover families of
// operations.
func (r *Registry) Register(category string, impl NodeImpl) {
	r.impls[category] = impl
}

// Lookup returns the implementation for the node's category.
// It fails with ErrUnsupportedNode when none is registered, since
// different targets support different node subsets.
func (r *Registry) Lookup(n *graph.Node) (NodeImpl, error) {
	impl, ok := r.impls[n.Category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q for target %q (node %s)",
			ErrUnsupportedNode, n.Category, r.target, n.Name)
	}
	return impl, nil
}

// Categories returns the number of registered categories.
func (r *Registry) Categories() int { return len(r.impls) }

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"github.com/gogpu/shadergraph/codegen"
	"github.com/gogpu/shadergraph/graph"
)

// Options configures WGSL code generation.
type Options struct {
	// FoldConstants collapses literal subgraphs into single literal
	// declarations.
	FoldConstants bool

	// SkipUnsupported substitutes typed zero constants for node
	// categories without a WGSL implementation instead of failing.
	SkipUnsupported bool
}

// DefaultOptions returns sensible default options for WGSL generation.
func DefaultOptions() Options {
	return Options{FoldConstants: true}
}

// Generate compiles a material graph to WGSL vertex and fragment
// source using a generator built from opts.
func Generate(g *graph.Graph, opts Options) (*codegen.Result, error) {
	return New(opts).Generate(g)
}

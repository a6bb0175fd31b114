// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import "errors"

// Error taxonomy of the compiler core. Backends wrap these with
// context; callers test with errors.Is.
var (
	// ErrUnsupportedNode reports a node category with no registered
	// implementation for the requested target language.
	ErrUnsupportedNode = errors.New("unsupported node")

	// ErrCyclicGraph reports a connection cycle detected during
	// traversal. Shader dataflow is a DAG; this is always fatal.
	ErrCyclicGraph = errors.New("cyclic graph")

	// ErrMissingInput reports a required input port that is neither
	// connected nor defaulted.
	ErrMissingInput = errors.New("missing input")

	// ErrTypeMismatch reports a connection between incompatible port
	// types that survived into generation.
	ErrTypeMismatch = errors.New("type mismatch")
)

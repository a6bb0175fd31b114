// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package codegen implements the target-independent core of the
// shadergraph compiler.
//
// It owns the mutable Shader/ShaderStage output model, the generation
// Context (unique-name allocator, target syntax, intrinsic table),
// the node-implementation registry and the traversal scheduler that
// walks a material graph in dependency order, invoking each node's
// implementation exactly once per stage.
//
// Backends (glsl, wgsl) supply a Syntax, an intrinsic table and any
// language-specific node implementations, then serialize the stage
// blocks into final source text.
package codegen

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package wgsl generates WGSL (WebGPU Shading Language) vertex and
// fragment shader source from a material graph.
//
// It is the second backend of the shadergraph compiler and shares the
// target-independent node set with the GLSL backend; only spellings,
// stage IO structs and resource bindings differ. Each generated stage
// blob is a self-contained WGSL module.
package wgsl

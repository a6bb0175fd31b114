// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL vertex and fragment shader source from
// a material graph.
//
// The generator targets desktop GLSL 3.30+ and GLSL ES 3.00+. It owns
// a node-implementation registry seeded with the common node set plus
// GLSL-specific geometric and texturing implementations; collaborators
// may register additional categories before generating.
package glsl

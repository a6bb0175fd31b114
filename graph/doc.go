// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package graph defines the material graph data model for shadergraph.
//
// A graph is a directed acyclic dataflow of nodes. Each node has a
// semantic category ("add", "image", "texcoord", ...) plus named,
// typed input and output ports. Input ports are either connected to
// an upstream node's output port or carry a literal default value.
//
// The graph is target-language agnostic: it can be lowered to GLSL,
// WGSL or any other registered backend. Validation (type checking,
// missing inputs, duplicate names) happens here, before any code
// generation starts, so errors are collected exhaustively rather
// than surfacing one at a time mid-emission.
package graph

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shadergraph compiles material node graphs into shader
// source code for multiple target shading languages.
//
// A graph (package graph) describes a dataflow of typed nodes:
// texture-coordinate lookups, image samplers, math operators. The
// compiler core (package codegen) walks the graph in dependency
// order, consulting a per-target registry of node implementations
// that mutate a Shader/ShaderStage model; a backend (package glsl,
// package wgsl) serializes the stages into source text.
//
// Example:
//
//	g := graph.New("checker")
//	uv := graph.NewTexCoord("uv0", 0)
//	tex := graph.NewImage("diffuse", "checker.png", graph.TypeVec4)
//	g.AddNode(uv)
//	g.AddNode(tex)
//	g.Connect(uv, "out", tex, "texcoord")
//	g.AddOutput(tex)
//
//	res, err := shadergraph.Generate(g, "glsl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Stage(codegen.StageFragment))
//
// Generation is single-threaded and synchronous per run. Independent
// runs may execute concurrently: each run owns its own Shader and
// generation Context, and generators share no mutable state.
package shadergraph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/shadergraph/codegen"
	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/wgsl"
)

// Generator compiles a material graph into per-stage source text for
// one target language. Implementations must be safe for sequential
// reuse across graphs.
type Generator interface {
	Generate(g *graph.Graph) (*codegen.Result, error)
}

var (
	targetsMu sync.RWMutex
	targets   = make(map[string]func() Generator)
)

func init() {
	RegisterTarget("glsl", func() Generator { return glsl.New(glsl.DefaultOptions()) })
	RegisterTarget("glsles", func() Generator {
		opts := glsl.DefaultOptions()
		opts.LangVersion = glsl.VersionES300
		return glsl.New(opts)
	})
	RegisterTarget("wgsl", func() Generator { return wgsl.New(wgsl.DefaultOptions()) })
}

// RegisterTarget makes a target language available to Generate under
// the given name, replacing any previous registration. This is the
// extension surface for new backends; node categories are extended
// per backend through its generator's Register method.
func RegisterTarget(name string, factory func() Generator) {
	targetsMu.Lock()
	defer targetsMu.Unlock()
	targets[name] = factory
}

// Targets returns the registered target names, sorted.
func Targets() []string {
	targetsMu.RLock()
	defer targetsMu.RUnlock()
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate compiles the graph for the named target using that
// backend's default options. For custom options or registry
// extension, construct the backend generator directly.
func Generate(g *graph.Graph, target string) (*codegen.Result, error) {
	targetsMu.RLock()
	factory, ok := targets[target]
	targetsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown target %q (registered: %v)", target, Targets())
	}
	return factory().Generate(g)
}

// Validate checks a graph for problems detectable before generation:
// type mismatches, missing required inputs, dangling connections.
// All errors are collected rather than failing on the first.
func Validate(g *graph.Graph) []graph.ValidationError {
	return graph.Validate(g)
}

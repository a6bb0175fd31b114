// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/shadergraph/codegen"
	"github.com/gogpu/shadergraph/graph"
)

// Fixed interface names of the generated pipeline.
const (
	positionAttr = "i_position"
	mvpUniform   = "u_mvpMatrix"
	ioStruct     = "VertexOutput"
)

// Generator compiles material graphs to WGSL.
type Generator struct {
	opts Options
	reg  *codegen.Registry
}

// New creates a WGSL generator seeded with the common node set plus
// the WGSL geometric and texturing implementations.
func New(opts Options) *Generator {
	reg := codegen.NewRegistry("wgsl")
	codegen.RegisterCommon(reg)
	registerWGSL(reg)
	return &Generator{opts: opts, reg: reg}
}

// Register binds an implementation to a node category, extending or
// overriding the built-in set.
func (gen *Generator) Register(category string, impl codegen.NodeImpl) {
	gen.reg.Register(category, impl)
}

// Generate compiles the graph into vertex and fragment stage source.
// Each stage is emitted as a self-contained WGSL module.
func (gen *Generator) Generate(g *graph.Graph) (*codegen.Result, error) {
	if verrs := graph.Validate(g); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return nil, fmt.Errorf("wgsl: validation failed: %w", errors.Join(errs...))
	}
	if len(g.Outputs) > 1 {
		return nil, fmt.Errorf("wgsl: graph %q has %d outputs; the WGSL backend emits a single color target", g.Name, len(g.Outputs))
	}

	namer := codegen.NewNamer(escapeKeyword)
	namer.Reserve(positionAttr)
	namer.Reserve(mvpUniform)
	reserveInterfaceNames(namer, gen.reg, g)

	ctx := codegen.NewContext("wgsl", syntax{}, namer, intrinsics, codegen.Options{
		FoldConstants:   gen.opts.FoldConstants,
		SkipUnsupported: gen.opts.SkipUnsupported,
	})

	sh := codegen.NewShader(g.Name, codegen.StageVertex, codegen.StageFragment)
	vs := sh.Stage(codegen.StageVertex)
	fs := sh.Stage(codegen.StageFragment)

	vs.Uniforms.Declare(codegen.Variable{Name: mvpUniform, Type: graph.TypeMat4, Semantic: "mvp"})
	vs.Inputs.Declare(codegen.Variable{Name: positionAttr, Type: graph.TypeVec3, Semantic: "position"})

	if err := codegen.EmitStage(ctx, gen.reg, sh, fs, g.Outputs); err != nil {
		return nil, fmt.Errorf("wgsl: %s stage: %w", fs.Kind, err)
	}

	// Final assignments: clip position in the vertex stage, returned
	// color in the fragment stage.
	syn := syntax{}
	vs.AppendBody(syn.Assign("out.position", mvpUniform+" * vec4<f32>("+positionAttr+", 1.0)"))

	out := g.Outputs[0]
	if len(out.Outputs) == 0 {
		return nil, fmt.Errorf("wgsl: output node %s has no output port", out.Name)
	}
	port := out.Outputs[0]
	name, ok := fs.OutputVar(out, port.Name)
	if !ok {
		return nil, fmt.Errorf("wgsl: output node %s was not emitted", out.Name)
	}
	if !port.Type.ConvertibleTo(graph.TypeVec4) {
		return nil, fmt.Errorf("wgsl: %w: output node %s has type %s, cannot initialize a color target",
			codegen.ErrTypeMismatch, out.Name, port.Type)
	}
	fs.AppendBody("return " + syn.Convert(name, port.Type, graph.TypeVec4) + ";")

	return &codegen.Result{
		Name:     g.Name,
		Warnings: ctx.Warnings,
		Stages: []codegen.StageSource{
			{Kind: codegen.StageVertex, Source: writeVertex(vs)},
			{Kind: codegen.StageFragment, Source: writeFragment(vs, fs)},
		},
	}, nil
}

// writeIOStruct serializes the VertexOutput struct shared by both
// stage modules. Varying locations follow vertex-stage declaration
// order, so the two modules always agree.
func writeIOStruct(b *strings.Builder, vs *codegen.ShaderStage) {
	syn := syntax{}
	b.WriteString("struct " + ioStruct + " {\n")
	b.WriteString("    @builtin(position) position: vec4<f32>,\n")
	for i, v := range vs.Outputs.Vars() {
		fmt.Fprintf(b, "    @location(%d) %s: %s,\n", i, v.Name, syn.TypeName(v.Type))
	}
	b.WriteString("}\n")
}

// writeResources serializes the stage's uniform block. A Sampler2D
// declaration expands to a texture_2d/sampler pair with consecutive
// bindings; group 0 is the vertex stage, group 1 the fragment stage.
func writeResources(b *strings.Builder, st *codegen.ShaderStage, group int) {
	syn := syntax{}
	if st.Uniforms.Len() == 0 {
		return
	}
	b.WriteString("\n")
	binding := 0
	for _, v := range st.Uniforms.Vars() {
		if v.Type == graph.TypeSampler2D {
			fmt.Fprintf(b, "@group(%d) @binding(%d) var t_%s: texture_2d<f32>;\n", group, binding, v.Name)
			fmt.Fprintf(b, "@group(%d) @binding(%d) var s_%s: sampler;\n", group, binding+1, v.Name)
			binding += 2
			continue
		}
		fmt.Fprintf(b, "@group(%d) @binding(%d) var<uniform> %s: %s;\n", group, binding, v.Name, syn.TypeName(v.Type))
		binding++
	}
}

func writeVertex(vs *codegen.ShaderStage) string {
	syn := syntax{}
	var b strings.Builder

	writeIOStruct(&b, vs)
	writeResources(&b, vs, 0)

	b.WriteString("\n@vertex\nfn vs_main(\n")
	for i, v := range vs.Inputs.Vars() {
		fmt.Fprintf(&b, "    @location(%d) %s: %s,\n", i, v.Name, syn.TypeName(v.Type))
	}
	b.WriteString(") -> " + ioStruct + " {\n")
	b.WriteString("    var out: " + ioStruct + ";\n")
	for _, stmt := range vs.Body() {
		b.WriteString("    ")
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	b.WriteString("    return out;\n}\n")
	return b.String()
}

func writeFragment(vs, fs *codegen.ShaderStage) string {
	var b strings.Builder

	writeIOStruct(&b, vs)
	writeResources(&b, fs, 1)

	for _, fn := range fs.Functions() {
		b.WriteString("\n")
		b.WriteString(fn)
		b.WriteString("\n")
	}

	b.WriteString("\n@fragment\nfn fs_main(in: " + ioStruct + ") -> @location(0) vec4<f32> {\n")
	for _, stmt := range fs.Body() {
		b.WriteString("    ")
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

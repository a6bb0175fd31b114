// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

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
	colorOutput  = "frag_color"
)

// Generator compiles material graphs to GLSL. It is built once per
// target configuration and may be reused across runs; each run owns
// its own Shader and Context, so independent runs can proceed in
// parallel on separate Generators or sequentially on one.
type Generator struct {
	opts Options
	reg  *codegen.Registry
}

// New creates a GLSL generator. The registry is seeded with the
// common node set plus the GLSL geometric and texturing
// implementations.
func New(opts Options) *Generator {
	if opts.LangVersion.Major == 0 {
		opts.LangVersion = Version330
	}
	reg := codegen.NewRegistry("glsl")
	codegen.RegisterCommon(reg)
	registerGLSL(reg)
	return &Generator{opts: opts, reg: reg}
}

// Register binds an implementation to a node category, extending or
// overriding the built-in set.
func (gen *Generator) Register(category string, impl codegen.NodeImpl) {
	gen.reg.Register(category, impl)
}

// Generate compiles the graph into vertex and fragment stage source.
// Validation errors are collected exhaustively before generation
// starts; traversal errors abort on first failure.
func (gen *Generator) Generate(g *graph.Graph) (*codegen.Result, error) {
	if verrs := graph.Validate(g); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return nil, fmt.Errorf("glsl: validation failed: %w", errors.Join(errs...))
	}

	namer := codegen.NewNamer(escapeKeyword)
	namer.Reserve(positionAttr)
	namer.Reserve(mvpUniform)
	namer.Reserve(colorOutput)
	namer.Reserve(remapFunction)
	for i := 1; i < len(g.Outputs); i++ {
		namer.Reserve(fmt.Sprintf("%s_%d", colorOutput, i))
	}
	reserveInterfaceNames(namer, gen.reg, g)

	ctx := codegen.NewContext("glsl", syntax{}, namer, intrinsics, codegen.Options{
		FoldConstants:   gen.opts.FoldConstants,
		SkipUnsupported: gen.opts.SkipUnsupported,
	})

	sh := codegen.NewShader(g.Name, codegen.StageVertex, codegen.StageFragment)
	vs := sh.Stage(codegen.StageVertex)
	fs := sh.Stage(codegen.StageFragment)

	// Every pipeline transforms the position attribute; material
	// nodes add their own IO around it.
	vs.Uniforms.Declare(codegen.Variable{Name: mvpUniform, Type: graph.TypeMat4, Semantic: "mvp"})
	vs.Inputs.Declare(codegen.Variable{Name: positionAttr, Type: graph.TypeVec3, Semantic: "position"})
	fs.Outputs.Declare(codegen.Variable{Name: colorOutput, Type: graph.TypeVec4, Semantic: "color"})

	// Per-stage traversal. The vertex stage has no graph roots of its
	// own; its body is filled by fragment-side nodes declaring
	// interpolants, plus the final position transform.
	if err := codegen.EmitStage(ctx, gen.reg, sh, fs, g.Outputs); err != nil {
		return nil, fmt.Errorf("glsl: %s stage: %w", fs.Kind, err)
	}

	if err := gen.writeOutputs(g, fs); err != nil {
		return nil, fmt.Errorf("glsl: %s stage: %w", fs.Kind, err)
	}
	vs.AppendBody(ctx.Syntax.Assign("gl_Position", mvpUniform+" * vec4("+positionAttr+", 1.0)"))

	res := &codegen.Result{Name: g.Name, Warnings: ctx.Warnings}
	for _, st := range sh.Stages() {
		res.Stages = append(res.Stages, codegen.StageSource{
			Kind:   st.Kind,
			Source: writeStage(st, gen.opts.LangVersion),
		})
	}
	return res, nil
}

// writeOutputs assigns each designated graph output to a fragment
// color target. The first output drives frag_color; further outputs
// get their own declared targets, with names reserved up front.
func (gen *Generator) writeOutputs(g *graph.Graph, fs *codegen.ShaderStage) error {
	syn := syntax{}
	for i, out := range g.Outputs {
		if len(out.Outputs) == 0 {
			return fmt.Errorf("output node %s has no output port", out.Name)
		}
		port := out.Outputs[0]
		name, ok := fs.OutputVar(out, port.Name)
		if !ok {
			return fmt.Errorf("output node %s was not emitted", out.Name)
		}
		if !port.Type.ConvertibleTo(graph.TypeVec4) {
			return fmt.Errorf("%w: output node %s has type %s, cannot initialize a color target",
				codegen.ErrTypeMismatch, out.Name, port.Type)
		}
		target := colorOutput
		if i > 0 {
			target = fmt.Sprintf("%s_%d", colorOutput, i)
			fs.Outputs.Declare(codegen.Variable{Name: target, Type: graph.TypeVec4, Semantic: "color"})
		}
		fs.AppendBody(syn.Assign(target, syn.Convert(name, port.Type, graph.TypeVec4)))
	}
	return nil
}

// writeStage serializes a stage in fixed order: version directive,
// precision (ES), uniforms, inputs, outputs, helper functions, body.
// Declarations always precede use regardless of emission order.
func writeStage(st *codegen.ShaderStage, version Version) string {
	syn := syntax{}
	var b strings.Builder

	fmt.Fprintf(&b, "#version %s\n", version.String())
	if version.ES {
		b.WriteString("\nprecision highp float;\nprecision highp int;\n")
	}

	if st.Uniforms.Len() > 0 {
		b.WriteString("\n")
		for _, v := range st.Uniforms.Vars() {
			fmt.Fprintf(&b, "uniform %s %s;\n", syn.TypeName(v.Type), v.Name)
		}
	}
	if st.Inputs.Len() > 0 {
		b.WriteString("\n")
		for i, v := range st.Inputs.Vars() {
			if st.Kind == codegen.StageVertex {
				fmt.Fprintf(&b, "layout(location = %d) in %s %s;\n", i, syn.TypeName(v.Type), v.Name)
			} else {
				fmt.Fprintf(&b, "in %s %s;\n", syn.TypeName(v.Type), v.Name)
			}
		}
	}
	if st.Outputs.Len() > 0 {
		b.WriteString("\n")
		for i, v := range st.Outputs.Vars() {
			if st.Kind == codegen.StageFragment {
				fmt.Fprintf(&b, "layout(location = %d) out %s %s;\n", i, syn.TypeName(v.Type), v.Name)
			} else {
				fmt.Fprintf(&b, "out %s %s;\n", syn.TypeName(v.Type), v.Name)
			}
		}
	}
	for _, fn := range st.Functions() {
		b.WriteString("\n")
		b.WriteString(fn)
		b.WriteString("\n")
	}

	b.WriteString("\nvoid main()\n{\n")
	for _, stmt := range st.Body() {
		b.WriteString("    ")
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

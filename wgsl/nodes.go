// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"fmt"
	"strconv"

	"github.com/gogpu/shadergraph/codegen"
	"github.com/gogpu/shadergraph/graph"
)

// geometricImpl serves the geometric input categories. WGSL stage IO
// goes through structs: the vertex entry receives attributes as
// @location parameters and returns a VertexOutput struct; the
// fragment entry receives the same struct as parameter "in". The
// implementation therefore memoizes "out.v_x" in the vertex stage
// body copies and "in.v_x" as the fragment-side value expression.
type geometricImpl struct {
	semantic string
	typ      graph.Type
	indexed  bool
}

func (im geometricImpl) variableSemantic(n *graph.Node) (string, error) {
	if !im.indexed {
		return im.semantic, nil
	}
	idx := 0
	if in := n.Input("index"); in != nil {
		if in.Connected() {
			return "", fmt.Errorf("node %s: %s index must be a literal", n.Name, n.Category)
		}
		if !in.Default.IsZero() {
			idx = in.Default.IntVal()
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("node %s: negative %s index %d", n.Name, n.Category, idx)
	}
	return im.semantic + "_" + strconv.Itoa(idx), nil
}

func (im geometricImpl) CreateVariables(n *graph.Node, ctx *codegen.Context, sh *codegen.Shader, stage *codegen.ShaderStage) error {
	sem, err := im.variableSemantic(n)
	if err != nil {
		return err
	}
	attr := "i_" + sem
	vary := "v_" + sem

	vs := sh.Stage(codegen.StageVertex)
	switch stage.Kind {
	case codegen.StageVertex:
		if stage.Inputs.Declare(codegen.Variable{Name: attr, Type: im.typ, Semantic: sem}) {
			ctx.Namer.Reserve(attr)
		}
		stage.SetOutputVar(n, "out", attr)

	case codegen.StageFragment:
		if vs != nil {
			if vs.Inputs.Declare(codegen.Variable{Name: attr, Type: im.typ, Semantic: sem}) {
				ctx.Namer.Reserve(attr)
			}
			if vs.Outputs.Declare(codegen.Variable{Name: vary, Type: im.typ, Semantic: sem}) {
				ctx.Namer.Reserve(vary)
				vs.AppendBody(ctx.Syntax.Assign("out."+vary, attr))
			}
		}
		stage.Inputs.Declare(codegen.Variable{Name: vary, Type: im.typ, Semantic: sem})
		stage.SetOutputVar(n, "out", "in."+vary)
	}
	return nil
}

func (geometricImpl) EmitFunctionCall(*graph.Node, *codegen.Context, *codegen.ShaderStage) error {
	return nil
}

// imageImpl samples a 2D texture. WGSL separates the texture from the
// sampler, so one declared Sampler2D variable expands to a
// texture_2d/sampler pair at serialization; the pair shares the base
// name with t_/s_ prefixes.
type imageImpl struct{}

const samplerKey = "sampler"

func (imageImpl) CreateVariables(n *graph.Node, ctx *codegen.Context, _ *codegen.Shader, stage *codegen.ShaderStage) error {
	if _, declared := stage.OutputVar(n, samplerKey); declared {
		return nil
	}
	base := ctx.Namer.Call(n.Name)
	ctx.Namer.Reserve("t_" + base)
	ctx.Namer.Reserve("s_" + base)
	sem := "texture"
	if file := n.Input("file"); file != nil && !file.Default.IsZero() {
		sem = "texture:" + file.Default.StringVal()
	}
	stage.Uniforms.Declare(codegen.Variable{Name: base, Type: graph.TypeSampler2D, Semantic: sem})
	stage.SetOutputVar(n, samplerKey, base)
	return nil
}

func (imageImpl) EmitFunctionCall(n *graph.Node, ctx *codegen.Context, stage *codegen.ShaderStage) error {
	base, ok := stage.OutputVar(n, samplerKey)
	if !ok {
		return fmt.Errorf("node %s: texture not declared", n.Name)
	}
	uv := n.Input("texcoord")
	if uv == nil {
		return fmt.Errorf("node %s: image node has no texcoord port", n.Name)
	}
	coord, err := codegen.InputExpr(ctx, stage, n, uv)
	if err != nil {
		return err
	}
	expr := "textureSample(t_" + base + ", s_" + base + ", " + coord + ")"
	switch n.OutputType() {
	case graph.TypeVec4:
	case graph.TypeVec3:
		expr += ".rgb"
	case graph.TypeFloat:
		expr += ".r"
	default:
		return fmt.Errorf("node %s: image output must be float, vec3 or vec4, got %s", n.Name, n.OutputType())
	}
	return codegen.EmitLocal(n, ctx, stage, expr)
}

// reserveInterfaceNames claims every fixed name the graph's nodes
// will declare outside the namer: geometric attribute and varying
// names, and the texture/sampler pair derived from each image node's
// base name. Without this a node local could take the name first and
// shadow the interface variable.
func reserveInterfaceNames(namer *codegen.Namer, reg *codegen.Registry, g *graph.Graph) {
	for _, n := range g.Nodes() {
		impl, err := reg.Lookup(n)
		if err != nil {
			continue
		}
		switch im := impl.(type) {
		case geometricImpl:
			sem, err := im.variableSemantic(n)
			if err != nil {
				continue
			}
			namer.Reserve("i_" + sem)
			namer.Reserve("v_" + sem)
		case imageImpl:
			base := namer.Base(n.Name)
			namer.Reserve("t_" + base)
			namer.Reserve("s_" + base)
		}
	}
}

// registerWGSL installs the WGSL-specific node set on top of the
// common one. The remap category has no WGSL implementation.
func registerWGSL(reg *codegen.Registry) {
	reg.Register("position", geometricImpl{semantic: "position", typ: graph.TypeVec3})
	reg.Register("normal", geometricImpl{semantic: "normal", typ: graph.TypeVec3})
	reg.Register("tangent", geometricImpl{semantic: "tangent", typ: graph.TypeVec3})
	reg.Register("bitangent", geometricImpl{semantic: "bitangent", typ: graph.TypeVec3})
	reg.Register("texcoord", geometricImpl{semantic: "texcoord", typ: graph.TypeVec2, indexed: true})
	reg.Register("geomcolor", geometricImpl{semantic: "color", typ: graph.TypeVec4})

	reg.Register("image", imageImpl{})

	// WGSL spells float modulo with the % operator.
	reg.Register("modulo", codegen.NewOperatorImpl("%"))
}

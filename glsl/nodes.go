// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"

	"github.com/gogpu/shadergraph/codegen"
	"github.com/gogpu/shadergraph/graph"
)

// geometricImpl serves the geometric input categories: position,
// normal, tangent, bitangent, texcoord and geomcolor. In the vertex
// stage the value is the vertex attribute itself. In the fragment
// stage the implementation declares the attribute and a varying in
// the vertex stage, appends the interpolation copy there, and reads
// the varying — which is why CreateVariables receives the whole
// Shader rather than just the current stage.
type geometricImpl struct {
	semantic string
	typ      graph.Type
	// indexed categories (texcoord) append the index input to the
	// semantic, giving texcoord_0, texcoord_1, ...
	indexed bool
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
				vs.AppendBody(ctx.Syntax.Assign(vary, attr))
			}
		}
		stage.Inputs.Declare(codegen.Variable{Name: vary, Type: im.typ, Semantic: sem})
		stage.SetOutputVar(n, "out", vary)
	}
	return nil
}

// EmitFunctionCall is a no-op: the node's value is the stage input
// variable declared by CreateVariables.
func (geometricImpl) EmitFunctionCall(*graph.Node, *codegen.Context, *codegen.ShaderStage) error {
	return nil
}

// imageImpl samples a 2D texture. It declares one sampler2D uniform
// per node and emits a texture() call bound to the node's texcoord
// input.
type imageImpl struct{}

const samplerKey = "sampler"

func (imageImpl) CreateVariables(n *graph.Node, ctx *codegen.Context, _ *codegen.Shader, stage *codegen.ShaderStage) error {
	if _, declared := stage.OutputVar(n, samplerKey); declared {
		return nil
	}
	name := ctx.Namer.Call("u_" + n.Name)
	sem := "texture"
	if file := n.Input("file"); file != nil && !file.Default.IsZero() {
		sem = "texture:" + file.Default.StringVal()
	}
	stage.Uniforms.Declare(codegen.Variable{Name: name, Type: graph.TypeSampler2D, Semantic: sem})
	stage.SetOutputVar(n, samplerKey, name)
	return nil
}

func (imageImpl) EmitFunctionCall(n *graph.Node, ctx *codegen.Context, stage *codegen.ShaderStage) error {
	sampler, ok := stage.OutputVar(n, samplerKey)
	if !ok {
		return fmt.Errorf("node %s: sampler not declared", n.Name)
	}
	uv := n.Input("texcoord")
	if uv == nil {
		return fmt.Errorf("node %s: image node has no texcoord port", n.Name)
	}
	coord, err := codegen.InputExpr(ctx, stage, n, uv)
	if err != nil {
		return err
	}
	expr := "texture(" + sampler + ", " + coord + ")"
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

// remapImpl emits a call to a generated helper function instead of an
// inline expression, registering the helper once per stage.
type remapImpl struct{}

const remapFunction = "sg_remap"

const remapSource = `float sg_remap(float x, float inlow, float inhigh, float outlow, float outhigh)
{
    return outlow + (x - inlow) * (outhigh - outlow) / (inhigh - inlow);
}`

func (remapImpl) CreateVariables(*graph.Node, *codegen.Context, *codegen.Shader, *codegen.ShaderStage) error {
	return nil
}

func (remapImpl) EmitFunctionCall(n *graph.Node, ctx *codegen.Context, stage *codegen.ShaderStage) error {
	args, err := codegen.InputExprs(n, ctx, stage)
	if err != nil {
		return err
	}
	if len(args) != 5 {
		return fmt.Errorf("node %s: remap takes 5 inputs, node has %d", n.Name, len(args))
	}
	stage.AddFunction(remapFunction, remapSource)
	expr := remapFunction + "(" + args[0] + ", " + args[1] + ", " + args[2] + ", " + args[3] + ", " + args[4] + ")"
	return codegen.EmitLocal(n, ctx, stage, expr)
}

// reserveInterfaceNames claims every fixed attribute and varying name
// the graph's geometric nodes will declare, before traversal hands any
// of them out as a local. A node literally named "v_texcoord_0" must
// lose the name to the interpolant, not shadow it.
func reserveInterfaceNames(namer *codegen.Namer, reg *codegen.Registry, g *graph.Graph) {
	for _, n := range g.Nodes() {
		impl, err := reg.Lookup(n)
		if err != nil {
			continue
		}
		gi, ok := impl.(geometricImpl)
		if !ok {
			continue
		}
		sem, err := gi.variableSemantic(n)
		if err != nil {
			continue
		}
		namer.Reserve("i_" + sem)
		namer.Reserve("v_" + sem)
	}
}

// registerGLSL installs the GLSL-specific node set on top of the
// common one.
func registerGLSL(reg *codegen.Registry) {
	reg.Register("position", geometricImpl{semantic: "position", typ: graph.TypeVec3})
	reg.Register("normal", geometricImpl{semantic: "normal", typ: graph.TypeVec3})
	reg.Register("tangent", geometricImpl{semantic: "tangent", typ: graph.TypeVec3})
	reg.Register("bitangent", geometricImpl{semantic: "bitangent", typ: graph.TypeVec3})
	reg.Register("texcoord", geometricImpl{semantic: "texcoord", typ: graph.TypeVec2, indexed: true})
	reg.Register("geomcolor", geometricImpl{semantic: "color", typ: graph.TypeVec4})

	reg.Register("image", imageImpl{})

	// GLSL spells float modulo as the mod() built-in.
	reg.Register("modulo", codegen.NewIntrinsicImpl("mod"))

	reg.Register("remap", remapImpl{})
}

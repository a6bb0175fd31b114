// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/shadergraph/codegen"
	"github.com/gogpu/shadergraph/graph"
)

// texturedGraph is the canonical material: a UV set driving a texture
// sample driving the color output.
func texturedGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New("textured")
	uv := graph.NewTexCoord("uv0", 0)
	img := graph.NewImage("diffuse", "diffuse.png", graph.TypeVec4)
	for _, n := range []*graph.Node{uv, img} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Connect(uv, "out", img, "texcoord"); err != nil {
		t.Fatal(err)
	}
	g.AddOutput(img)
	return g
}

func generate(t *testing.T, g *graph.Graph, opts Options) *codegen.Result {
	t.Helper()
	res, err := Generate(g, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func TestGenerate_TexturedFragment(t *testing.T) {
	res := generate(t, texturedGraph(t), DefaultOptions())
	frag := res.Stage(codegen.StageFragment)

	want := []string{
		"#version 330 core",
		"uniform sampler2D u_diffuse;",
		"in vec2 v_texcoord_0;",
		"layout(location = 0) out vec4 frag_color;",
		"vec4 diffuse = texture(u_diffuse, v_texcoord_0);",
		"frag_color = diffuse;",
		"void main()",
	}
	for _, w := range want {
		if !strings.Contains(frag, w) {
			t.Errorf("fragment source missing %q:\n%s", w, frag)
		}
	}
}

func TestGenerate_TexturedVertex(t *testing.T) {
	res := generate(t, texturedGraph(t), DefaultOptions())
	vert := res.Stage(codegen.StageVertex)

	want := []string{
		"#version 330 core",
		"uniform mat4 u_mvpMatrix;",
		"layout(location = 0) in vec3 i_position;",
		"layout(location = 1) in vec2 i_texcoord_0;",
		"out vec2 v_texcoord_0;",
		"v_texcoord_0 = i_texcoord_0;",
		"gl_Position = u_mvpMatrix * vec4(i_position, 1.0);",
	}
	for _, w := range want {
		if !strings.Contains(vert, w) {
			t.Errorf("vertex source missing %q:\n%s", w, vert)
		}
	}
}

func TestGenerate_DeclarationsPrecedeBody(t *testing.T) {
	res := generate(t, texturedGraph(t), DefaultOptions())
	frag := res.Stage(codegen.StageFragment)

	// uniform, varying and output declarations all come before main.
	mainAt := strings.Index(frag, "void main()")
	for _, decl := range []string{"uniform sampler2D", "in vec2 v_texcoord_0", "out vec4 frag_color"} {
		at := strings.Index(frag, decl)
		if at < 0 || at > mainAt {
			t.Errorf("declaration %q not before main (at %d, main at %d)", decl, at, mainAt)
		}
	}
}

func TestGenerate_SharedUVSetDeclaredOnce(t *testing.T) {
	g := graph.New("twosamples")
	uv := graph.NewTexCoord("uv0", 0)
	diffuse := graph.NewImage("diffuse", "d.png", graph.TypeVec3)
	specular := graph.NewImage("specular", "s.png", graph.TypeFloat)
	scaled := graph.NewBinary("scaled", "multiply", graph.TypeVec3)
	for _, n := range []*graph.Node{uv, diffuse, specular, scaled} {
		g.AddNode(n)
	}
	g.Connect(uv, "out", diffuse, "texcoord")
	g.Connect(uv, "out", specular, "texcoord")
	g.Connect(diffuse, "out", scaled, "in1")
	g.Connect(specular, "out", scaled, "in2")
	g.AddOutput(scaled)

	res := generate(t, g, DefaultOptions())
	frag := res.Stage(codegen.StageFragment)
	vert := res.Stage(codegen.StageVertex)

	if got := strings.Count(frag, "in vec2 v_texcoord_0;"); got != 1 {
		t.Errorf("varying declared %d times in fragment stage:\n%s", got, frag)
	}
	if got := strings.Count(vert, "v_texcoord_0 = i_texcoord_0;"); got != 1 {
		t.Errorf("interpolation copy emitted %d times:\n%s", got, vert)
	}
	if !strings.Contains(frag, "uniform sampler2D u_diffuse;") ||
		!strings.Contains(frag, "uniform sampler2D u_specular;") {
		t.Errorf("per-node samplers missing:\n%s", frag)
	}
	// vec3 sample widened by the float one via implicit conversion.
	if !strings.Contains(frag, ".rgb") || !strings.Contains(frag, ".r;") {
		t.Errorf("channel selection by output type missing:\n%s", frag)
	}
}

func TestGenerate_TwoUVSets(t *testing.T) {
	g := graph.New("twouv")
	uv0 := graph.NewTexCoord("uv0", 0)
	uv1 := graph.NewTexCoord("uv1", 1)
	base := graph.NewImage("base", "b.png", graph.TypeVec4)
	detail := graph.NewImage("detail", "d.png", graph.TypeVec4)
	mixed := graph.NewMix("mixed", graph.TypeVec4)
	for _, n := range []*graph.Node{uv0, uv1, base, detail, mixed} {
		g.AddNode(n)
	}
	g.Connect(uv0, "out", base, "texcoord")
	g.Connect(uv1, "out", detail, "texcoord")
	g.Connect(base, "out", mixed, "fg")
	g.Connect(detail, "out", mixed, "bg")
	g.AddOutput(mixed)

	res := generate(t, g, DefaultOptions())
	vert := res.Stage(codegen.StageVertex)
	for _, w := range []string{
		"in vec2 i_texcoord_0;",
		"in vec2 i_texcoord_1;",
		"out vec2 v_texcoord_0;",
		"out vec2 v_texcoord_1;",
	} {
		if !strings.Contains(vert, w) {
			t.Errorf("vertex source missing %q:\n%s", w, vert)
		}
	}
	if !strings.Contains(res.Stage(codegen.StageFragment), "mix(") {
		t.Error("mix intrinsic missing from fragment stage")
	}
}

func TestGenerate_GeometricNormal(t *testing.T) {
	g := graph.New("lit")
	n, _ := graph.NewGeometric("n", "normal")
	norm := graph.NewUnary("nn", "normalize", graph.TypeVec3)
	g.AddNode(n)
	g.AddNode(norm)
	g.Connect(n, "out", norm, "in")
	g.AddOutput(norm)

	res := generate(t, g, DefaultOptions())
	frag := res.Stage(codegen.StageFragment)
	vert := res.Stage(codegen.StageVertex)

	if !strings.Contains(frag, "in vec3 v_normal;") {
		t.Errorf("normal varying missing:\n%s", frag)
	}
	if !strings.Contains(frag, "normalize(v_normal)") {
		t.Errorf("normalize call missing:\n%s", frag)
	}
	if !strings.Contains(vert, "in vec3 i_normal;") || !strings.Contains(vert, "v_normal = i_normal;") {
		t.Errorf("vertex side of the normal interpolant missing:\n%s", vert)
	}
	// The output is vec3; it must be widened into the color target.
	if !strings.Contains(frag, "frag_color = vec4(nn, 1.0);") {
		t.Errorf("vec3 output not widened:\n%s", frag)
	}
}

func TestGenerate_RemapHelperOnce(t *testing.T) {
	g := graph.New("remap")
	uv := graph.NewTexCoord("uv0", 0)
	img := graph.NewImage("height", "h.png", graph.TypeFloat)
	r1 := graph.NewRemap("r1")
	r2 := graph.NewRemap("r2")
	sum := graph.NewBinary("sum", "add", graph.TypeFloat)
	for _, n := range []*graph.Node{uv, img, r1, r2, sum} {
		g.AddNode(n)
	}
	g.Connect(uv, "out", img, "texcoord")
	g.Connect(img, "out", r1, "in")
	g.Connect(img, "out", r2, "in")
	g.Connect(r1, "out", sum, "in1")
	g.Connect(r2, "out", sum, "in2")
	g.AddOutput(sum)

	res := generate(t, g, DefaultOptions())
	frag := res.Stage(codegen.StageFragment)
	if got := strings.Count(frag, "float sg_remap(float x,"); got != 1 {
		t.Errorf("remap helper defined %d times:\n%s", got, frag)
	}
	if got := strings.Count(frag, "sg_remap("); got != 3 { // 1 definition + 2 calls
		t.Errorf("sg_remap appears %d times, want 3:\n%s", got, frag)
	}
}

func TestGenerate_ConstantFolding(t *testing.T) {
	g := graph.New("folded")
	a := graph.NewConstant("a", graph.Float(2))
	b := graph.NewConstant("b", graph.Float(3))
	sum := graph.NewBinary("sum", "multiply", graph.TypeFloat)
	for _, n := range []*graph.Node{a, b, sum} {
		g.AddNode(n)
	}
	g.Connect(a, "out", sum, "in1")
	g.Connect(b, "out", sum, "in2")
	g.AddOutput(sum)

	res := generate(t, g, DefaultOptions())
	frag := res.Stage(codegen.StageFragment)
	if !strings.Contains(frag, "float sum = 6.0;") {
		t.Errorf("constant subgraph not folded:\n%s", frag)
	}

	opts := DefaultOptions()
	opts.FoldConstants = false
	res = generate(t, g, opts)
	frag = res.Stage(codegen.StageFragment)
	if !strings.Contains(frag, "a * b") {
		t.Errorf("folding disabled but no runtime multiply:\n%s", frag)
	}
}

func TestGenerate_MultipleOutputs(t *testing.T) {
	g := graph.New("mrt")
	uv := graph.NewTexCoord("uv0", 0)
	albedo := graph.NewImage("albedo", "a.png", graph.TypeVec4)
	bump, _ := graph.NewGeometric("bump", "normal")
	for _, n := range []*graph.Node{uv, albedo, bump} {
		g.AddNode(n)
	}
	g.Connect(uv, "out", albedo, "texcoord")
	g.AddOutput(albedo)
	g.AddOutput(bump)

	res := generate(t, g, DefaultOptions())
	frag := res.Stage(codegen.StageFragment)
	for _, w := range []string{
		"layout(location = 0) out vec4 frag_color;",
		"layout(location = 1) out vec4 frag_color_1;",
		"frag_color = albedo;",
		"frag_color_1 = vec4(v_normal, 1.0);",
	} {
		if !strings.Contains(frag, w) {
			t.Errorf("fragment source missing %q:\n%s", w, frag)
		}
	}
}

func TestGenerate_KeywordNodeName(t *testing.T) {
	g := graph.New("keyword")
	c := graph.NewConstant("texture", graph.Float(1))
	s := graph.NewUnary("sin", "sin", graph.TypeFloat)
	g.AddNode(c)
	g.AddNode(s)
	g.Connect(c, "out", s, "in")
	g.AddOutput(s)

	opts := DefaultOptions()
	opts.FoldConstants = false
	res := generate(t, g, opts)
	frag := res.Stage(codegen.StageFragment)
	if !strings.Contains(frag, "float texture_ = ") {
		t.Errorf("keyword node name not escaped:\n%s", frag)
	}
	if !strings.Contains(frag, "float sin_ = sin(texture_);") {
		t.Errorf("escaped names not threaded through:\n%s", frag)
	}
}

func TestGenerate_CycleFailsWithFoldingEnabled(t *testing.T) {
	// Folding is on by default, so the cycle must be caught inside the
	// folding recursion, not only by the traversal.
	g := graph.New("cycle")
	a := graph.NewBinary("a", "add", graph.TypeFloat)
	b := graph.NewBinary("b", "add", graph.TypeFloat)
	g.AddNode(a)
	g.AddNode(b)
	g.Connect(a, "out", b, "in1")
	g.Connect(b, "out", a, "in1")
	g.AddOutput(a)

	_, err := Generate(g, DefaultOptions())
	if !errors.Is(err, codegen.ErrCyclicGraph) {
		t.Fatalf("Generate = %v, want ErrCyclicGraph", err)
	}
}

func TestGenerate_NodeNamedLikeVarying(t *testing.T) {
	// A graph node claiming an interpolant's name must lose it to the
	// interface variable instead of shadowing it.
	g := graph.New("shadow")
	uv := graph.NewTexCoord("uv0", 0)
	img := graph.NewImage("tex", "a.png", graph.TypeVec4)
	c := graph.NewConstant("v_texcoord_0", graph.Float(1))
	lit := graph.NewBinary("lit", "multiply", graph.TypeVec4)
	for _, n := range []*graph.Node{uv, img, c, lit} {
		g.AddNode(n)
	}
	g.Connect(uv, "out", img, "texcoord")
	g.Connect(img, "out", lit, "in1")
	g.Connect(c, "out", lit, "in2")
	g.AddOutput(lit)

	res := generate(t, g, DefaultOptions())
	frag := res.Stage(codegen.StageFragment)
	if !strings.Contains(frag, "in vec2 v_texcoord_0;") {
		t.Errorf("varying declaration missing:\n%s", frag)
	}
	if !strings.Contains(frag, "texture(u_tex, v_texcoord_0)") {
		t.Errorf("sampling does not read the varying:\n%s", frag)
	}
	if !strings.Contains(frag, "float v_texcoord_0_1 = 1.0;") {
		t.Errorf("colliding node not renamed:\n%s", frag)
	}
	if strings.Contains(frag, "float v_texcoord_0 = ") {
		t.Errorf("node local shadows the varying:\n%s", frag)
	}
}

func TestGenerate_ValidationFailure(t *testing.T) {
	g := graph.New("invalid")
	img := graph.NewImage("tex", "a.png", graph.TypeVec4)
	g.AddNode(img) // texcoord unconnected
	g.AddOutput(img)

	_, err := Generate(g, DefaultOptions())
	if err == nil {
		t.Fatal("Generate accepted an invalid graph")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("error %q does not mention validation", err)
	}
	if !strings.Contains(err.Error(), "texcoord") {
		t.Errorf("error %q does not name the port", err)
	}
}

func TestGenerate_UnsupportedCategory(t *testing.T) {
	g := graph.New("unsupported")
	n := &graph.Node{
		Name:     "fx",
		Category: "voronoi",
		Outputs:  []*graph.Port{{Name: "out", Type: graph.TypeVec3}},
	}
	g.AddNode(n)
	g.AddOutput(n)

	_, err := Generate(g, DefaultOptions())
	if !errors.Is(err, codegen.ErrUnsupportedNode) {
		t.Fatalf("Generate = %v, want ErrUnsupportedNode", err)
	}

	opts := DefaultOptions()
	opts.SkipUnsupported = true
	res := generate(t, g, opts)
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one substitution report", res.Warnings)
	}
	if !strings.Contains(res.Stage(codegen.StageFragment), "vec3 fx = vec3(0.0, 0.0, 0.0);") {
		t.Errorf("zero substitution missing:\n%s", res.Stage(codegen.StageFragment))
	}
}

func TestGenerate_ES(t *testing.T) {
	opts := DefaultOptions()
	opts.LangVersion = VersionES300
	res := generate(t, texturedGraph(t), opts)
	frag := res.Stage(codegen.StageFragment)
	if !strings.Contains(frag, "#version 300 es") {
		t.Errorf("ES version directive missing:\n%s", frag)
	}
	if !strings.Contains(frag, "precision highp float;") {
		t.Errorf("ES precision qualifier missing:\n%s", frag)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first := generate(t, texturedGraph(t), DefaultOptions())
	second := generate(t, texturedGraph(t), DefaultOptions())
	for _, kind := range []codegen.StageKind{codegen.StageVertex, codegen.StageFragment} {
		if first.Stage(kind) != second.Stage(kind) {
			t.Errorf("%s stage differs between identical runs", kind)
		}
	}
}

func TestVersion_String(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{Version330, "330 core"},
		{Version410, "410 core"},
		{Version450, "450 core"},
		{VersionES300, "300 es"},
		{VersionES310, "310 es"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Version.String() = %q, want %q", got, tt.want)
		}
	}
}

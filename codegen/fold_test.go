// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"strings"
	"testing"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"

	"github.com/gogpu/shadergraph/graph"
)

func TestEvalOp_Scalar(t *testing.T) {
	tests := []struct {
		cat  string
		args []graph.Value
		want float32
	}{
		{"add", []graph.Value{graph.Float(1), graph.Float(2)}, 3},
		{"subtract", []graph.Value{graph.Float(5), graph.Float(2)}, 3},
		{"multiply", []graph.Value{graph.Float(3), graph.Float(4)}, 12},
		{"divide", []graph.Value{graph.Float(8), graph.Float(2)}, 4},
		{"negate", []graph.Value{graph.Float(2)}, -2},
		{"abs", []graph.Value{graph.Float(-2)}, 2},
		{"floor", []graph.Value{graph.Float(1.7)}, 1},
		{"ceil", []graph.Value{graph.Float(1.2)}, 2},
		{"sqrt", []graph.Value{graph.Float(9)}, 3},
		{"power", []graph.Value{graph.Float(2), graph.Float(3)}, 8},
		{"min", []graph.Value{graph.Float(2), graph.Float(3)}, 2},
		{"max", []graph.Value{graph.Float(2), graph.Float(3)}, 3},
		{"distance", []graph.Value{graph.Float(1), graph.Float(4)}, 3},
		{"mix", []graph.Value{graph.Float(0), graph.Float(10), graph.Float(0.5)}, 5},
		{"clamp", []graph.Value{graph.Float(2), graph.Float(0), graph.Float(1)}, 1},
		{"clamp", []graph.Value{graph.Float(-1), graph.Float(0), graph.Float(1)}, 0},
		{"clamp", []graph.Value{graph.Float(0.25), graph.Float(0), graph.Float(1)}, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.cat, func(t *testing.T) {
			got, ok := evalOp(tt.cat, tt.args)
			if !ok {
				t.Fatalf("evalOp(%s) not folded", tt.cat)
			}
			if got.Type() != graph.TypeFloat {
				t.Fatalf("result type = %s", got.Type())
			}
			if got.Float32() != tt.want {
				t.Errorf("evalOp(%s) = %v, want %v", tt.cat, got.Float32(), tt.want)
			}
		})
	}
}

func TestEvalOp_Vector(t *testing.T) {
	u := graph.V3(ms3.Vec{X: 1, Y: 2, Z: 3})
	v := graph.V3(ms3.Vec{X: 4, Y: 5, Z: 6})

	sum, ok := evalOp("add", []graph.Value{u, v})
	if !ok {
		t.Fatal("vec3 add not folded")
	}
	if got := sum.Vec3(); got != (ms3.Vec{X: 5, Y: 7, Z: 9}) {
		t.Errorf("vec3 add = %v", got)
	}

	dot, ok := evalOp("dot", []graph.Value{u, v})
	if !ok {
		t.Fatal("vec3 dot not folded")
	}
	if dot.Type() != graph.TypeFloat || dot.Float32() != 32 {
		t.Errorf("vec3 dot = %v (%s)", dot.Float32(), dot.Type())
	}

	norm, ok := evalOp("normalize", []graph.Value{graph.V3(ms3.Vec{X: 3, Y: 0, Z: 0})})
	if !ok {
		t.Fatal("vec3 normalize not folded")
	}
	if got := norm.Vec3(); got != (ms3.Vec{X: 1, Y: 0, Z: 0}) {
		t.Errorf("vec3 normalize = %v", got)
	}

	length, ok := evalOp("length", []graph.Value{graph.V3(ms3.Vec{X: 0, Y: 4, Z: 3})})
	if !ok {
		t.Fatal("vec3 length not folded")
	}
	if length.Float32() != 5 {
		t.Errorf("vec3 length = %v", length.Float32())
	}
}

func TestEvalOp_NotFolded(t *testing.T) {
	tests := []struct {
		name string
		cat  string
		args []graph.Value
	}{
		{"divide_by_zero", "divide", []graph.Value{graph.Float(1), graph.Float(0)}},
		{"vec2_divide_zero_component", "divide", []graph.Value{graph.V2(ms2.Vec{X: 1, Y: 1}), graph.V2(ms2.Vec{X: 0, Y: 1})}},
		{"vec3_divide_zero_component", "divide", []graph.Value{graph.V3(ms3.Vec{X: 1, Y: 1, Z: 1}), graph.V3(ms3.Vec{X: 1, Y: 0, Z: 1})}},
		{"vec2_normalize_zero", "normalize", []graph.Value{graph.V2(ms2.Vec{})}},
		{"vec3_normalize_zero", "normalize", []graph.Value{graph.V3(ms3.Vec{})}},
		{"unknown_op", "blur", []graph.Value{graph.Float(1)}},
		{"bool_operand", "add", []graph.Value{graph.Bool(true), graph.Bool(false)}},
		{"mixed_types", "add", []graph.Value{graph.Float(1), graph.V3(ms3.Vec{})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := evalOp(tt.cat, tt.args); ok {
				t.Errorf("evalOp(%s) folded, must not", tt.cat)
			}
		})
	}
}

func TestFold_StopsAtNonLiteral(t *testing.T) {
	// sin(texcoord-derived value) + 1: the left arm is runtime data,
	// so nothing folds even though the right arm is literal.
	g := graph.New("partial")
	uv := graph.NewTexCoord("uv0", 0)
	ex := graph.NewExtract("u", graph.TypeVec2, 0)
	one := graph.NewConstant("one", graph.Float(1))
	sum := graph.NewBinary("sum", "add", graph.TypeFloat)
	for _, n := range []*graph.Node{uv, ex, one, sum} {
		g.AddNode(n)
	}
	g.Connect(uv, "out", ex, "in")
	g.Connect(ex, "out", sum, "in1")
	g.Connect(one, "out", sum, "in2")
	g.AddOutput(sum)

	ctx := testContext(Options{FoldConstants: true, SkipUnsupported: true})
	stage := emitFragment(t, ctx, g.Outputs)
	body := strings.Join(stage.Body(), "\n")
	// The literal arm folds to its constant, the sum stays a runtime add.
	if !strings.Contains(body, "float one = 1;") {
		t.Errorf("literal arm missing:\n%s", body)
	}
	if !strings.Contains(body, "u + one") {
		t.Errorf("runtime sum missing:\n%s", body)
	}
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"testing"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"

	"github.com/gogpu/shadergraph/graph"
)

func TestSyntax_TypeName(t *testing.T) {
	syn := syntax{}
	tests := []struct {
		typ  graph.Type
		want string
	}{
		{graph.TypeFloat, "float"},
		{graph.TypeInt, "int"},
		{graph.TypeBool, "bool"},
		{graph.TypeVec2, "vec2"},
		{graph.TypeVec3, "vec3"},
		{graph.TypeVec4, "vec4"},
		{graph.TypeMat3, "mat3"},
		{graph.TypeMat4, "mat4"},
		{graph.TypeSampler2D, "sampler2D"},
	}
	for _, tt := range tests {
		if got := syn.TypeName(tt.typ); got != tt.want {
			t.Errorf("TypeName(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSyntax_Literal(t *testing.T) {
	syn := syntax{}
	tests := []struct {
		name string
		v    graph.Value
		want string
	}{
		{"float_whole", graph.Float(1), "1.0"},
		{"float_fraction", graph.Float(0.5), "0.5"},
		{"float_negative", graph.Float(-2), "-2.0"},
		{"int", graph.Int(3), "3"},
		{"bool_true", graph.Bool(true), "true"},
		{"bool_false", graph.Bool(false), "false"},
		{"vec2", graph.V2(ms2.Vec{X: 1, Y: 0.5}), "vec2(1.0, 0.5)"},
		{"vec3", graph.V3(ms3.Vec{X: 1, Y: 2, Z: 3}), "vec3(1.0, 2.0, 3.0)"},
		{"vec4", graph.V4(0, 0, 0, 1), "vec4(0.0, 0.0, 0.0, 1.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := syn.Literal(tt.v); got != tt.want {
				t.Errorf("Literal = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyntax_Convert(t *testing.T) {
	syn := syntax{}
	tests := []struct {
		expr     string
		from, to graph.Type
		want     string
	}{
		{"x", graph.TypeFloat, graph.TypeFloat, "x"},
		{"i", graph.TypeInt, graph.TypeFloat, "float(i)"},
		{"x", graph.TypeFloat, graph.TypeVec3, "vec3(x)"},
		{"rgb", graph.TypeVec3, graph.TypeVec4, "vec4(rgb, 1.0)"},
	}
	for _, tt := range tests {
		if got := syn.Convert(tt.expr, tt.from, tt.to); got != tt.want {
			t.Errorf("Convert(%q, %s, %s) = %q, want %q", tt.expr, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSyntax_Statements(t *testing.T) {
	syn := syntax{}
	if got := syn.DeclareLocal("c", graph.TypeVec3, "vec3(1.0)"); got != "vec3 c = vec3(1.0);" {
		t.Errorf("DeclareLocal = %q", got)
	}
	if got := syn.Assign("frag_color", "c"); got != "frag_color = c;" {
		t.Errorf("Assign = %q", got)
	}
	if got := syn.Construct(graph.TypeVec2, []string{"x", "y"}); got != "vec2(x, y)" {
		t.Errorf("Construct = %q", got)
	}
	if got := syn.Swizzle("v", "xy"); got != "v.xy" {
		t.Errorf("Swizzle = %q", got)
	}
	if got := syn.Select("(a > b)", "x", "y"); got != "((a > b) ? x : y)" {
		t.Errorf("Select = %q", got)
	}
}

func TestEscapeKeyword(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"color", "color"},
		{"texture", "texture_"},
		{"float", "float_"},
		{"main", "main_"},
		{"gl_Position", "sg_Position"},
		{"__x", "sg__x"},
	}
	for _, tt := range tests {
		if got := escapeKeyword(tt.in); got != tt.want {
			t.Errorf("escapeKeyword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// syntax implements codegen.Syntax with GLSL spellings.
type syntax struct{}

func (syntax) TypeName(t graph.Type) string {
	switch t {
	case graph.TypeFloat:
		return "float"
	case graph.TypeInt:
		return "int"
	case graph.TypeBool:
		return "bool"
	case graph.TypeVec2:
		return "vec2"
	case graph.TypeVec3:
		return "vec3"
	case graph.TypeVec4:
		return "vec4"
	case graph.TypeMat3:
		return "mat3"
	case graph.TypeMat4:
		return "mat4"
	case graph.TypeSampler2D:
		return "sampler2D"
	default:
		return "void"
	}
}

func (s syntax) Literal(v graph.Value) string {
	switch v.Type() {
	case graph.TypeFloat:
		return formatFloat(v.Float32())
	case graph.TypeInt:
		return strconv.Itoa(v.IntVal())
	case graph.TypeBool:
		if v.BoolVal() {
			return "true"
		}
		return "false"
	case graph.TypeVec2, graph.TypeVec3, graph.TypeVec4, graph.TypeMat3, graph.TypeMat4:
		return s.TypeName(v.Type()) + "(" + formatFloats(v.Floats()) + ")"
	case graph.TypeString, graph.TypeFilename:
		return strconv.Quote(v.StringVal())
	default:
		return "0.0"
	}
}

func (s syntax) DeclareLocal(name string, t graph.Type, expr string) string {
	return s.TypeName(t) + " " + name + " = " + expr + ";"
}

func (syntax) Assign(lhs, expr string) string {
	return lhs + " = " + expr + ";"
}

func (s syntax) Construct(t graph.Type, args []string) string {
	return s.TypeName(t) + "(" + strings.Join(args, ", ") + ")"
}

func (s syntax) Convert(expr string, from, to graph.Type) string {
	switch {
	case from == to:
		return expr
	case from == graph.TypeInt && to == graph.TypeFloat:
		return "float(" + expr + ")"
	case from == graph.TypeFloat && (to == graph.TypeVec2 || to == graph.TypeVec3 || to == graph.TypeVec4):
		return s.TypeName(to) + "(" + expr + ")"
	case from == graph.TypeVec3 && to == graph.TypeVec4:
		return "vec4(" + expr + ", 1.0)"
	default:
		return expr
	}
}

func (syntax) Swizzle(expr, comps string) string {
	return expr + "." + comps
}

func (syntax) Select(cond, then, els string) string {
	return "(" + cond + " ? " + then + " : " + els + ")"
}

// formatFloat renders a float32 as a GLSL float literal with an
// explicit decimal point, shortest round-trip representation.
func formatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatFloats(vs []float32) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatFloat(v))
	}
	return b.String()
}

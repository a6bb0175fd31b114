// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

// Type is the semantic type of a port or value.
//
// The set is fixed: backends map each semantic type to a concrete
// spelling in the target language (e.g. Vec3 -> "vec3" in GLSL,
// "vec3<f32>" in WGSL).
type Type uint8

const (
	// TypeInvalid is the zero value and never valid on a port.
	TypeInvalid Type = iota
	TypeFloat
	TypeInt
	TypeBool
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat3
	TypeMat4
	TypeString
	TypeFilename
	TypeSampler2D
)

// String returns the semantic type name.
func (t Type) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	case TypeMat3:
		return "mat3"
	case TypeMat4:
		return "mat4"
	case TypeString:
		return "string"
	case TypeFilename:
		return "filename"
	case TypeSampler2D:
		return "sampler2D"
	default:
		return "invalid"
	}
}

// Components returns the number of scalar components of the type,
// or 0 for non-numeric types.
func (t Type) Components() int {
	switch t {
	case TypeFloat, TypeInt, TypeBool:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// IsNumeric reports whether the type participates in arithmetic.
func (t Type) IsNumeric() bool {
	return t.Components() > 0
}

// implicitConversions is the fixed table of allowed widening
// conversions from a source type to a destination type. Anything not
// listed (and not an exact match) is a type mismatch.
var implicitConversions = map[[2]Type]struct{}{
	{TypeInt, TypeFloat}:       {}, // scalar promotion
	{TypeFloat, TypeVec2}:      {}, // scalar broadcast
	{TypeFloat, TypeVec3}:      {},
	{TypeFloat, TypeVec4}:      {},
	{TypeVec3, TypeVec4}:       {}, // point extension, w=1
	{TypeString, TypeFilename}: {},
}

// ConvertibleTo reports whether a value of type t may be bound to a
// port of type dst, either exactly or via an implicit widening
// conversion.
func (t Type) ConvertibleTo(dst Type) bool {
	if t == dst {
		return true
	}
	_, ok := implicitConversions[[2]Type{t, dst}]
	return ok
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Value is a literal held by an unconnected input port or produced by
// constant folding. It is a tagged union over the numeric and string
// types of the graph type system.
type Value struct {
	typ Type

	f32 float32
	i   int
	b   bool
	v2  ms2.Vec
	v3  ms3.Vec
	v4  [4]float32
	m3  ms3.Mat3
	m4  ms3.Mat4
	s   string
}

// Float returns a float literal value.
func Float(v float32) Value { return Value{typ: TypeFloat, f32: v} }

// Int returns an integer literal value.
func Int(v int) Value { return Value{typ: TypeInt, i: v} }

// Bool returns a boolean literal value.
func Bool(v bool) Value { return Value{typ: TypeBool, b: v} }

// V2 returns a 2-vector literal value.
func V2(v ms2.Vec) Value { return Value{typ: TypeVec2, v2: v} }

// V3 returns a 3-vector literal value.
func V3(v ms3.Vec) Value { return Value{typ: TypeVec3, v3: v} }

// V4 returns a 4-vector literal value.
func V4(x, y, z, w float32) Value { return Value{typ: TypeVec4, v4: [4]float32{x, y, z, w}} }

// M3 returns a 3x3 matrix literal value.
func M3(m ms3.Mat3) Value { return Value{typ: TypeMat3, m3: m} }

// M4 returns a 4x4 matrix literal value.
func M4(m ms3.Mat4) Value { return Value{typ: TypeMat4, m4: m} }

// Str returns a string literal value.
func Str(v string) Value { return Value{typ: TypeString, s: v} }

// Filename returns a filename literal value.
func Filename(v string) Value { return Value{typ: TypeFilename, s: v} }

// Type returns the semantic type of the value. The zero Value has
// TypeInvalid and represents "no default".
func (v Value) Type() Type { return v.typ }

// IsZero reports whether the value is absent (no literal set).
func (v Value) IsZero() bool { return v.typ == TypeInvalid }

// Float32 returns the scalar payload. Valid for TypeFloat, TypeInt
// and TypeBool (0 or 1).
func (v Value) Float32() float32 {
	switch v.typ {
	case TypeFloat:
		return v.f32
	case TypeInt:
		return float32(v.i)
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	}
	return 0
}

// IntVal returns the integer payload.
func (v Value) IntVal() int { return v.i }

// BoolVal returns the boolean payload.
func (v Value) BoolVal() bool { return v.b }

// Vec2 returns the 2-vector payload.
func (v Value) Vec2() ms2.Vec { return v.v2 }

// Vec3 returns the 3-vector payload.
func (v Value) Vec3() ms3.Vec { return v.v3 }

// Vec4 returns the 4-vector payload.
func (v Value) Vec4() [4]float32 { return v.v4 }

// Mat3 returns the 3x3 matrix payload.
func (v Value) Mat3() ms3.Mat3 { return v.m3 }

// Mat4 returns the 4x4 matrix payload.
func (v Value) Mat4() ms3.Mat4 { return v.m4 }

// StringVal returns the string payload of TypeString or TypeFilename.
func (v Value) StringVal() string { return v.s }

// Floats returns the scalar components of a numeric value in
// declaration order. Matrices are returned column-major as stored by
// the target APIs.
func (v Value) Floats() []float32 {
	switch v.typ {
	case TypeFloat, TypeInt, TypeBool:
		return []float32{v.Float32()}
	case TypeVec2:
		arr := v.v2.Array()
		return arr[:]
	case TypeVec3:
		arr := v.v3.Array()
		return arr[:]
	case TypeVec4:
		return v.v4[:]
	case TypeMat3:
		arr := v.m3.Array()
		return columnMajor(arr[:], 3)
	case TypeMat4:
		arr := v.m4.Array()
		return columnMajor(arr[:], 4)
	default:
		return nil
	}
}

// columnMajor reorders a row-major square matrix array to column
// major, the layout shading languages construct matrices in.
func columnMajor(arr []float32, n int) []float32 {
	out := make([]float32, len(arr))
	k := 0
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			out[k] = arr[i*n+j]
			k++
		}
	}
	return out
}

// Convert returns the value widened to dst according to the implicit
// conversion table. Converting to the value's own type is the
// identity.
func (v Value) Convert(dst Type) (Value, error) {
	if v.typ == dst {
		return v, nil
	}
	if !v.typ.ConvertibleTo(dst) {
		return Value{}, fmt.Errorf("cannot convert %s to %s", v.typ, dst)
	}
	switch {
	case v.typ == TypeInt && dst == TypeFloat:
		return Float(float32(v.i)), nil
	case v.typ == TypeFloat && dst == TypeVec2:
		return V2(ms2.Vec{X: v.f32, Y: v.f32}), nil
	case v.typ == TypeFloat && dst == TypeVec3:
		return V3(ms3.Vec{X: v.f32, Y: v.f32, Z: v.f32}), nil
	case v.typ == TypeFloat && dst == TypeVec4:
		return V4(v.f32, v.f32, v.f32, v.f32), nil
	case v.typ == TypeVec3 && dst == TypeVec4:
		return V4(v.v3.X, v.v3.Y, v.v3.Z, 1), nil
	case v.typ == TypeString && dst == TypeFilename:
		return Filename(v.s), nil
	}
	return Value{}, fmt.Errorf("cannot convert %s to %s", v.typ, dst)
}

// Zero returns the zero literal of a numeric or string type. Used as
// the fallback when a backend substitutes for an unsupported node.
func Zero(t Type) Value {
	switch t {
	case TypeFloat:
		return Float(0)
	case TypeInt:
		return Int(0)
	case TypeBool:
		return Bool(false)
	case TypeVec2:
		return V2(ms2.Vec{})
	case TypeVec3:
		return V3(ms3.Vec{})
	case TypeVec4:
		return V4(0, 0, 0, 0)
	case TypeMat3:
		return M3(ms3.Mat3{})
	case TypeMat4:
		return M4(ms3.Mat4{})
	case TypeString:
		return Str("")
	case TypeFilename:
		return Filename("")
	default:
		return Value{}
	}
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"github.com/soypat/geometry/ms3"
)

// Node constructors for the built-in categories. They pin down the
// port conventions the backend implementations expect: authoring
// layers and tests build graphs through these instead of assembling
// ports by hand.

// NewConstant returns a constant node carrying the literal v.
func NewConstant(name string, v Value) *Node {
	return &Node{
		Name:     name,
		Category: "constant",
		Inputs:   []*Port{{Name: "value", Type: v.Type(), Default: v}},
		Outputs:  []*Port{{Name: "out", Type: v.Type()}},
	}
}

// NewUnary returns a one-input math node (sin, abs, normalize, ...)
// operating on type t.
func NewUnary(name, category string, t Type) *Node {
	return &Node{
		Name:     name,
		Category: category,
		Inputs:   []*Port{{Name: "in", Type: t, Default: Zero(t)}},
		Outputs:  []*Port{{Name: "out", Type: t}},
	}
}

// NewReduce returns a one-input node collapsing a vector to a float
// (length).
func NewReduce(name, category string, t Type) *Node {
	return &Node{
		Name:     name,
		Category: category,
		Inputs:   []*Port{{Name: "in", Type: t, Default: Zero(t)}},
		Outputs:  []*Port{{Name: "out", Type: TypeFloat}},
	}
}

// NewBinary returns a two-input math node (add, multiply, power, ...)
// with both operands and the result of type t.
func NewBinary(name, category string, t Type) *Node {
	return &Node{
		Name:     name,
		Category: category,
		Inputs: []*Port{
			{Name: "in1", Type: t, Default: Zero(t)},
			{Name: "in2", Type: t, Default: Zero(t)},
		},
		Outputs: []*Port{{Name: "out", Type: t}},
	}
}

// NewBinaryReduce returns a two-input node collapsing vectors to a
// float (dot, distance).
func NewBinaryReduce(name, category string, t Type) *Node {
	return &Node{
		Name:     name,
		Category: category,
		Inputs: []*Port{
			{Name: "in1", Type: t, Default: Zero(t)},
			{Name: "in2", Type: t, Default: Zero(t)},
		},
		Outputs: []*Port{{Name: "out", Type: TypeFloat}},
	}
}

// NewMix returns a linear-interpolation node over type t with a
// scalar blend factor.
func NewMix(name string, t Type) *Node {
	return &Node{
		Name:     name,
		Category: "mix",
		Inputs: []*Port{
			{Name: "fg", Type: t, Default: Zero(t)},
			{Name: "bg", Type: t, Default: Zero(t)},
			{Name: "mix", Type: TypeFloat, Default: Float(0)},
		},
		Outputs: []*Port{{Name: "out", Type: t}},
	}
}

// NewClamp returns a clamp node over type t. All three ports share t;
// WGSL requires uniform operand types.
func NewClamp(name string, t Type) *Node {
	lo, _ := Float(0).Convert(t)
	hi, _ := Float(1).Convert(t)
	return &Node{
		Name:     name,
		Category: "clamp",
		Inputs: []*Port{
			{Name: "in", Type: t, Default: Zero(t)},
			{Name: "low", Type: t, Default: lo},
			{Name: "high", Type: t, Default: hi},
		},
		Outputs: []*Port{{Name: "out", Type: t}},
	}
}

// NewSmoothstep returns a smoothstep node over type t.
func NewSmoothstep(name string, t Type) *Node {
	lo, _ := Float(0).Convert(t)
	hi, _ := Float(1).Convert(t)
	return &Node{
		Name:     name,
		Category: "smoothstep",
		Inputs: []*Port{
			{Name: "low", Type: t, Default: lo},
			{Name: "high", Type: t, Default: hi},
			{Name: "in", Type: t, Default: Zero(t)},
		},
		Outputs: []*Port{{Name: "out", Type: t}},
	}
}

// NewTexCoord returns a texture-coordinate input node for the given
// UV set index.
func NewTexCoord(name string, index int) *Node {
	return &Node{
		Name:     name,
		Category: "texcoord",
		Inputs:   []*Port{{Name: "index", Type: TypeInt, Default: Int(index)}},
		Outputs:  []*Port{{Name: "out", Type: TypeVec2}},
	}
}

// NewGeometric returns a geometric input node: position, normal,
// tangent, bitangent or geomcolor.
func NewGeometric(name, category string) (*Node, error) {
	var t Type
	switch category {
	case "position", "normal", "tangent", "bitangent":
		t = TypeVec3
	case "geomcolor":
		t = TypeVec4
	default:
		return nil, fmt.Errorf("unknown geometric category %q", category)
	}
	return &Node{
		Name:     name,
		Category: category,
		Outputs:  []*Port{{Name: "out", Type: t}},
	}, nil
}

// NewImage returns a 2D texture sampling node. The texcoord input is
// required: connect a texcoord node or another vec2 producer.
func NewImage(name, file string, out Type) *Node {
	return &Node{
		Name:     name,
		Category: "image",
		Inputs: []*Port{
			{Name: "file", Type: TypeFilename, Default: Filename(file)},
			{Name: "texcoord", Type: TypeVec2},
		},
		Outputs: []*Port{{Name: "out", Type: out}},
	}
}

// NewNormalMap returns a tangent-space normal decoding node.
func NewNormalMap(name string) *Node {
	return &Node{
		Name:     name,
		Category: "normalmap",
		// Default is the flat-normal texel color (0.5, 0.5, 1).
		Inputs:  []*Port{{Name: "in", Type: TypeVec3, Default: V3(ms3.Vec{X: 0.5, Y: 0.5, Z: 1})}},
		Outputs: []*Port{{Name: "out", Type: TypeVec3}},
	}
}

// NewCombine returns a node assembling a vec2/vec3/vec4 from float
// inputs. n must be 2, 3 or 4.
func NewCombine(name string, n int) (*Node, error) {
	var out Type
	switch n {
	case 2:
		out = TypeVec2
	case 3:
		out = TypeVec3
	case 4:
		out = TypeVec4
	default:
		return nil, fmt.Errorf("combine width must be 2, 3 or 4, got %d", n)
	}
	node := &Node{
		Name:     name,
		Category: fmt.Sprintf("combine%d", n),
		Outputs:  []*Port{{Name: "out", Type: out}},
	}
	for i := 1; i <= n; i++ {
		node.Inputs = append(node.Inputs, &Port{
			Name:    fmt.Sprintf("in%d", i),
			Type:    TypeFloat,
			Default: Float(0),
		})
	}
	return node, nil
}

// NewExtract returns a node selecting component index from a vector
// of type t.
func NewExtract(name string, t Type, index int) *Node {
	return &Node{
		Name:     name,
		Category: "extract",
		Inputs: []*Port{
			{Name: "in", Type: t, Default: Zero(t)},
			{Name: "index", Type: TypeInt, Default: Int(index)},
		},
		Outputs: []*Port{{Name: "out", Type: TypeFloat}},
	}
}

// NewSwizzle returns a node reordering components of a value of type
// t with the channel mask (e.g. "xxy"), producing out.
func NewSwizzle(name string, t Type, channels string, out Type) *Node {
	return &Node{
		Name:     name,
		Category: "swizzle",
		Inputs: []*Port{
			{Name: "in", Type: t, Default: Zero(t)},
			{Name: "channels", Type: TypeString, Default: Str(channels)},
		},
		Outputs: []*Port{{Name: "out", Type: out}},
	}
}

// NewRemap returns a float range-remapping node.
func NewRemap(name string) *Node {
	return &Node{
		Name:     name,
		Category: "remap",
		Inputs: []*Port{
			{Name: "in", Type: TypeFloat, Default: Float(0)},
			{Name: "inlow", Type: TypeFloat, Default: Float(0)},
			{Name: "inhigh", Type: TypeFloat, Default: Float(1)},
			{Name: "outlow", Type: TypeFloat, Default: Float(0)},
			{Name: "outhigh", Type: TypeFloat, Default: Float(1)},
		},
		Outputs: []*Port{{Name: "out", Type: TypeFloat}},
	}
}

// NewIfGreater returns a conditional node selecting in1 when
// value1 > value2, else in2.
func NewIfGreater(name string, t Type) *Node {
	return &Node{
		Name:     name,
		Category: "ifgreater",
		Inputs: []*Port{
			{Name: "value1", Type: TypeFloat, Default: Float(0)},
			{Name: "value2", Type: TypeFloat, Default: Float(0)},
			{Name: "in1", Type: t, Default: Zero(t)},
			{Name: "in2", Type: t, Default: Zero(t)},
		},
		Outputs: []*Port{{Name: "out", Type: t}},
	}
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"strings"
	"testing"
)

func TestGraph_AddNode(t *testing.T) {
	g := New("test")
	n := NewConstant("c", Float(1))
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if g.Node("c") != n {
		t.Error("Node(\"c\") did not return the added node")
	}
	if err := g.AddNode(NewConstant("c", Float(2))); err == nil {
		t.Error("duplicate node name must be rejected")
	}
	if err := g.AddNode(&Node{Category: "constant"}); err == nil {
		t.Error("empty node name must be rejected")
	}
	if got := len(g.Nodes()); got != 1 {
		t.Errorf("len(Nodes()) = %d, want 1", got)
	}
}

func TestGraph_Connect(t *testing.T) {
	g := New("test")
	uv := NewTexCoord("uv0", 0)
	img := NewImage("tex", "a.png", TypeVec4)
	add := NewBinary("sum", "add", TypeFloat)
	for _, n := range []*Node{uv, img, add} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.Name, err)
		}
	}

	if err := g.Connect(uv, "out", img, "texcoord"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	in := img.Input("texcoord")
	if !in.Connected() {
		t.Fatal("texcoord port not marked connected")
	}
	if in.Conn.Node != uv || in.Conn.Port != "out" {
		t.Errorf("connection = %s.%s, want uv0.out", in.Conn.Node.Name, in.Conn.Port)
	}

	if err := g.Connect(uv, "missing", img, "texcoord"); err == nil {
		t.Error("unknown output port must be rejected")
	}
	if err := g.Connect(uv, "out", img, "missing"); err == nil {
		t.Error("unknown input port must be rejected")
	}
	err := g.Connect(uv, "out", add, "in1")
	if err == nil {
		t.Fatal("vec2 into float port must be rejected")
	}
	if !strings.Contains(err.Error(), "type mismatch") {
		t.Errorf("error %q does not mention the type mismatch", err)
	}
}

func TestGraph_ConnectImplicitConversion(t *testing.T) {
	g := New("test")
	f := NewConstant("f", Float(0.5))
	scale := NewBinary("scale", "multiply", TypeVec3)
	g.AddNode(f)
	g.AddNode(scale)
	// float widens to vec3
	if err := g.Connect(f, "out", scale, "in1"); err != nil {
		t.Fatalf("Connect with implicit widening: %v", err)
	}
}

func TestPort_Satisfied(t *testing.T) {
	img := NewImage("tex", "a.png", TypeVec4)
	if img.Input("texcoord").Satisfied() {
		t.Error("unconnected required port must not be satisfied")
	}
	if !img.Input("file").Satisfied() {
		t.Error("defaulted port must be satisfied")
	}
}

func TestNode_OutputType(t *testing.T) {
	if got := NewTexCoord("uv", 0).OutputType(); got != TypeVec2 {
		t.Errorf("texcoord OutputType = %s, want vec2", got)
	}
	if got := (&Node{Name: "n"}).OutputType(); got != TypeInvalid {
		t.Errorf("no-output node OutputType = %s, want invalid", got)
	}
}

func TestNewGeometric(t *testing.T) {
	tests := []struct {
		category string
		typ      Type
	}{
		{"position", TypeVec3},
		{"normal", TypeVec3},
		{"tangent", TypeVec3},
		{"bitangent", TypeVec3},
		{"geomcolor", TypeVec4},
	}
	for _, tt := range tests {
		n, err := NewGeometric("n", tt.category)
		if err != nil {
			t.Fatalf("NewGeometric(%s): %v", tt.category, err)
		}
		if n.OutputType() != tt.typ {
			t.Errorf("%s output = %s, want %s", tt.category, n.OutputType(), tt.typ)
		}
	}
	if _, err := NewGeometric("n", "curvature"); err == nil {
		t.Error("unknown geometric category must be rejected")
	}
}

func TestNewCombine(t *testing.T) {
	for n, want := range map[int]Type{2: TypeVec2, 3: TypeVec3, 4: TypeVec4} {
		node, err := NewCombine("c", n)
		if err != nil {
			t.Fatalf("NewCombine(%d): %v", n, err)
		}
		if node.OutputType() != want {
			t.Errorf("combine%d output = %s, want %s", n, node.OutputType(), want)
		}
		if len(node.Inputs) != n {
			t.Errorf("combine%d has %d inputs", n, len(node.Inputs))
		}
	}
	if _, err := NewCombine("c", 5); err == nil {
		t.Error("combine width 5 must be rejected")
	}
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"testing"

	"github.com/gogpu/shadergraph/graph"
)

func TestBlock_DeclareOnce(t *testing.T) {
	var b Block
	if !b.Declare(Variable{Name: "u_tex", Type: graph.TypeSampler2D}) {
		t.Fatal("first Declare returned false")
	}
	if b.Declare(Variable{Name: "u_tex", Type: graph.TypeSampler2D}) {
		t.Error("second Declare of the same name returned true")
	}
	if !b.Has("u_tex") {
		t.Error("Has(\"u_tex\") = false")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBlock_Order(t *testing.T) {
	var b Block
	names := []string{"c", "a", "b"}
	for _, name := range names {
		b.Declare(Variable{Name: name, Type: graph.TypeFloat})
	}
	vars := b.Vars()
	for i, name := range names {
		if vars[i].Name != name {
			t.Errorf("Vars()[%d] = %q, want %q (declaration order)", i, vars[i].Name, name)
		}
	}
}

func TestShaderStage_AddFunctionOnce(t *testing.T) {
	s := NewStage(StageFragment)
	s.AddFunction("helper", "float helper() { return 1.0; }")
	s.AddFunction("helper", "different body")
	fns := s.Functions()
	if len(fns) != 1 {
		t.Fatalf("Functions() has %d entries, want 1", len(fns))
	}
	if fns[0] != "float helper() { return 1.0; }" {
		t.Error("later registration replaced the original definition")
	}
}

func TestShaderStage_OutputVar(t *testing.T) {
	s := NewStage(StageFragment)
	n := graph.NewConstant("c", graph.Float(1))
	if _, ok := s.OutputVar(n, "out"); ok {
		t.Fatal("OutputVar reported a binding before SetOutputVar")
	}
	s.SetOutputVar(n, "out", "c_0")
	name, ok := s.OutputVar(n, "out")
	if !ok || name != "c_0" {
		t.Errorf("OutputVar = %q, %v, want c_0, true", name, ok)
	}
}

func TestShaderStage_Emitted(t *testing.T) {
	s := NewStage(StageVertex)
	n := graph.NewConstant("c", graph.Float(1))
	if s.Emitted(n) {
		t.Fatal("fresh stage reports node emitted")
	}
	s.MarkEmitted(n)
	if !s.Emitted(n) {
		t.Error("MarkEmitted did not take")
	}
}

func TestShader_Stage(t *testing.T) {
	sh := NewShader("m", StageVertex, StageFragment)
	if got := len(sh.Stages()); got != 2 {
		t.Fatalf("Stages() has %d entries, want 2", got)
	}
	if vs := sh.Stage(StageVertex); vs == nil || vs.Kind != StageVertex {
		t.Error("Stage(StageVertex) wrong")
	}
	if fs := sh.Stage(StageFragment); fs == nil || fs.Kind != StageFragment {
		t.Error("Stage(StageFragment) wrong")
	}
	vertexOnly := NewShader("v", StageVertex)
	if vertexOnly.Stage(StageFragment) != nil {
		t.Error("Stage returned a stage the shader does not have")
	}
}

func TestStageKind_String(t *testing.T) {
	if StageVertex.String() != "vertex" || StageFragment.String() != "fragment" {
		t.Error("stage kind names wrong")
	}
}

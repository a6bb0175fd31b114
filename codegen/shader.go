// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"github.com/gogpu/shadergraph/graph"
)

// StageKind identifies a shader pipeline stage.
type StageKind uint8

const (
	StageVertex StageKind = iota
	StageFragment
)

// String returns the stage name.
func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Qualifier classifies a declared stage variable.
type Qualifier uint8

const (
	// QualUniform is a per-draw constant bound by the host.
	QualUniform Qualifier = iota
	// QualInput is a stage input: a vertex attribute in the vertex
	// stage, an interpolated varying in the fragment stage.
	QualInput
	// QualOutput is a stage output: a varying written by the vertex
	// stage, the color target written by the fragment stage.
	QualOutput
)

// Variable is one declaration in a stage block.
type Variable struct {
	Name string
	Type graph.Type

	// Semantic tags the variable's role ("position", "texcoord_0",
	// "color") so backends can assign locations deterministically.
	Semantic string
}

// Block is an ordered, declare-once collection of variables.
// Redeclaring a name is a silent no-op so node implementations stay
// idempotent per stage without bookkeeping of their own.
type Block struct {
	vars  []Variable
	index map[string]int
}

// Declare appends the variable unless a variable of that name is
// already present. It reports whether the declaration was added.
func (b *Block) Declare(v Variable) bool {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if _, dup := b.index[v.Name]; dup {
		return false
	}
	b.index[v.Name] = len(b.vars)
	b.vars = append(b.vars, v)
	return true
}

// Has reports whether a variable of the given name is declared.
func (b *Block) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Vars returns the declarations in declaration order.
func (b *Block) Vars() []Variable { return b.vars }

// Len returns the number of declarations.
func (b *Block) Len() int { return len(b.vars) }

// outRef identifies one output port of one node.
type outRef struct {
	node *graph.Node
	port string
}

// ShaderStage is the mutable output model of one pipeline stage:
// declaration blocks plus an ordered function body that node
// implementations append statements to in traversal order.
//
// Serialization order is fixed by the backend: uniforms, inputs,
// outputs, helper functions, then the body. Declarations therefore
// always precede use regardless of emission call order.
type ShaderStage struct {
	Kind StageKind

	Uniforms Block
	Inputs   Block
	Outputs  Block

	funcNames map[string]struct{}
	funcs     []string

	body []string

	emitted map[*graph.Node]struct{}
	outVars map[outRef]string
}

// NewStage returns an empty stage of the given kind.
func NewStage(kind StageKind) *ShaderStage {
	return &ShaderStage{
		Kind:      kind,
		funcNames: make(map[string]struct{}),
		emitted:   make(map[*graph.Node]struct{}),
		outVars:   make(map[outRef]string),
	}
}

// AppendBody appends one statement to the stage function body.
func (s *ShaderStage) AppendBody(stmt string) {
	s.body = append(s.body, stmt)
}

// Body returns the body statements in emission order.
func (s *ShaderStage) Body() []string { return s.body }

// AddFunction registers a helper function definition once per stage.
// Later registrations under the same name are ignored.
func (s *ShaderStage) AddFunction(name, source string) {
	if _, dup := s.funcNames[name]; dup {
		return
	}
	s.funcNames[name] = struct{}{}
	s.funcs = append(s.funcs, source)
}

// Functions returns helper function definitions in registration order.
func (s *ShaderStage) Functions() []string { return s.funcs }

// Emitted reports whether the node's function call has already been
// emitted into this stage.
func (s *ShaderStage) Emitted(n *graph.Node) bool {
	_, ok := s.emitted[n]
	return ok
}

// MarkEmitted records that the node has been emitted into this stage.
func (s *ShaderStage) MarkEmitted(n *graph.Node) {
	s.emitted[n] = struct{}{}
}

// SetOutputVar records the stage-local variable name holding the
// value of the node's output port.
func (s *ShaderStage) SetOutputVar(n *graph.Node, port, name string) {
	s.outVars[outRef{n, port}] = name
}

// OutputVar returns the variable name holding the node's output port
// value in this stage.
func (s *ShaderStage) OutputVar(n *graph.Node, port string) (string, bool) {
	name, ok := s.outVars[outRef{n, port}]
	return name, ok
}

// Shader is the output artifact of one generation run: a named
// program with ordered stages. It is created at the start of a run,
// mutated by node implementations as traversal proceeds, and
// serialized by the backend when the run completes. It has no
// concurrent writers.
type Shader struct {
	Name   string
	stages []*ShaderStage
}

// NewShader returns a shader with the given stages, in pipeline order.
func NewShader(name string, kinds ...StageKind) *Shader {
	sh := &Shader{Name: name}
	for _, k := range kinds {
		sh.stages = append(sh.stages, NewStage(k))
	}
	return sh
}

// Stage returns the stage of the given kind, or nil. Node
// implementations use this to reach across stages, e.g. a fragment
// texcoord declaring its interpolant in the vertex stage.
func (sh *Shader) Stage(kind StageKind) *ShaderStage {
	for _, s := range sh.stages {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

// Stages returns the stages in pipeline order.
func (sh *Shader) Stages() []*ShaderStage { return sh.stages }

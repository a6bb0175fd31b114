// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"

	"github.com/gogpu/shadergraph/graph"
)

// visitState tracks traversal progress per node within one stage.
type visitState uint8

const (
	stateUnvisited visitState = iota
	stateInProgress
	stateEmitted
)

// scheduler walks one stage of the graph in dependency order.
type scheduler struct {
	ctx   *Context
	reg   *Registry
	sh    *Shader
	stage *ShaderStage

	state   map[*graph.Node]visitState
	folded  map[*graph.Node]graph.Value
	folding map[*graph.Node]struct{}
}

// EmitStage runs a reverse-topological traversal from the given root
// nodes, invoking each reachable node's implementation exactly once
// in this stage: producers are emitted before consumers, fan-out is
// memoized, and re-entering an in-progress node fails with
// ErrCyclicGraph. The first fatal error aborts the stage, since
// partially emitted source is not a useful artifact.
func EmitStage(ctx *Context, reg *Registry, sh *Shader, stage *ShaderStage, roots []*graph.Node) error {
	s := &scheduler{
		ctx:    ctx,
		reg:    reg,
		sh:     sh,
		stage:  stage,
		state:   make(map[*graph.Node]visitState),
		folded:  make(map[*graph.Node]graph.Value),
		folding: make(map[*graph.Node]struct{}),
	}
	for _, root := range roots {
		if err := s.visit(root); err != nil {
			return err
		}
	}
	return nil
}

func (s *scheduler) visit(n *graph.Node) error {
	if s.stage.Emitted(n) {
		return nil
	}
	switch s.state[n] {
	case stateEmitted:
		return nil
	case stateInProgress:
		return fmt.Errorf("%w: node %s participates in a connection cycle", ErrCyclicGraph, n.Name)
	}
	s.state[n] = stateInProgress

	// Constant subgraphs collapse to a single literal declaration.
	if s.ctx.Options.FoldConstants {
		v, ok, err := s.foldValue(n)
		if err != nil {
			return err
		}
		if ok {
			if err := s.emitFolded(n, v); err != nil {
				return err
			}
			s.state[n] = stateEmitted
			return nil
		}
	}

	// Producers before consumers, in declared port order.
	for _, in := range n.Inputs {
		if in.Conn != nil {
			if err := s.visit(in.Conn.Node); err != nil {
				return err
			}
			continue
		}
		if in.Default.IsZero() {
			return fmt.Errorf("%w: node %s port %s", ErrMissingInput, n.Name, in.Name)
		}
	}

	impl, err := s.reg.Lookup(n)
	if err != nil {
		if !s.ctx.Options.SkipUnsupported {
			return err
		}
		s.ctx.Warnf("substituting zero constant for node %s: no %q implementation for target %q",
			n.Name, n.Category, s.reg.Target())
		if err := s.emitFolded(n, graph.Zero(n.OutputType())); err != nil {
			return err
		}
		s.state[n] = stateEmitted
		return nil
	}

	if err := impl.CreateVariables(n, s.ctx, s.sh, s.stage); err != nil {
		return fmt.Errorf("node %s: create variables: %w", n.Name, err)
	}
	if err := impl.EmitFunctionCall(n, s.ctx, s.stage); err != nil {
		return fmt.Errorf("node %s: emit function call: %w", n.Name, err)
	}

	s.stage.MarkEmitted(n)
	s.state[n] = stateEmitted
	return nil
}

// emitFolded declares the node's output as a literal local.
func (s *scheduler) emitFolded(n *graph.Node, v graph.Value) error {
	if len(n.Outputs) != 1 {
		return fmt.Errorf("node %s: cannot fold node with %d outputs", n.Name, len(n.Outputs))
	}
	out := n.Outputs[0]
	name := s.ctx.Namer.Call(n.Name)
	s.stage.AppendBody(s.ctx.Syntax.DeclareLocal(name, out.Type, s.ctx.Syntax.Literal(v)))
	s.stage.SetOutputVar(n, out.Name, name)
	s.stage.MarkEmitted(n)
	return nil
}

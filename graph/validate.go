// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import "fmt"

// ValidationError describes one problem found while validating a
// graph before code generation.
type ValidationError struct {
	Message string
	// Optional context
	Node string
	Port string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Node != "" {
		if e.Port != "" {
			return fmt.Sprintf("node %s, port %s: %s", e.Node, e.Port, e.Message)
		}
		return fmt.Sprintf("node %s: %s", e.Node, e.Message)
	}
	return e.Message
}

// Validate checks the graph for problems detectable without running
// code generation: type mismatches on connections, required inputs
// that are neither connected nor defaulted, defaults of the wrong
// type, connections to ports that no longer exist, and graphs with no
// designated output. All errors are collected; generation should not
// start unless the returned slice is empty.
//
// Cycles are not detected here. The traversal scheduler detects them
// with its in-progress marking and fails fast, so validation stays
// linear in graph size.
func Validate(g *Graph) []ValidationError {
	if g == nil {
		return []ValidationError{{Message: "graph is nil"}}
	}
	var errs []ValidationError
	if len(g.Outputs) == 0 {
		errs = append(errs, ValidationError{Message: fmt.Sprintf("graph %q has no designated output node", g.Name)})
	}
	for _, n := range g.nodes {
		if n.Category == "" {
			errs = append(errs, ValidationError{Node: n.Name, Message: "node has no category"})
		}
		for _, in := range n.Inputs {
			errs = append(errs, validateInput(g, n, in)...)
		}
		for _, out := range n.Outputs {
			if out.Type == TypeInvalid {
				errs = append(errs, ValidationError{Node: n.Name, Port: out.Name, Message: "output port has invalid type"})
			}
		}
	}
	return errs
}

func validateInput(g *Graph, n *Node, in *Port) []ValidationError {
	var errs []ValidationError
	if in.Type == TypeInvalid {
		errs = append(errs, ValidationError{Node: n.Name, Port: in.Name, Message: "input port has invalid type"})
		return errs
	}
	if in.Conn != nil {
		src := in.Conn.Node
		if src == nil || g.Node(src.Name) != src {
			errs = append(errs, ValidationError{Node: n.Name, Port: in.Name, Message: "connection references a node outside the graph"})
			return errs
		}
		out := src.Output(in.Conn.Port)
		if out == nil {
			errs = append(errs, ValidationError{Node: n.Name, Port: in.Name,
				Message: fmt.Sprintf("connection references missing output %s.%s", src.Name, in.Conn.Port)})
			return errs
		}
		if !out.Type.ConvertibleTo(in.Type) {
			errs = append(errs, ValidationError{Node: n.Name, Port: in.Name,
				Message: fmt.Sprintf("type mismatch: %s.%s is %s, port expects %s", src.Name, out.Name, out.Type, in.Type)})
		}
		return errs
	}
	if in.Default.IsZero() {
		errs = append(errs, ValidationError{Node: n.Name, Port: in.Name, Message: "required input is unconnected and has no default"})
		return errs
	}
	if !in.Default.Type().ConvertibleTo(in.Type) {
		errs = append(errs, ValidationError{Node: n.Name, Port: in.Name,
			Message: fmt.Sprintf("default value is %s, port expects %s", in.Default.Type(), in.Type)})
	}
	return errs
}

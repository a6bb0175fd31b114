// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
)

// Connection references the output port of an upstream node.
type Connection struct {
	Node *Node
	Port string // output port name on Node
}

// Port is a typed input or output slot on a node.
//
// An input port is satisfied when it is connected or carries a
// default value whose type matches (or implicitly converts to) the
// port type. Output ports never carry values.
type Port struct {
	Name string
	Type Type

	// Default is the literal used when the port is unconnected.
	// A zero Value means the port is required.
	Default Value

	// Conn is the upstream connection, nil when unconnected.
	Conn *Connection
}

// Connected reports whether the port has an upstream producer.
func (p *Port) Connected() bool { return p.Conn != nil }

// Satisfied reports whether the port is connected or has a default.
func (p *Port) Satisfied() bool { return p.Conn != nil || !p.Default.IsZero() }

// Node is a vertex in the material graph: one operation with ordered
// input ports and named output ports. The category selects the code
// emission strategy in each backend's registry.
type Node struct {
	Name     string
	Category string
	Inputs   []*Port
	Outputs  []*Port
}

// Input returns the input port with the given name, or nil.
func (n *Node) Input(name string) *Port {
	for _, p := range n.Inputs {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Output returns the output port with the given name, or nil.
func (n *Node) Output(name string) *Port {
	for _, p := range n.Outputs {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// OutputType returns the type of the node's sole output. Nodes with
// multiple outputs report the first; callers that care must look the
// port up by name.
func (n *Node) OutputType() Type {
	if len(n.Outputs) == 0 {
		return TypeInvalid
	}
	return n.Outputs[0].Type
}

// Graph is a set of nodes plus connections forming a dataflow DAG.
// Node order is preserved; generation output is deterministic for a
// given graph because all iteration follows declared order.
type Graph struct {
	Name string

	nodes  []*Node
	byName map[string]*Node

	// Outputs are the designated result nodes traversal starts from.
	Outputs []*Node
}

// New returns an empty named graph.
func New(name string) *Graph {
	return &Graph{Name: name, byName: make(map[string]*Node)}
}

// AddNode appends a node to the graph. Node names must be unique
// within a graph.
func (g *Graph) AddNode(n *Node) error {
	if n.Name == "" {
		return fmt.Errorf("graph %q: node with empty name", g.Name)
	}
	if _, dup := g.byName[n.Name]; dup {
		return fmt.Errorf("graph %q: duplicate node name %q", g.Name, n.Name)
	}
	g.nodes = append(g.nodes, n)
	g.byName[n.Name] = n
	return nil
}

// Node returns the node with the given name, or nil.
func (g *Graph) Node(name string) *Node {
	return g.byName[name]
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// AddOutput designates a node as a graph output. Traversal starts
// from outputs and walks upstream.
func (g *Graph) AddOutput(n *Node) {
	g.Outputs = append(g.Outputs, n)
}

// Connect wires src's output port srcOut into dst's input port dstIn.
// The connection is rejected when either port does not exist or when
// the output type neither matches nor implicitly converts to the
// input type.
func (g *Graph) Connect(src *Node, srcOut string, dst *Node, dstIn string) error {
	out := src.Output(srcOut)
	if out == nil {
		return fmt.Errorf("node %q has no output port %q", src.Name, srcOut)
	}
	in := dst.Input(dstIn)
	if in == nil {
		return fmt.Errorf("node %q has no input port %q", dst.Name, dstIn)
	}
	if !out.Type.ConvertibleTo(in.Type) {
		return fmt.Errorf("type mismatch connecting %s.%s (%s) to %s.%s (%s)",
			src.Name, srcOut, out.Type, dst.Name, dstIn, in.Type)
	}
	in.Conn = &Connection{Node: src, Port: srcOut}
	return nil
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command sgc is the shadergraph material compiler CLI.
//
// Usage:
//
//	sgc [options] <material.json>
//
// Examples:
//
//	sgc material.json                    # GLSL to stdout
//	sgc -target wgsl material.json       # WGSL to stdout
//	sgc -o shader material.json          # writes shader.vert, shader.frag
//
// The JSON material format is a thin serialization of the in-memory
// graph model:
//
//	{
//	  "name": "basic",
//	  "nodes": [
//	    {"name": "uv0", "category": "texcoord", "index": 0},
//	    {"name": "tex", "category": "image", "file": "diffuse.png", "type": "vec4"}
//	  ],
//	  "connections": [
//	    {"from": "uv0.out", "to": "tex.texcoord"}
//	  ],
//	  "outputs": ["tex"]
//	}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/codegen"
	"github.com/gogpu/shadergraph/graph"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

var (
	target  = flag.String("target", "glsl", "target language (see -list)")
	output  = flag.String("o", "", "output file base name (default: stdout)")
	list    = flag.Bool("list", false, "list registered targets")
	version = flag.Bool("version", false, "print version")
)

const sgcVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("sgc version %s\n", sgcVersion)
		return
	}
	if *list {
		for _, t := range shadergraph.Targets() {
			fmt.Println(t)
		}
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	g, err := decodeGraph(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding material: %v\n", err)
		os.Exit(1)
	}

	res, err := shadergraph.Generate(g, *target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if *output == "" {
		for _, st := range res.Stages {
			fmt.Printf("// ---- %s stage ----\n%s\n", st.Kind, st.Source)
		}
		return
	}
	for _, st := range res.Stages {
		path := *output + stageExt(st.Kind)
		if err := os.WriteFile(path, []byte(st.Source), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(st.Source))
	}
}

func stageExt(kind codegen.StageKind) string {
	switch kind {
	case codegen.StageVertex:
		return ".vert"
	case codegen.StageFragment:
		return ".frag"
	default:
		return "." + kind.String()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `sgc - shadergraph material compiler

Usage: sgc [options] <material.json>

Options:
`)
	flag.PrintDefaults()
}

// jsonMaterial is the on-disk graph serialization.
type jsonMaterial struct {
	Name        string           `json:"name"`
	Nodes       []jsonNode       `json:"nodes"`
	Connections []jsonConnection `json:"connections"`
	Outputs     []string         `json:"outputs"`
}

type jsonNode struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Type     string    `json:"type,omitempty"`
	Value    []float32 `json:"value,omitempty"`
	File     string    `json:"file,omitempty"`
	Index    int       `json:"index,omitempty"`
	Channels string    `json:"channels,omitempty"`
	OutType  string    `json:"out,omitempty"`
}

type jsonConnection struct {
	From string `json:"from"` // "node.port"
	To   string `json:"to"`   // "node.port"
}

func decodeGraph(data []byte) (*graph.Graph, error) {
	var m jsonMaterial
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	g := graph.New(m.Name)
	for _, jn := range m.Nodes {
		n, err := buildNode(jn)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Connections {
		srcNode, srcPort, err := splitRef(c.From)
		if err != nil {
			return nil, err
		}
		dstNode, dstPort, err := splitRef(c.To)
		if err != nil {
			return nil, err
		}
		src, dst := g.Node(srcNode), g.Node(dstNode)
		if src == nil || dst == nil {
			return nil, fmt.Errorf("connection %s -> %s references unknown node", c.From, c.To)
		}
		if err := g.Connect(src, srcPort, dst, dstPort); err != nil {
			return nil, err
		}
	}
	for _, name := range m.Outputs {
		n := g.Node(name)
		if n == nil {
			return nil, fmt.Errorf("output references unknown node %q", name)
		}
		g.AddOutput(n)
	}
	return g, nil
}

func splitRef(ref string) (node, port string, err error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("malformed port reference %q, want node.port", ref)
	}
	return ref[:i], ref[i+1:], nil
}

func parseType(s string) (graph.Type, error) {
	switch s {
	case "float", "":
		return graph.TypeFloat, nil
	case "int":
		return graph.TypeInt, nil
	case "bool":
		return graph.TypeBool, nil
	case "vec2":
		return graph.TypeVec2, nil
	case "vec3":
		return graph.TypeVec3, nil
	case "vec4":
		return graph.TypeVec4, nil
	default:
		return graph.TypeInvalid, fmt.Errorf("unknown type %q", s)
	}
}

func parseValue(t graph.Type, vals []float32) (graph.Value, error) {
	if len(vals) != t.Components() {
		return graph.Value{}, fmt.Errorf("type %s needs %d components, got %d", t, t.Components(), len(vals))
	}
	switch t {
	case graph.TypeFloat:
		return graph.Float(vals[0]), nil
	case graph.TypeInt:
		return graph.Int(int(vals[0])), nil
	case graph.TypeBool:
		return graph.Bool(vals[0] != 0), nil
	case graph.TypeVec2:
		return graph.V2(ms2.Vec{X: vals[0], Y: vals[1]}), nil
	case graph.TypeVec3:
		return graph.V3(ms3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}), nil
	case graph.TypeVec4:
		return graph.V4(vals[0], vals[1], vals[2], vals[3]), nil
	default:
		return graph.Value{}, fmt.Errorf("type %s cannot carry a literal", t)
	}
}

func buildNode(jn jsonNode) (*graph.Node, error) {
	switch jn.Category {
	case "constant":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		v, err := parseValue(t, jn.Value)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", jn.Name, err)
		}
		return graph.NewConstant(jn.Name, v), nil

	case "texcoord":
		return graph.NewTexCoord(jn.Name, jn.Index), nil

	case "position", "normal", "tangent", "bitangent", "geomcolor":
		return graph.NewGeometric(jn.Name, jn.Category)

	case "image":
		out := graph.TypeVec4
		if jn.Type != "" {
			t, err := parseType(jn.Type)
			if err != nil {
				return nil, err
			}
			out = t
		}
		return graph.NewImage(jn.Name, jn.File, out), nil

	case "normalmap":
		return graph.NewNormalMap(jn.Name), nil

	case "combine2", "combine3", "combine4":
		return graph.NewCombine(jn.Name, int(jn.Category[len(jn.Category)-1]-'0'))

	case "extract":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewExtract(jn.Name, t, jn.Index), nil

	case "swizzle":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		out, err := parseType(jn.OutType)
		if err != nil {
			return nil, err
		}
		return graph.NewSwizzle(jn.Name, t, jn.Channels, out), nil

	case "remap":
		return graph.NewRemap(jn.Name), nil

	case "mix":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewMix(jn.Name, t), nil

	case "clamp":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewClamp(jn.Name, t), nil

	case "smoothstep":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewSmoothstep(jn.Name, t), nil

	case "ifgreater":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewIfGreater(jn.Name, t), nil

	case "length":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewReduce(jn.Name, "length", t), nil

	case "dot", "distance":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewBinaryReduce(jn.Name, jn.Category, t), nil

	case "add", "subtract", "multiply", "divide", "modulo",
		"power", "min", "max", "cross":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewBinary(jn.Name, jn.Category, t), nil

	case "sin", "cos", "tan", "abs", "floor", "ceil", "sqrt", "exp",
		"ln", "negate", "normalize":
		t, err := parseType(jn.Type)
		if err != nil {
			return nil, err
		}
		return graph.NewUnary(jn.Name, jn.Category, t), nil

	default:
		return nil, fmt.Errorf("node %s: unknown category %q", jn.Name, jn.Category)
	}
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"

	"github.com/gogpu/shadergraph/graph"
)

// foldValue evaluates the node at generation time when its whole
// upstream subgraph is literal. Sampling, geometric inputs and
// matrix-typed values are never folded. Results are memoized per
// stage traversal. Re-entering a node already being folded means the
// literal subgraph contains a connection cycle, which fails with
// ErrCyclicGraph just like the traversal path.
func (s *scheduler) foldValue(n *graph.Node) (graph.Value, bool, error) {
	if v, ok := s.folded[n]; ok {
		return v, true, nil
	}
	if _, active := s.folding[n]; active {
		return graph.Value{}, false, fmt.Errorf("%w: node %s participates in a connection cycle", ErrCyclicGraph, n.Name)
	}
	if len(n.Outputs) != 1 {
		return graph.Value{}, false, nil
	}
	s.folding[n] = struct{}{}
	v, ok, err := s.foldNode(n)
	delete(s.folding, n)
	if err != nil {
		return graph.Value{}, false, err
	}
	if ok {
		s.folded[n] = v
	}
	return v, ok, nil
}

func (s *scheduler) foldNode(n *graph.Node) (graph.Value, bool, error) {
	if n.Category == "constant" {
		in := n.Input("value")
		if in == nil || in.Connected() || in.Default.IsZero() {
			return graph.Value{}, false, nil
		}
		v, err := in.Default.Convert(n.Outputs[0].Type)
		if err != nil {
			return graph.Value{}, false, nil
		}
		return v, true, nil
	}
	if !foldableCategory(n.Category) {
		return graph.Value{}, false, nil
	}
	args := make([]graph.Value, 0, len(n.Inputs))
	for _, in := range n.Inputs {
		var v graph.Value
		if in.Conn != nil {
			uv, ok, err := s.foldValue(in.Conn.Node)
			if err != nil {
				return graph.Value{}, false, err
			}
			if !ok {
				return graph.Value{}, false, nil
			}
			v = uv
		} else {
			if in.Default.IsZero() {
				return graph.Value{}, false, nil
			}
			v = in.Default
		}
		cv, err := v.Convert(in.Type)
		if err != nil {
			return graph.Value{}, false, nil
		}
		args = append(args, cv)
	}
	v, ok := evalOp(n.Category, args)
	return v, ok, nil
}

func foldableCategory(cat string) bool {
	switch cat {
	case "add", "subtract", "multiply", "divide", "negate",
		"sin", "cos", "tan", "abs", "floor", "ceil", "sqrt", "exp", "ln",
		"normalize", "length", "power", "min", "max", "dot", "distance",
		"mix", "clamp":
		return true
	}
	return false
}

// evalOp evaluates one operation over literal arguments. Scalar math
// uses math32; vector math uses the ms2/ms3 element-wise helpers.
// Unhandled type combinations report false and are emitted normally.
func evalOp(cat string, args []graph.Value) (graph.Value, bool) {
	switch len(args) {
	case 1:
		return evalUnary(cat, args[0])
	case 2:
		return evalBinary(cat, args[0], args[1])
	case 3:
		return evalTernary(cat, args[0], args[1], args[2])
	}
	return graph.Value{}, false
}

func evalUnary(cat string, a graph.Value) (graph.Value, bool) {
	if a.Type() == graph.TypeFloat {
		x := a.Float32()
		switch cat {
		case "negate":
			return graph.Float(-x), true
		case "sin":
			return graph.Float(math32.Sin(x)), true
		case "cos":
			return graph.Float(math32.Cos(x)), true
		case "tan":
			return graph.Float(math32.Tan(x)), true
		case "abs":
			return graph.Float(math32.Abs(x)), true
		case "floor":
			return graph.Float(math32.Floor(x)), true
		case "ceil":
			return graph.Float(math32.Ceil(x)), true
		case "sqrt":
			return graph.Float(math32.Sqrt(x)), true
		case "exp":
			return graph.Float(math32.Exp(x)), true
		case "ln":
			return graph.Float(math32.Log(x)), true
		}
		return graph.Value{}, false
	}
	switch a.Type() {
	case graph.TypeVec2:
		v := a.Vec2()
		switch cat {
		case "negate":
			return graph.V2(ms2.Scale(-1, v)), true
		case "abs":
			return graph.V2(ms2.AbsElem(v)), true
		case "normalize":
			n := ms2.Norm(v)
			if n == 0 {
				return graph.Value{}, false
			}
			return graph.V2(ms2.Scale(1/n, v)), true
		case "length":
			return graph.Float(ms2.Norm(v)), true
		}
	case graph.TypeVec3:
		v := a.Vec3()
		switch cat {
		case "negate":
			return graph.V3(ms3.Scale(-1, v)), true
		case "abs":
			return graph.V3(ms3.AbsElem(v)), true
		case "normalize":
			n := ms3.Norm(v)
			if n == 0 {
				return graph.Value{}, false
			}
			return graph.V3(ms3.Unit(v)), true
		case "length":
			return graph.Float(ms3.Norm(v)), true
		}
	}
	return graph.Value{}, false
}

func evalBinary(cat string, a, b graph.Value) (graph.Value, bool) {
	if a.Type() == graph.TypeFloat && b.Type() == graph.TypeFloat {
		x, y := a.Float32(), b.Float32()
		switch cat {
		case "add":
			return graph.Float(x + y), true
		case "subtract":
			return graph.Float(x - y), true
		case "multiply":
			return graph.Float(x * y), true
		case "divide":
			if y == 0 {
				return graph.Value{}, false
			}
			return graph.Float(x / y), true
		case "power":
			return graph.Float(math32.Pow(x, y)), true
		case "min":
			return graph.Float(math32.Min(x, y)), true
		case "max":
			return graph.Float(math32.Max(x, y)), true
		case "distance":
			return graph.Float(math32.Abs(x - y)), true
		}
		return graph.Value{}, false
	}
	if a.Type() == graph.TypeVec2 && b.Type() == graph.TypeVec2 {
		u, v := a.Vec2(), b.Vec2()
		switch cat {
		case "add":
			return graph.V2(ms2.Add(u, v)), true
		case "subtract":
			return graph.V2(ms2.Sub(u, v)), true
		case "multiply":
			return graph.V2(ms2.MulElem(u, v)), true
		case "divide":
			if v.X == 0 || v.Y == 0 {
				return graph.Value{}, false
			}
			return graph.V2(ms2.DivElem(u, v)), true
		case "min":
			return graph.V2(ms2.MinElem(u, v)), true
		case "max":
			return graph.V2(ms2.MaxElem(u, v)), true
		case "dot":
			return graph.Float(ms2.Dot(u, v)), true
		case "distance":
			return graph.Float(ms2.Norm(ms2.Sub(u, v))), true
		}
		return graph.Value{}, false
	}
	if a.Type() == graph.TypeVec3 && b.Type() == graph.TypeVec3 {
		u, v := a.Vec3(), b.Vec3()
		switch cat {
		case "add":
			return graph.V3(ms3.Add(u, v)), true
		case "subtract":
			return graph.V3(ms3.Sub(u, v)), true
		case "multiply":
			return graph.V3(ms3.MulElem(u, v)), true
		case "divide":
			if v.X == 0 || v.Y == 0 || v.Z == 0 {
				return graph.Value{}, false
			}
			return graph.V3(ms3.DivElem(u, v)), true
		case "min":
			return graph.V3(ms3.MinElem(u, v)), true
		case "max":
			return graph.V3(ms3.MaxElem(u, v)), true
		case "dot":
			return graph.Float(ms3.Dot(u, v)), true
		case "distance":
			return graph.Float(ms3.Norm(ms3.Sub(u, v))), true
		}
	}
	return graph.Value{}, false
}

func evalTernary(cat string, a, b, c graph.Value) (graph.Value, bool) {
	if a.Type() != graph.TypeFloat || b.Type() != graph.TypeFloat || c.Type() != graph.TypeFloat {
		return graph.Value{}, false
	}
	x, y, t := a.Float32(), b.Float32(), c.Float32()
	switch cat {
	case "mix":
		return graph.Float(x*(1-t) + y*t), true
	case "clamp":
		return graph.Float(math32.Min(math32.Max(x, y), t)), true
	}
	return graph.Value{}, false
}

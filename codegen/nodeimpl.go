// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// noVariables is embedded by implementations whose nodes only produce
// stage-local values and need no declarations ahead of the body.
type noVariables struct{}

func (noVariables) CreateVariables(*graph.Node, *Context, *Shader, *ShaderStage) error {
	return nil
}

// EmitLocal declares the node's single output as an initialized local
// and memoizes the variable name in the stage. It is the shared tail
// of most implementations, exported for backend-specific ones.
func EmitLocal(n *graph.Node, ctx *Context, stage *ShaderStage, expr string) error {
	if len(n.Outputs) != 1 {
		return fmt.Errorf("node %s: expected one output port, has %d", n.Name, len(n.Outputs))
	}
	out := n.Outputs[0]
	name := ctx.Namer.Call(n.Name)
	stage.AppendBody(ctx.Syntax.DeclareLocal(name, out.Type, expr))
	stage.SetOutputVar(n, out.Name, name)
	return nil
}

// InputExprs resolves all input ports of a node in declared order.
func InputExprs(n *graph.Node, ctx *Context, stage *ShaderStage) ([]string, error) {
	args := make([]string, 0, len(n.Inputs))
	for _, in := range n.Inputs {
		expr, err := InputExpr(ctx, stage, n, in)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}
	return args, nil
}

// constantImpl emits a literal declaration from the node's "value"
// input. Works for every numeric type.
type constantImpl struct{ noVariables }

// NewConstantImpl returns the implementation for constant nodes.
func NewConstantImpl() NodeImpl { return constantImpl{} }

func (constantImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	in := n.Input("value")
	if in == nil {
		return fmt.Errorf("node %s: constant node has no value input", n.Name)
	}
	expr, err := InputExpr(ctx, stage, n, in)
	if err != nil {
		return err
	}
	return EmitLocal(n, ctx, stage, expr)
}

// intrinsicImpl emits a call to a target intrinsic looked up by
// semantic operation name. One value serves every intrinsic-backed
// category (sin, pow, mix, ...).
type intrinsicImpl struct {
	noVariables
	op string
}

// NewIntrinsicImpl returns an implementation emitting a call to the
// intrinsic registered under op in the target's intrinsic table.
func NewIntrinsicImpl(op string) NodeImpl { return intrinsicImpl{op: op} }

func (im intrinsicImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	intr, ok := ctx.Intrinsic(im.op)
	if !ok {
		return fmt.Errorf("%w: no %q intrinsic for target %q (node %s)",
			ErrUnsupportedNode, im.op, ctx.Target, n.Name)
	}
	args, err := InputExprs(n, ctx, stage)
	if err != nil {
		return err
	}
	if intr.NArgs != len(args) {
		return fmt.Errorf("node %s: intrinsic %s takes %d arguments, node has %d inputs",
			n.Name, intr.Name, intr.NArgs, len(args))
	}
	return EmitLocal(n, ctx, stage, intr.Name+"("+strings.Join(args, ", ")+")")
}

// operatorImpl emits an infix (or prefix, for one input) operator
// expression. Operator spelling is shared across C-family shading
// languages, so this lives in the core.
type operatorImpl struct {
	noVariables
	op string
}

// NewOperatorImpl returns an implementation emitting `a op b` for two
// inputs or `op a` for one.
func NewOperatorImpl(op string) NodeImpl { return operatorImpl{op: op} }

func (im operatorImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	args, err := InputExprs(n, ctx, stage)
	if err != nil {
		return err
	}
	var expr string
	switch len(args) {
	case 1:
		// Parenthesized so a negative literal operand cannot fuse
		// with the operator into a different token ("--5.0").
		expr = im.op + "(" + args[0] + ")"
	case 2:
		expr = args[0] + " " + im.op + " " + args[1]
	default:
		return fmt.Errorf("node %s: operator %q takes 1 or 2 inputs, node has %d",
			n.Name, im.op, len(args))
	}
	return EmitLocal(n, ctx, stage, expr)
}

// combineImpl constructs the output vector from scalar/vector inputs.
type combineImpl struct{ noVariables }

// NewCombineImpl returns the implementation for combine2/3/4 nodes.
func NewCombineImpl() NodeImpl { return combineImpl{} }

func (combineImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	args, err := InputExprs(n, ctx, stage)
	if err != nil {
		return err
	}
	return EmitLocal(n, ctx, stage, ctx.Syntax.Construct(n.OutputType(), args))
}

// extractImpl selects one component of a vector input by a literal
// index. Material graphs index channels statically, so a connected
// index is rejected.
type extractImpl struct{ noVariables }

// NewExtractImpl returns the implementation for extract nodes.
func NewExtractImpl() NodeImpl { return extractImpl{} }

func (extractImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	in := n.Input("in")
	if in == nil {
		return fmt.Errorf("node %s: extract node has no in port", n.Name)
	}
	expr, err := InputExpr(ctx, stage, n, in)
	if err != nil {
		return err
	}
	idx := n.Input("index")
	if idx == nil || idx.Connected() || idx.Default.IsZero() {
		return fmt.Errorf("node %s: extract index must be a literal", n.Name)
	}
	i := idx.Default.IntVal()
	if i < 0 || i >= in.Type.Components() {
		return fmt.Errorf("node %s: extract index %d out of range for %s", n.Name, i, in.Type)
	}
	return EmitLocal(n, ctx, stage, ctx.Syntax.Swizzle(expr, string("xyzw"[i])))
}

// swizzleImpl reorders components with a literal channel mask.
type swizzleImpl struct{ noVariables }

// NewSwizzleImpl returns the implementation for swizzle nodes.
func NewSwizzleImpl() NodeImpl { return swizzleImpl{} }

func (swizzleImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	in := n.Input("in")
	if in == nil {
		return fmt.Errorf("node %s: swizzle node has no in port", n.Name)
	}
	expr, err := InputExpr(ctx, stage, n, in)
	if err != nil {
		return err
	}
	ch := n.Input("channels")
	if ch == nil || ch.Connected() || ch.Default.IsZero() {
		return fmt.Errorf("node %s: swizzle channels must be a literal", n.Name)
	}
	mask := ch.Default.StringVal()
	if len(mask) == 0 || len(mask) > 4 {
		return fmt.Errorf("node %s: swizzle mask %q must have 1 to 4 channels", n.Name, mask)
	}
	limit := in.Type.Components()
	for _, c := range mask {
		i := strings.IndexRune("xyzw", c)
		if i < 0 || i >= limit {
			return fmt.Errorf("node %s: channel %q not present in %s", n.Name, string(c), in.Type)
		}
	}
	return EmitLocal(n, ctx, stage, ctx.Syntax.Swizzle(expr, mask))
}

// compareImpl emits a componentless conditional: out = in1 when
// value1 cmp value2 holds, else in2.
type compareImpl struct {
	noVariables
	cmp string
}

// NewCompareImpl returns the implementation for ifgreater/ifequal
// style nodes; cmp is the comparison operator spelling.
func NewCompareImpl(cmp string) NodeImpl { return compareImpl{cmp: cmp} }

func (im compareImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	var exprs [4]string
	for i, name := range [...]string{"value1", "value2", "in1", "in2"} {
		in := n.Input(name)
		if in == nil {
			return fmt.Errorf("node %s: missing %s port", n.Name, name)
		}
		expr, err := InputExpr(ctx, stage, n, in)
		if err != nil {
			return err
		}
		exprs[i] = expr
	}
	cond := "(" + exprs[0] + " " + im.cmp + " " + exprs[1] + ")"
	return EmitLocal(n, ctx, stage, ctx.Syntax.Select(cond, exprs[2], exprs[3]))
}

// normalMapImpl decodes a tangent-space normal from a sampled color:
// normalize(c * 2 - 1).
type normalMapImpl struct{ noVariables }

// NewNormalMapImpl returns the implementation for normalmap nodes.
func NewNormalMapImpl() NodeImpl { return normalMapImpl{} }

func (normalMapImpl) EmitFunctionCall(n *graph.Node, ctx *Context, stage *ShaderStage) error {
	in := n.Input("in")
	if in == nil {
		return fmt.Errorf("node %s: normalmap node has no in port", n.Name)
	}
	expr, err := InputExpr(ctx, stage, n, in)
	if err != nil {
		return err
	}
	intr, ok := ctx.Intrinsic("normalize")
	if !ok {
		return fmt.Errorf("%w: no normalize intrinsic for target %q", ErrUnsupportedNode, ctx.Target)
	}
	two := ctx.Syntax.Literal(graph.Float(2))
	one := ctx.Syntax.Literal(graph.Float(1))
	return EmitLocal(n, ctx, stage, intr.Name+"("+expr+" * "+two+" - "+one+")")
}

// RegisterCommon installs the target-independent node set into a
// backend registry: literals, arithmetic operators, intrinsic math,
// channel plumbing and comparisons. Backends add their own geometric
// and texturing implementations on top and may override any entry.
func RegisterCommon(reg *Registry) {
	reg.Register("constant", NewConstantImpl())

	reg.Register("add", NewOperatorImpl("+"))
	reg.Register("subtract", NewOperatorImpl("-"))
	reg.Register("multiply", NewOperatorImpl("*"))
	reg.Register("divide", NewOperatorImpl("/"))
	reg.Register("negate", NewOperatorImpl("-"))

	for _, op := range []string{
		"sin", "cos", "tan", "abs", "floor", "ceil", "sqrt", "exp",
		"normalize", "length",
	} {
		reg.Register(op, NewIntrinsicImpl(op))
	}
	reg.Register("ln", NewIntrinsicImpl("ln"))
	reg.Register("power", NewIntrinsicImpl("power"))
	reg.Register("min", NewIntrinsicImpl("min"))
	reg.Register("max", NewIntrinsicImpl("max"))
	reg.Register("dot", NewIntrinsicImpl("dot"))
	reg.Register("cross", NewIntrinsicImpl("cross"))
	reg.Register("distance", NewIntrinsicImpl("distance"))
	reg.Register("mix", NewIntrinsicImpl("mix"))
	reg.Register("clamp", NewIntrinsicImpl("clamp"))
	reg.Register("smoothstep", NewIntrinsicImpl("smoothstep"))

	reg.Register("combine2", NewCombineImpl())
	reg.Register("combine3", NewCombineImpl())
	reg.Register("combine4", NewCombineImpl())
	reg.Register("extract", NewExtractImpl())
	reg.Register("swizzle", NewSwizzleImpl())

	reg.Register("ifgreater", NewCompareImpl(">"))
	reg.Register("ifgreatereq", NewCompareImpl(">="))
	reg.Register("ifequal", NewCompareImpl("=="))

	reg.Register("normalmap", NewNormalMapImpl())
}

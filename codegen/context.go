// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"

	"github.com/gogpu/shadergraph/graph"
)

// Syntax abstracts the spelling rules of one target shading
// language. Node implementations emit through it so the same
// implementation can serve multiple targets.
type Syntax interface {
	// TypeName returns the target spelling of a semantic type,
	// e.g. Vec3 -> "vec3" (GLSL) or "vec3<f32>" (WGSL).
	TypeName(t graph.Type) string

	// Literal formats a value as a target literal expression,
	// e.g. vec3(1.,0.,0.).
	Literal(v graph.Value) string

	// DeclareLocal formats a local declaration statement with
	// initializer, terminator included.
	DeclareLocal(name string, t graph.Type, expr string) string

	// Assign formats an assignment statement, terminator included.
	Assign(lhs, expr string) string

	// Construct formats a constructor expression for t from args.
	Construct(t graph.Type, args []string) string

	// Convert formats an implicit widening conversion of expr.
	Convert(expr string, from, to graph.Type) string

	// Swizzle formats component selection on expr, comps in "xyzw".
	Swizzle(expr, comps string) string

	// Select formats a conditional expression choosing then when cond
	// holds and els otherwise.
	Select(cond, then, els string) string
}

// Intrinsic describes one built-in function of the target language.
// Node implementations look intrinsics up by semantic operation name
// rather than hard-coding target spellings.
type Intrinsic struct {
	// Name is the target spelling, e.g. "log" for operation "ln".
	Name string
	// NArgs is the argument count the intrinsic expects.
	NArgs int
}

// Options configure one generation run, shared across backends.
type Options struct {
	// FoldConstants evaluates nodes whose inputs are all literals at
	// generation time and emits a literal instead of a call chain.
	FoldConstants bool

	// SkipUnsupported substitutes a typed zero constant for nodes
	// with no registered implementation instead of failing the run.
	// Each substitution is recorded as a warning.
	SkipUnsupported bool
}

// Context carries per-run, target-specific configuration through
// every emission call. One Context per generation run; runs never
// share a Context.
type Context struct {
	// Target is the target-language identifier, e.g. "glsl".
	Target string

	// Syntax is the target's spelling rules.
	Syntax Syntax

	// Namer allocates unique variable names for the run.
	Namer *Namer

	// Options for this run.
	Options Options

	intrinsics map[string]Intrinsic

	// Warnings collects non-fatal reports, e.g. skipped nodes.
	Warnings []string
}

// NewContext creates a generation context for one run.
func NewContext(target string, syn Syntax, namer *Namer, intrinsics map[string]Intrinsic, opts Options) *Context {
	return &Context{
		Target:     target,
		Syntax:     syn,
		Namer:      namer,
		Options:    opts,
		intrinsics: intrinsics,
	}
}

// Intrinsic looks up the target spelling of a semantic operation.
func (ctx *Context) Intrinsic(op string) (Intrinsic, bool) {
	in, ok := ctx.intrinsics[op]
	return in, ok
}

// Warnf records a non-fatal warning for the run.
func (ctx *Context) Warnf(format string, args ...any) {
	ctx.Warnings = append(ctx.Warnings, fmt.Sprintf(format, args...))
}

// InputExpr returns the expression referencing the value bound to an
// input port within the stage: the memoized upstream output variable
// when connected (widened if the types differ), otherwise the port's
// default literal converted to the port type.
//
// The upstream node must already be emitted into the stage; the
// scheduler guarantees producers run before consumers.
func InputExpr(ctx *Context, stage *ShaderStage, n *graph.Node, in *graph.Port) (string, error) {
	if in.Conn != nil {
		src := in.Conn.Node
		name, ok := stage.OutputVar(src, in.Conn.Port)
		if !ok {
			return "", fmt.Errorf("node %s input %s: upstream %s.%s not yet emitted in %s stage",
				n.Name, in.Name, src.Name, in.Conn.Port, stage.Kind)
		}
		out := src.Output(in.Conn.Port)
		if out == nil {
			return "", fmt.Errorf("node %s input %s: %w: missing upstream output %s.%s",
				n.Name, in.Name, ErrTypeMismatch, src.Name, in.Conn.Port)
		}
		if out.Type != in.Type {
			if !out.Type.ConvertibleTo(in.Type) {
				return "", fmt.Errorf("node %s input %s: %w: %s -> %s",
					n.Name, in.Name, ErrTypeMismatch, out.Type, in.Type)
			}
			return ctx.Syntax.Convert(name, out.Type, in.Type), nil
		}
		return name, nil
	}
	if in.Default.IsZero() {
		return "", fmt.Errorf("node %s: %w: port %s", n.Name, ErrMissingInput, in.Name)
	}
	v, err := in.Default.Convert(in.Type)
	if err != nil {
		return "", fmt.Errorf("node %s input %s: %w: %v", n.Name, in.Name, ErrTypeMismatch, err)
	}
	return ctx.Syntax.Literal(v), nil
}

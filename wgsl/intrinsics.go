// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import "github.com/gogpu/shadergraph/codegen"

// intrinsics maps semantic operation names to WGSL built-in function
// signatures.
var intrinsics = map[string]codegen.Intrinsic{
	"sin":   {Name: "sin", NArgs: 1},
	"cos":   {Name: "cos", NArgs: 1},
	"tan":   {Name: "tan", NArgs: 1},
	"abs":   {Name: "abs", NArgs: 1},
	"floor": {Name: "floor", NArgs: 1},
	"ceil":  {Name: "ceil", NArgs: 1},
	"sqrt":  {Name: "sqrt", NArgs: 1},
	"exp":   {Name: "exp", NArgs: 1},
	"ln":    {Name: "log", NArgs: 1},

	"normalize": {Name: "normalize", NArgs: 1},
	"length":    {Name: "length", NArgs: 1},

	"power":    {Name: "pow", NArgs: 2},
	"min":      {Name: "min", NArgs: 2},
	"max":      {Name: "max", NArgs: 2},
	"dot":      {Name: "dot", NArgs: 2},
	"cross":    {Name: "cross", NArgs: 2},
	"distance": {Name: "distance", NArgs: 2},

	"mix":        {Name: "mix", NArgs: 3},
	"clamp":      {Name: "clamp", NArgs: 3},
	"smoothstep": {Name: "smoothstep", NArgs: 3},
}

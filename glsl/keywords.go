// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "strings"

// glslKeywords contains GLSL reserved words and built-in type names.
// Based on the GLSL 4.60 and GLSL ES 3.20 specifications, trimmed to
// the names a generated identifier could plausibly collide with.
var glslKeywords = map[string]struct{}{
	// Basic types
	"void": {}, "bool": {}, "int": {}, "uint": {}, "float": {}, "double": {},

	// Vector types
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},

	// Matrix types
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},

	// Sampler types
	"sampler": {}, "sampler1D": {}, "sampler2D": {}, "sampler3D": {},
	"samplerCube": {}, "sampler2DArray": {}, "sampler2DShadow": {},

	// Keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"buffer": {}, "shared": {}, "coherent": {}, "volatile": {}, "restrict": {},
	"readonly": {}, "writeonly": {},
	"layout": {}, "centroid": {}, "flat": {}, "smooth": {}, "noperspective": {},
	"patch": {}, "sample": {}, "subroutine": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {},
	"switch": {}, "case": {}, "default": {},
	"if": {}, "else": {}, "in": {}, "out": {}, "inout": {},
	"true": {}, "false": {}, "invariant": {}, "precise": {},
	"discard": {}, "return": {},
	"lowp": {}, "mediump": {}, "highp": {}, "precision": {}, "struct": {},

	// Common built-in functions generated code calls by name
	"texture": {}, "normalize": {}, "length": {}, "dot": {}, "cross": {},
	"mix": {}, "clamp": {}, "smoothstep": {}, "pow": {}, "mod": {},
	"min": {}, "max": {}, "abs": {}, "floor": {}, "ceil": {}, "sqrt": {},
	"sin": {}, "cos": {}, "tan": {}, "exp": {}, "log": {}, "distance": {},

	// Entry point
	"main": {},
}

// escapeKeyword rewrites identifiers that collide with GLSL reserved
// words or the reserved gl_ prefix.
func escapeKeyword(name string) string {
	if _, reserved := glslKeywords[name]; reserved {
		return name + "_"
	}
	if strings.HasPrefix(name, "gl_") {
		return "sg" + name[2:]
	}
	if strings.HasPrefix(name, "__") {
		return "sg" + name
	}
	return name
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgsl

import "strings"

// wgslKeywords contains WGSL reserved words and built-in names that
// generated identifiers could collide with, per the WebGPU Shading
// Language specification.
var wgslKeywords = map[string]struct{}{
	// Types
	"bool": {}, "f16": {}, "f32": {}, "i32": {}, "u32": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"mat2x2": {}, "mat3x3": {}, "mat4x4": {},
	"array": {}, "atomic": {}, "ptr": {},
	"sampler": {}, "sampler_comparison": {},
	"texture_1d": {}, "texture_2d": {}, "texture_3d": {}, "texture_cube": {},

	// Keywords
	"alias": {}, "break": {}, "case": {}, "const": {}, "const_assert": {},
	"continue": {}, "continuing": {}, "default": {}, "diagnostic": {},
	"discard": {}, "else": {}, "enable": {}, "false": {}, "fn": {},
	"for": {}, "if": {}, "let": {}, "loop": {}, "override": {},
	"requires": {}, "return": {}, "struct": {}, "switch": {}, "true": {},
	"var": {}, "while": {},

	// Built-in functions generated code calls by name
	"abs": {}, "ceil": {}, "clamp": {}, "cos": {}, "cross": {},
	"distance": {}, "dot": {}, "exp": {}, "floor": {}, "length": {},
	"log": {}, "max": {}, "min": {}, "mix": {}, "normalize": {},
	"pow": {}, "select": {}, "sin": {}, "smoothstep": {}, "sqrt": {},
	"tan": {}, "textureSample": {},

	// Generated entry points and IO parameters
	"vs_main": {}, "fs_main": {}, "in": {}, "out": {},
	"VertexOutput": {},
}

// escapeKeyword rewrites identifiers reserved by WGSL or by the
// generated entry point scaffolding.
func escapeKeyword(name string) string {
	if _, reserved := wgslKeywords[name]; reserved {
		return name + "_"
	}
	if strings.HasPrefix(name, "__") {
		return "sg" + name
	}
	return name
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

// StageSource is the serialized source text of one pipeline stage.
type StageSource struct {
	Kind   StageKind
	Source string
}

// Result is the output of one generation run: one source blob per
// stage, in pipeline order, plus any non-fatal warnings collected
// along the way.
type Result struct {
	Name     string
	Stages   []StageSource
	Warnings []string
}

// Stage returns the source for the given stage kind, or "".
func (r *Result) Stage(kind StageKind) string {
	for _, s := range r.Stages {
		if s.Kind == kind {
			return s.Source
		}
	}
	return ""
}

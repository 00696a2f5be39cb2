// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import "fmt"

// Severity classifies a diagnostic.
type Severity uint8

const (
	// SeverityWarning marks a recoverable problem; the build substituted
	// a placeholder and continued.
	SeverityWarning Severity = iota
	// SeverityError marks a structural problem; the affected asset (and
	// anything depending on it) cannot be rendered.
	SeverityError
)

// String returns "warning" or "error".
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic codes emitted by the core.
const (
	CodeCycle          = "px/cycle"
	CodeMissingStamp   = "px/missing-stamp"
	CodeMissingBrush   = "px/missing-brush"
	CodeMissingColor   = "px/missing-color"
	CodeMissingAsset   = "px/missing-asset"
	CodeUnknownSymbol  = "px/unknown-symbol"
	CodeUnknownEffect  = "px/unknown-effect"
	CodeSizeMismatch   = "px/size-mismatch"
	CodeRenderSkipped  = "px/render-skipped"
	CodeMissingPalette = "px/missing-palette"
)

// Diag is one structured diagnostic record. The core never formats
// human-readable reports; a collaborating reporting layer renders these.
type Diag struct {
	// Severity classifies the record.
	Severity Severity

	// Code is the machine-readable diagnostic code.
	Code string

	// Message describes the problem.
	Message string

	// Asset names the offending asset, when known.
	Asset string

	// Symbol is the offending grid symbol, when relevant (0 otherwise).
	Symbol rune

	// Source is the offending definition's source location, when known.
	Source string
}

func (d Diag) String() string {
	s := fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	if d.Asset != "" {
		s += fmt.Sprintf(" (asset %q)", d.Asset)
	}
	return s
}

// DiagList collects diagnostics. The zero value is ready to use.
// DiagList is not safe for concurrent use; the render pipeline gives each
// worker its own list and merges after the level barrier.
type DiagList struct {
	diags []Diag
}

// Add appends a diagnostic.
func (l *DiagList) Add(d Diag) {
	l.diags = append(l.diags, d)
}

// Warnf appends a warning with a formatted message.
func (l *DiagList) Warnf(code string, format string, args ...any) {
	l.Add(Diag{Severity: SeverityWarning, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Errorf appends an error with a formatted message.
func (l *DiagList) Errorf(code string, format string, args ...any) {
	l.Add(Diag{Severity: SeverityError, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all diagnostics from another list.
func (l *DiagList) Merge(other *DiagList) {
	l.diags = append(l.diags, other.diags...)
}

// All returns the collected diagnostics.
func (l *DiagList) All() []Diag {
	return l.diags
}

// Len returns the number of diagnostics.
func (l *DiagList) Len() int {
	return len(l.diags)
}

// HasErrors reports whether any diagnostic is an error.
func (l *DiagList) HasErrors() bool {
	for _, d := range l.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

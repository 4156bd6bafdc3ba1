// Package qualname parses and normalizes the qualified names used for
// imports, call-chain dispatch, and declaration lookup ("a::b::c").
//
// Unlike the teacher's pkg/ident (case-insensitive DWScript identifiers),
// hikaya's surface language is case-sensitive; the concern this package
// owns instead is Unicode normalization, since Arabic-script identifiers
// admit more than one codepoint-equivalent encoding (a precomposed letter vs.
// base letter plus combining marks). Normalize once, here, and trust the
// normalized form everywhere downstream, the same discipline the teacher
// applies to case-folding.
package qualname

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Separator joins the segments of a qualified name.
const Separator = "::"

// Normalize returns the NFC-normalized form of s. internal/imports
// normalizes import aliases and internal/values normalizes Text through
// this function; internal/context stores and compares names as given.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Equal reports whether a and b denote the same name once normalized.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Split breaks a qualified name into its normalized segments. "a::b::c"
// yields ["a", "b", "c"]; a name with no separator yields a single-element
// slice.
func Split(qualified string) []string {
	parts := strings.Split(qualified, Separator)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = Normalize(p)
	}
	return out
}

// Join reassembles segments produced by Split (or any name parts) into a
// single qualified name.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// FirstSegment returns the leading component of a qualified name, the part
// matched against import aliases.
func FirstSegment(qualified string) string {
	if idx := strings.Index(qualified, Separator); idx >= 0 {
		return Normalize(qualified[:idx])
	}
	return Normalize(qualified)
}

// IsQualified reports whether name contains at least one separator.
func IsQualified(name string) bool {
	return strings.Contains(name, Separator)
}

// SPDX-License-Identifier: EPL-2.0

// Package naming derives safe, bounded output file names.
package naming

import (
	"regexp"
	"strings"
	"time"
)

// MaxBaseLen bounds a sanitized base name, in bytes.
const MaxBaseLen = 40

var (
	extPattern    = regexp.MustCompile(`\.[^/.]+$`)
	unsafePattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// ResolveBaseName turns a user supplied name into a lowercase slug of
// [a-z0-9-] without its extension, at most MaxBaseLen bytes long. When
// nothing usable is left it returns audio_YYYYMMDD_HHMMSS for now in local
// time.
func ResolveBaseName(candidate string, now time.Time) string {
	if base := sanitize(candidate); base != "" {
		return base
	}

	return "audio_" + now.Local().Format("20060102_150405")
}

// BaseName is ResolveBaseName at the current time.
func BaseName(candidate string) string {
	return ResolveBaseName(candidate, time.Now())
}

// FileName joins a base name and an extension given without the dot.
func FileName(base, ext string) string {
	if ext == "" {
		return base
	}

	return base + "." + strings.TrimPrefix(ext, ".")
}

func sanitize(candidate string) string {
	s := extPattern.ReplaceAllString(candidate, "")
	s = strings.ToLower(s)
	s = unsafePattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	// Only ASCII is left, so a byte cut is a character cut. A dash
	// exposed by the cut is kept.
	if len(s) > MaxBaseLen {
		s = s[:MaxBaseLen]
	}

	return s
}

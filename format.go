// SPDX-License-Identifier: EPL-2.0

package pcmexport

import "strings"

// Format is an output encoding of the PCM.
type Format string

const (
	// FormatBin is headerless little-endian s16 PCM.
	FormatBin Format = "bin"
	// FormatHeader is a C header embedding the PCM as an int16_t array.
	FormatHeader Format = "header"
	// FormatWAV is a 16-bit PCM WAV file.
	FormatWAV Format = "wav"
)

// DefaultFormat is used for empty or unknown format names.
const DefaultFormat = FormatHeader

// Formats lists every output format.
func Formats() []Format {
	return []Format{FormatBin, FormatHeader, FormatWAV}
}

// ParseFormat maps a user supplied name to a Format, falling back to
// DefaultFormat.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bin", "raw", "pcm":
		return FormatBin
	case "wav", "wave":
		return FormatWAV
	default:
		return DefaultFormat
	}
}

// Ext is the file extension, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatBin:
		return "bin"
	case FormatWAV:
		return "wav"
	default:
		return "h"
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatBin:
		return "application/octet-stream"
	case FormatWAV:
		return "audio/wav"
	default:
		return "text/plain; charset=utf-8"
	}
}

// SPDX-License-Identifier: EPL-2.0

package cheader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// ValuesPerLine is how many samples each array line holds.
	ValuesPerLine = 64

	// MaxLabelRunes bounds the label embedded in the comment line.
	MaxLabelRunes = 64
)

// Metadata describes the samples for the comment line and macros.
type Metadata struct {
	// Label is the source file name or a snippet of the synthesized text.
	Label string

	// Voice is set for synthesized speech and selects the edge-tts comment.
	Voice string

	SampleRate int
	Channels   int
}

// Comment is the text placed between /* and */ on the first line.
func (m Metadata) Comment() string {
	label := Snippet(m.Label)

	var c string
	if m.Voice != "" {
		c = fmt.Sprintf(`edge-tts export: "%s" (voice=%s)`, label, m.Voice)
	} else {
		c = fmt.Sprintf("audio export: %s (%d Hz, %d ch)", label, m.SampleRate, m.Channels)
	}

	return commentSafe(c)
}

// Snippet collapses every whitespace run to one space, trims the ends and
// keeps at most MaxLabelRunes runes.
func Snippet(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(s) <= MaxLabelRunes {
		return s
	}

	n := 0
	for i := range s {
		if n == MaxLabelRunes {
			return s[:i]
		}
		n++
	}

	return s
}

var commentReplacer = strings.NewReplacer("*/", "* /", "\r", " ", "\n", " ")

func commentSafe(s string) string {
	return commentReplacer.Replace(s)
}

// Render returns the header text for samples.
func Render(samples []int16, meta Metadata) string {
	var sb strings.Builder
	sb.Grow(512 + len(samples)*8)

	// strings.Builder never fails.
	_ = Write(&sb, samples, meta)

	return sb.String()
}

// Write streams the header text for samples to w. The output is byte for
// byte what Render returns.
func Write(w io.Writer, samples []int16, meta Metadata) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "/* %s */\n", meta.Comment())
	bw.WriteString("#ifndef AUDIO_H\n#define AUDIO_H\n\n#include <stdint.h>\n\n")
	fmt.Fprintf(bw, "#define AUDIO_SAMPLE_RATE_HZ %dU\n", meta.SampleRate)
	fmt.Fprintf(bw, "#define AUDIO_NUM_CHANNELS   %dU\n", meta.Channels)
	bw.WriteString("#define AUDIO_BITS_PER_SAMPLE 16U\n\n")
	bw.WriteString("static const int16_t audio_track[] = {\n")

	num := make([]byte, 0, 8)
	for i := 0; i < len(samples); i += ValuesPerLine {
		end := min(i+ValuesPerLine, len(samples))

		bw.WriteString("    ")
		for j, v := range samples[i:end] {
			if j > 0 {
				bw.WriteString(", ")
			}
			num = strconv.AppendInt(num[:0], int64(v), 10)
			bw.Write(num)
		}
		if end < len(samples) {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}

	bw.WriteString("};\n\n")
	bw.WriteString("#define AUDIO_TRACK_SAMPLE_COUNT (sizeof(audio_track) / sizeof(audio_track[0]))\n")
	bw.WriteString("#define AUDIO_TRACK_SIZE_BYTES (AUDIO_TRACK_SAMPLE_COUNT * sizeof(audio_track[0]))\n\n")
	bw.WriteString("#endif /* AUDIO_H */\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/formats/cheader"
	"github.com/ik5/pcmexport/formats/mp3"
)

const (
	// DefaultMaxTextLength bounds the text of one request, in runes.
	DefaultMaxTextLength = 400

	DefaultVoice = "zh-CN-XiaoxiaoNeural"
	DefaultRate  = "+0%"
	DefaultPitch = "+0Hz"
)

var (
	ErrEmptyText   = errors.New("text is empty")
	ErrTextTooLong = errors.New("text is too long")

	// ErrInvalidProsody is returned for a malformed rate or pitch.
	ErrInvalidProsody = errors.New("invalid rate or pitch")

	// ErrSynthesis wraps every failure of the speech service or tool.
	ErrSynthesis = errors.New("speech synthesis failed")
)

var (
	ratePattern  = regexp.MustCompile(`^[+-]\d{1,3}%$`)
	pitchPattern = regexp.MustCompile(`^[+-]\d{1,3}Hz$`)
)

// Voice is one entry of the voice catalogue.
type Voice struct {
	ID    string `json:"id"    yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// DefaultVoices is the catalogue offered when none is configured.
var DefaultVoices = []Voice{
	{ID: "zh-CN-XiaoxiaoNeural", Label: "zh-CN Xiaoxiao (F)"},
	{ID: "zh-CN-XiaochenNeural", Label: "zh-CN Xiaochen (M)"},
	{ID: "zh-CN-YunxiNeural", Label: "zh-CN Yunxi (M)"},
	{ID: "zh-CN-YunyeNeural", Label: "zh-CN Yunye (M)"},
	{ID: "zh-CN-XiaoyiNeural", Label: "zh-CN Xiaoyi (F)"},
	{ID: "zh-HK-HiuMaanNeural", Label: "zh-HK HiuMaan (F, 粤语)"},
	{ID: "zh-HK-HiuGaaiNeural", Label: "zh-HK HiuGaai (F, 粤语)"},
	{ID: "zh-HK-WanLungNeural", Label: "zh-HK WanLung (M, 粤语)"},
	{ID: "en-US-EmmaMultilingualNeural", Label: "en-US Emma (F)"},
	{ID: "en-US-GuyMultilingualNeural", Label: "en-US Guy (M)"},
}

// Request is one piece of text to speak.
type Request struct {
	Text  string
	Voice string

	// Rate and Pitch use edge-tts notation, e.g. "+10%" and "-5Hz".
	Rate  string
	Pitch string
}

// Validate returns r with the text trimmed and empty fields defaulted.
// maxLen <= 0 means DefaultMaxTextLength.
func (r Request) Validate(maxLen int) (Request, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}

	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return r, ErrEmptyText
	}
	if n := utf8.RuneCountInString(r.Text); n > maxLen {
		return r, fmt.Errorf("%w: %d characters, limit %d", ErrTextTooLong, n, maxLen)
	}

	if r.Voice = strings.TrimSpace(r.Voice); r.Voice == "" {
		r.Voice = DefaultVoice
	}
	if r.Rate == "" {
		r.Rate = DefaultRate
	}
	if r.Pitch == "" {
		r.Pitch = DefaultPitch
	}

	if !ratePattern.MatchString(r.Rate) {
		return r, fmt.Errorf("%w: rate %q", ErrInvalidProsody, r.Rate)
	}
	if !pitchPattern.MatchString(r.Pitch) {
		return r, fmt.Errorf("%w: pitch %q", ErrInvalidProsody, r.Pitch)
	}

	return r, nil
}

// Engine turns text into audio.
type Engine interface {
	Synthesize(ctx context.Context, req Request) (*audio.Buffer, error)
}

// Snippet is the label used for synthesized text in header comments.
func Snippet(text string) string {
	return cheader.Snippet(text)
}

// decodeMP3 decodes what edge-tts returns.
func decodeMP3(data []byte) (*audio.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no audio received", ErrSynthesis)
	}

	src, err := mp3.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	defer src.Close()

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	return buf, nil
}

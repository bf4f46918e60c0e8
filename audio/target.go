// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"slices"
)

// Target is the output format the encoder produces.
type Target struct {
	SampleRate int
	Channels   int
}

func (t Target) String() string {
	return fmt.Sprintf("%d Hz/%d ch", t.SampleRate, t.Channels)
}

// Supported sample rates and channel counts used by DefaultOptions.
var (
	defaultSampleRates   = []int{8000, 11025, 16000, 22050, 32000, 44100, 48000, 96000}
	defaultChannelCounts = []int{1, 2}
	defaultTarget        = Target{SampleRate: 16000, Channels: 2}
)

// Options is the immutable set of targets a caller may request.
// Build one with NewOptions or DefaultOptions; the zero value supports
// nothing and resolves every request to the zero Target.
type Options struct {
	sampleRates   []int
	channelCounts []int
	def           Target
	strict        bool
}

// DefaultOptions supports the usual embedded rates, mono and stereo, and
// defaults to 16 kHz stereo. Resolution is permissive.
func DefaultOptions() Options {
	o, _ := NewOptions(defaultSampleRates, defaultChannelCounts, defaultTarget, false)
	return o
}

// NewOptions copies the supported sets. The default must itself be
// supported and channel counts are limited to 1 and 2.
func NewOptions(sampleRates, channelCounts []int, def Target, strict bool) (Options, error) {
	if len(sampleRates) == 0 || len(channelCounts) == 0 {
		return Options{}, fmt.Errorf("%w: empty supported set", ErrUnsupportedTarget)
	}
	for _, r := range sampleRates {
		if r <= 0 {
			return Options{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, r)
		}
	}
	for _, c := range channelCounts {
		if c != 1 && c != 2 {
			return Options{}, fmt.Errorf("%w: %d channels", ErrUnsupportedTarget, c)
		}
	}

	o := Options{
		sampleRates:   slices.Clone(sampleRates),
		channelCounts: slices.Clone(channelCounts),
		def:           def,
		strict:        strict,
	}
	if !o.Supports(def) {
		return Options{}, fmt.Errorf("%w: default %s", ErrUnsupportedTarget, def)
	}

	return o, nil
}

// SampleRates returns a copy of the supported sample rates.
func (o Options) SampleRates() []int { return slices.Clone(o.sampleRates) }

// ChannelCounts returns a copy of the supported channel counts.
func (o Options) ChannelCounts() []int { return slices.Clone(o.channelCounts) }

// Default is the target used for omitted or unsupported values.
func (o Options) Default() Target { return o.def }

// Strict reports whether unsupported values are rejected.
func (o Options) Strict() bool { return o.strict }

// Supports reports whether both fields of t are in the supported sets.
func (o Options) Supports(t Target) bool {
	return slices.Contains(o.sampleRates, t.SampleRate) && slices.Contains(o.channelCounts, t.Channels)
}

// Resolve turns a requested sample rate and channel count into a Target.
// Each field is resolved on its own: zero means "not given" and takes the
// default. An unsupported value also takes the default, unless the options
// are strict, in which case ErrUnsupportedTarget is returned.
// substituted reports whether a non-zero request was replaced.
func (o Options) Resolve(sampleRate, channels int) (t Target, substituted bool, err error) {
	t = o.def

	switch {
	case sampleRate == 0:
	case slices.Contains(o.sampleRates, sampleRate):
		t.SampleRate = sampleRate
	case o.strict:
		return Target{}, false, fmt.Errorf("%w: sample rate %d", ErrUnsupportedTarget, sampleRate)
	default:
		substituted = true
	}

	switch {
	case channels == 0:
	case slices.Contains(o.channelCounts, channels):
		t.Channels = channels
	case o.strict:
		return Target{}, false, fmt.Errorf("%w: %d channels", ErrUnsupportedTarget, channels)
	default:
		substituted = true
	}

	return t, substituted, nil
}

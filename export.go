// SPDX-License-Identifier: EPL-2.0

package pcmexport

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/formats/cheader"
	"github.com/ik5/pcmexport/formats/raw"
	"github.com/ik5/pcmexport/formats/wav"
	"github.com/ik5/pcmexport/naming"
)

// Request describes one export. Zero SampleRate or Channels take the
// configured defaults.
type Request struct {
	SampleRate int
	Channels   int
	Format     Format

	// FileName is the requested output name; its extension is replaced.
	FileName string

	// Label goes into the header comment. Empty means FileName.
	Label string

	// Voice marks synthesized speech in the header comment.
	Voice string
}

// Artifact is an encoded export ready to be written out.
type Artifact struct {
	PCM         *audio.PCM
	Format      Format
	FileName    string
	ContentType string
	Body        []byte

	// TargetSubstituted is set when a requested rate or channel count was
	// unsupported and replaced by the default.
	TargetSubstituted bool
}

// WriteTo writes the body to w.
func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.Body)
	return int64(n), err
}

// Exporter turns decoded audio into artifacts. It holds no mutable state
// and is safe for concurrent use.
type Exporter struct {
	opts audio.Options
	now  func() time.Time
}

// New returns an Exporter limited to the targets in opts.
func New(opts audio.Options) *Exporter {
	return &Exporter{
		opts: opts,
		now:  time.Now,
	}
}

// Options returns the target options the Exporter resolves against.
func (e *Exporter) Options() audio.Options {
	return e.opts
}

// Export resolves the requested target, encodes buf and renders it.
func (e *Exporter) Export(buf *audio.Buffer, req Request) (*Artifact, error) {
	target, substituted, err := e.opts.Resolve(req.SampleRate, req.Channels)
	if err != nil {
		return nil, err
	}

	pcm, err := audio.Encode(buf, target)
	if err != nil {
		return nil, err
	}

	a, err := e.Render(pcm, req)
	if err != nil {
		return nil, err
	}
	a.TargetSubstituted = substituted

	return a, nil
}

// Render packages already encoded PCM. The request's target fields are
// ignored.
func (e *Exporter) Render(pcm *audio.PCM, req Request) (*Artifact, error) {
	format := req.Format
	if format == "" {
		format = DefaultFormat
	}

	a := &Artifact{
		PCM:         pcm,
		Format:      format,
		FileName:    naming.FileName(naming.ResolveBaseName(req.FileName, e.now()), format.Ext()),
		ContentType: format.ContentType(),
	}

	switch format {
	case FormatBin:
		a.Body = raw.Encode(pcm.Samples)

	case FormatWAV:
		var b bytes.Buffer
		b.Grow(44 + pcm.ByteLen())
		if err := wav.WriteWAV16(&b, pcm.SampleRate, pcm.Channels, pcm.Samples); err != nil {
			return nil, fmt.Errorf("rendering wav: %w", err)
		}
		a.Body = b.Bytes()

	case FormatHeader:
		label := req.Label
		if label == "" {
			label = req.FileName
		}
		a.Body = []byte(cheader.Render(pcm.Samples, cheader.Metadata{
			Label:      label,
			Voice:      req.Voice,
			SampleRate: pcm.SampleRate,
			Channels:   pcm.Channels,
		}))

	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	return a, nil
}

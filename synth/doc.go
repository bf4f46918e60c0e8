// SPDX-License-Identifier: EPL-2.0

// Package synth produces speech audio from text with Microsoft Edge's
// online voices.
//
// Two engines are provided. EdgeEngine speaks the service's websocket
// protocol in process through github.com/pp-group/edge-tts-go.
// CommandEngine runs the edge-tts command line tool in a temporary
// directory and supports rate and pitch adjustments. Both decode the MP3
// they receive into an audio.Buffer:
//
//	req, err := synth.Request{Text: text, Voice: voice}.Validate(0)
//	if err != nil {
//	    return err
//	}
//	buf, err := engine.Synthesize(ctx, req)
package synth

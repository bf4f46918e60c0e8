// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ik5/pcmexport/formats/wav"
)

// clearEnv keeps the caller's environment out of config.Load.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{"PORT", "EDGE_TTS_CMD", "FFMPEG_CMD"} {
		t.Setenv(k, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeWAV(t *testing.T, dir, name string, sampleRate, channels int, samples []int16) string {
	t.Helper()

	var b bytes.Buffer
	if err := wav.WriteWAV16(&b, sampleRate, channels, samples); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Usage(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		args []string
		code int
	}{
		{nil, 2},
		{[]string{"bogus"}, 2},
		{[]string{"help"}, 0},
		{[]string{"convert"}, 2},
		{[]string{"convert", "-h"}, 0},
		{[]string{"convert", "-nope"}, 1},
		{[]string{"synth", "-text", "   "}, 2},
	}

	for _, tt := range tests {
		if code, _, stderr := runArgs(tt.args...); code != tt.code {
			t.Errorf("run(%q) = %d, want %d (stderr %q)", tt.args, code, tt.code, stderr)
		}
	}
}

func TestConvert_Bin(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	in := writeWAV(t, dir, "Tone A4.wav", 8000, 1, make([]int16, 800))
	outDir := filepath.Join(dir, "out")

	code, stdout, stderr := runArgs("convert", "-in", in, "-out", outDir, "-rate", "16000", "-channels", "1", "-format", "bin")
	if code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "tone-a4.bin"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) != 1600*2 {
		t.Errorf("output = %d bytes, want 3200", len(data))
	}
	if !strings.Contains(stdout, "16000 Hz/1 ch") || !strings.Contains(stdout, "1600 frames") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestConvert_HeaderSubstituted(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	in := writeWAV(t, dir, "clip.wav", 16000, 2, []int16{1, 2, 3, 4})

	code, stdout, stderr := runArgs("convert", "-in", in, "-out", dir, "-rate", "12345", "-name", "My Clip")
	if code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "my-clip.h"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "audio export: clip.wav (16000 Hz, 2 ch)") {
		t.Errorf("header = %q", data)
	}
	if !strings.Contains(stdout, "note:") {
		t.Errorf("substitution not reported: %q", stdout)
	}
}

func TestConvert_Failures(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	flac := filepath.Join(dir, "song.flac")
	if err := os.WriteFile(flac, []byte("fLaC"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{
		{"convert", "-in", flac, "-out", dir},
		{"convert", "-in", filepath.Join(dir, "missing.wav"), "-out", dir},
	} {
		code, _, stderr := runArgs(args...)
		if code != 1 {
			t.Errorf("run(%q) = %d, want 1", args, code)
		}
		if !strings.HasPrefix(stderr, "pcmexport:") {
			t.Errorf("stderr = %q", stderr)
		}
	}
}

func TestSynth_BadEngine(t *testing.T) {
	clearEnv(t)

	if code, _, _ := runArgs("synth", "-text", "hi", "-engine", "piper"); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
}

func TestSynth_CommandFailure(t *testing.T) {
	clearEnv(t)

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "edge-tts")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho 'service unavailable' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDGE_TTS_CMD", script)

	code, _, stderr := runArgs("synth", "-text", "hello", "-out", dir)
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr, "service unavailable") {
		t.Errorf("stderr = %q", stderr)
	}
}

// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/pcmexport"
	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/synth"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pcmexport.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	if cfg.Server.Port != 5173 {
		t.Errorf("Server.Port = %d, want 5173", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 50 {
		t.Errorf("Server.MaxUploadMB = %d, want 50", cfg.Server.MaxUploadMB)
	}
	if cfg.TTS.Engine != EngineEdge {
		t.Errorf("TTS.Engine = %q, want %q", cfg.TTS.Engine, EngineEdge)
	}
	if cfg.TTS.DefaultVoice != synth.DefaultVoice {
		t.Errorf("TTS.DefaultVoice = %q", cfg.TTS.DefaultVoice)
	}
	if len(cfg.TTS.Voices) != len(synth.DefaultVoices) {
		t.Errorf("TTS.Voices has %d entries, want %d", len(cfg.TTS.Voices), len(synth.DefaultVoices))
	}
	if cfg.FFmpeg.Enabled {
		t.Error("FFmpeg.Enabled = true, want false")
	}
	if cfg.Format() != pcmexport.FormatHeader {
		t.Errorf("Format() = %q, want header", cfg.Format())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	opts, err := cfg.AudioOptions()
	if err != nil {
		t.Fatalf("AudioOptions() error = %v", err)
	}
	if opts.Default() != (audio.Target{SampleRate: 16000, Channels: 2}) {
		t.Errorf("default target = %v", opts.Default())
	}
	if opts.Strict() {
		t.Error("Strict() = true, want false")
	}
}

func TestSetDefaults_DoesNotOverride(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Server: ServerConfig{Port: 8080, MaxUploadMB: 5},
		Audio:  AudioConfig{SampleRates: []int{8000}, Channels: []int{1}, DefaultSampleRate: 8000, DefaultChannels: 1},
		TTS:    TTSConfig{Engine: EngineCommand, DefaultVoice: "en-US-GuyMultilingualNeural", Timeout: time.Second},
		Log:    LogConfig{Level: "debug"},
	}
	setDefaults(cfg)

	if cfg.Server.Port != 8080 || cfg.Server.MaxUploadMB != 5 {
		t.Errorf("server overridden: %+v", cfg.Server)
	}
	if cfg.Audio.DefaultSampleRate != 8000 || len(cfg.Audio.SampleRates) != 1 {
		t.Errorf("audio overridden: %+v", cfg.Audio)
	}
	if cfg.TTS.Engine != EngineCommand || cfg.TTS.Timeout != time.Second {
		t.Errorf("tts overridden: %+v", cfg.TTS)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"PORT":         "9000",
		"EDGE_TTS_CMD": "/opt/edge-tts",
		"FFMPEG_CMD":   "/usr/local/bin/ffmpeg",
		"LOG_LEVEL":    "debug",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{}
	if err := applyEnv(cfg, lookup); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.TTS.Command != "/opt/edge-tts" || cfg.TTS.Engine != EngineCommand {
		t.Errorf("TTS = %+v", cfg.TTS)
	}
	if cfg.FFmpeg.Command != "/usr/local/bin/ffmpeg" || !cfg.FFmpeg.Enabled {
		t.Errorf("FFmpeg = %+v", cfg.FFmpeg)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestApplyEnv_BadPort(t *testing.T) {
	t.Parallel()

	lookup := func(k string) (string, bool) {
		if k == "PORT" {
			return "http", true
		}
		return "", false
	}
	if err := applyEnv(&Config{}, lookup); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("applyEnv() error = %v, want ErrInvalidConfig", err)
	}
}

func TestApplyEnv_Unset(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if err := applyEnv(cfg, noEnv); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 0 || cfg.TTS.Engine != "" || cfg.FFmpeg.Enabled {
		t.Errorf("config changed without env: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"engine", func(c *Config) { c.TTS.Engine = "piper" }},
		{"format", func(c *Config) { c.Audio.DefaultFormat = "mp3" }},
		{"log level", func(c *Config) { c.Log.Level = "trace" }},
		{"unsupported default", func(c *Config) { c.Audio.DefaultSampleRate = 12345 }},
		{"three channels", func(c *Config) { c.Audio.Channels = []int{1, 3} }},
		{"negative upload", func(c *Config) { c.Server.MaxUploadMB = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PCMEXPORT_TEST_VOICE", "zh-HK-HiuMaanNeural")
	t.Setenv("PORT", "")
	t.Setenv("EDGE_TTS_CMD", "")
	t.Setenv("FFMPEG_CMD", "")
	t.Setenv("LOG_LEVEL", "")

	path := writeConfig(t, `
server:
  port: 8081
  shutdown_timeout: 3s
audio:
  sample_rates: [8000, 16000]
  channels: [1]
  default_sample_rate: 8000
  default_channels: 1
  default_format: wav
  strict: true
tts:
  default_voice: ${PCMEXPORT_TEST_VOICE}
  timeout: 30s
ffmpeg:
  enabled: true
log:
  level: warn
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8081 || cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.TTS.DefaultVoice != "zh-HK-HiuMaanNeural" {
		t.Errorf("TTS.DefaultVoice = %q", cfg.TTS.DefaultVoice)
	}
	if cfg.TTS.Timeout != 30*time.Second {
		t.Errorf("TTS.Timeout = %v", cfg.TTS.Timeout)
	}
	if !cfg.FFmpeg.Enabled || cfg.FFmpeg.Command != "ffmpeg" {
		t.Errorf("FFmpeg = %+v", cfg.FFmpeg)
	}
	if cfg.Format() != pcmexport.FormatWAV {
		t.Errorf("Format() = %q", cfg.Format())
	}

	opts, err := cfg.AudioOptions()
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Strict() || opts.Default() != (audio.Target{SampleRate: 8000, Channels: 1}) {
		t.Errorf("options = %v strict=%v", opts.Default(), opts.Strict())
	}
	if cfg.Logger().Level != "warn" {
		t.Errorf("Logger().Level = %q", cfg.Logger().Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("EDGE_TTS_CMD", "")
	t.Setenv("FFMPEG_CMD", "")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8081\nlog:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7000 || cfg.Log.Level != "error" {
		t.Errorf("port=%d level=%q", cfg.Server.Port, cfg.Log.Level)
	}
	if cfg.Addr() != ":7000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoad_Empty(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("EDGE_TTS_CMD", "")
	t.Setenv("FFMPEG_CMD", "")
	t.Setenv("LOG_LEVEL", "")

	for _, path := range []string{"", writeConfig(t, "")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", path, err)
		}
		if cfg.Server.Port != 5173 {
			t.Errorf("Load(%q) port = %d", path, cfg.Server.Port)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("EDGE_TTS_CMD", "")
	t.Setenv("FFMPEG_CMD", "")
	t.Setenv("LOG_LEVEL", "")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
	if _, err := Load(writeConfig(t, "server: [oops")); err == nil {
		t.Error("Load(malformed) error = nil")
	}
	if _, err := Load(writeConfig(t, "server:\n  prot: 1\n")); err == nil {
		t.Error("Load(unknown field) error = nil")
	}
	if _, err := Load(writeConfig(t, "tts:\n  engine: piper\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load(bad engine) error = %v, want ErrInvalidConfig", err)
	}
}

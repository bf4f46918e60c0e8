// SPDX-License-Identifier: EPL-2.0

// Package config loads the pcmexport service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/pcmexport"
	"github.com/ik5/pcmexport/audio"
	"github.com/ik5/pcmexport/internal/logger"
	"github.com/ik5/pcmexport/synth"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Synthesis engines.
const (
	EngineEdge    = "edge"
	EngineCommand = "command"
)

// Config is the top level configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Audio  AudioConfig  `yaml:"audio"`
	TTS    TTSConfig    `yaml:"tts"`
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// MaxUploadMB bounds /api/convert uploads.
	MaxUploadMB int `yaml:"max_upload_mb"`

	// MaxBodyKB bounds JSON request bodies.
	MaxBodyKB int `yaml:"max_body_kb"`

	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AudioConfig describes the targets clients may request.
type AudioConfig struct {
	SampleRates       []int  `yaml:"sample_rates"`
	Channels          []int  `yaml:"channels"`
	DefaultSampleRate int    `yaml:"default_sample_rate"`
	DefaultChannels   int    `yaml:"default_channels"`
	DefaultFormat     string `yaml:"default_format"`

	// Strict rejects unsupported targets instead of substituting defaults.
	Strict bool `yaml:"strict"`

	// RawSampleRate and RawChannels describe headerless .pcm/.raw uploads.
	// Raw input is disabled while either is zero.
	RawSampleRate int `yaml:"raw_sample_rate"`
	RawChannels   int `yaml:"raw_channels"`
}

type TTSConfig struct {
	// Engine is "edge" (in process) or "command" (edge-tts tool).
	Engine        string        `yaml:"engine"`
	Command       string        `yaml:"command"`
	DefaultVoice  string        `yaml:"default_voice"`
	Voices        []synth.Voice `yaml:"voices"`
	MaxTextLength int           `yaml:"max_text_length"`
	Timeout       time.Duration `yaml:"timeout"`
}

// FFmpegConfig enables the ffmpeg fallback for inputs no built-in decoder
// handles.
type FFmpegConfig struct {
	Enabled bool          `yaml:"enabled"`
	Command string        `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads a YAML file, expanding ${VAR} references, then applies
// environment overrides and defaults. An empty path yields the defaults
// with environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}

		expanded := os.Expand(string(data), os.Getenv)

		dec := yaml.NewDecoder(strings.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from PORT, EDGE_TTS_CMD, FFMPEG_CMD and
// LOG_LEVEL.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT %q", ErrInvalidConfig, v)
		}
		cfg.Server.Port = port
	}
	if v, ok := lookup("EDGE_TTS_CMD"); ok && v != "" {
		cfg.TTS.Command = v
		cfg.TTS.Engine = EngineCommand
	}
	if v, ok := lookup("FFMPEG_CMD"); ok && v != "" {
		cfg.FFmpeg.Command = v
		cfg.FFmpeg.Enabled = true
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}

	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5173
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 50
	}
	if cfg.Server.MaxBodyKB == 0 {
		cfg.Server.MaxBodyKB = 2048
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	def := audio.DefaultOptions()
	if len(cfg.Audio.SampleRates) == 0 {
		cfg.Audio.SampleRates = def.SampleRates()
	}
	if len(cfg.Audio.Channels) == 0 {
		cfg.Audio.Channels = def.ChannelCounts()
	}
	if cfg.Audio.DefaultSampleRate == 0 {
		cfg.Audio.DefaultSampleRate = def.Default().SampleRate
	}
	if cfg.Audio.DefaultChannels == 0 {
		cfg.Audio.DefaultChannels = def.Default().Channels
	}
	if cfg.Audio.DefaultFormat == "" {
		cfg.Audio.DefaultFormat = string(pcmexport.DefaultFormat)
	}

	if cfg.TTS.Engine == "" {
		cfg.TTS.Engine = EngineEdge
	}
	if cfg.TTS.Command == "" {
		cfg.TTS.Command = synth.DefaultCommand
	}
	if cfg.TTS.DefaultVoice == "" {
		cfg.TTS.DefaultVoice = synth.DefaultVoice
	}
	if len(cfg.TTS.Voices) == 0 {
		cfg.TTS.Voices = slices.Clone(synth.DefaultVoices)
	}
	if cfg.TTS.MaxTextLength == 0 {
		cfg.TTS.MaxTextLength = synth.DefaultMaxTextLength
	}
	if cfg.TTS.Timeout == 0 {
		cfg.TTS.Timeout = 60 * time.Second
	}

	if cfg.FFmpeg.Command == "" {
		cfg.FFmpeg.Command = "ffmpeg"
	}
	if cfg.FFmpeg.Timeout == 0 {
		cfg.FFmpeg.Timeout = 2 * time.Minute
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks a defaulted configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.MaxUploadMB < 0 || c.Server.MaxBodyKB < 0 {
		return fmt.Errorf("%w: negative size limit", ErrInvalidConfig)
	}

	switch c.TTS.Engine {
	case EngineEdge, EngineCommand:
	default:
		return fmt.Errorf("%w: tts engine %q", ErrInvalidConfig, c.TTS.Engine)
	}
	if c.TTS.MaxTextLength < 0 {
		return fmt.Errorf("%w: max text length %d", ErrInvalidConfig, c.TTS.MaxTextLength)
	}

	switch strings.ToLower(c.Audio.DefaultFormat) {
	case string(pcmexport.FormatBin), string(pcmexport.FormatHeader), string(pcmexport.FormatWAV):
	default:
		return fmt.Errorf("%w: default format %q", ErrInvalidConfig, c.Audio.DefaultFormat)
	}
	if (c.Audio.RawSampleRate < 0) || (c.Audio.RawChannels < 0) {
		return fmt.Errorf("%w: raw input format", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}

	if _, err := c.AudioOptions(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// AudioOptions builds the immutable target options the exporter uses.
func (c *Config) AudioOptions() (audio.Options, error) {
	return audio.NewOptions(
		c.Audio.SampleRates,
		c.Audio.Channels,
		audio.Target{SampleRate: c.Audio.DefaultSampleRate, Channels: c.Audio.DefaultChannels},
		c.Audio.Strict,
	)
}

// Format is the configured default output format.
func (c *Config) Format() pcmexport.Format {
	return pcmexport.ParseFormat(c.Audio.DefaultFormat)
}

// Logger converts the log section for logger.New.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

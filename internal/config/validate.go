package config

import (
	"errors"
	"fmt"

	"aax2mp3/internal/media/format"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAudio() error {
	if _, err := format.Lookup(c.Audio.Format); err != nil {
		return fmt.Errorf("audio.format: %w", err)
	}
	if c.Audio.Processes < 1 {
		return errors.New("audio.processes must be at least 1")
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.FFmpeg == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	if c.Tools.FFprobe == "" {
		return errors.New("tools.ffprobe must be set")
	}
	if c.Tools.MP3splt == "" {
		return errors.New("tools.mp3splt must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

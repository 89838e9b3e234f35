package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"aax2mp3/internal/config"
	"aax2mp3/internal/deps"
	"aax2mp3/internal/history"
	"aax2mp3/internal/logging"
)

type commandContext struct {
	configFlag    *string
	verboseFlag   *bool
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		verboseFlag:   verboseFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the process logger from config plus the persistent flags.
// Flags win over the config file; --verbose forces debug level.
func (c *commandContext) logger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if c.verboseFlag != nil && *c.verboseFlag {
		level = "debug"
	}
	format := cfg.Logging.Format
	if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
		format = strings.TrimSpace(*c.logFormatFlag)
	}
	return logging.New(logging.Options{
		Level:  level,
		Format: format,
		Writer: os.Stderr,
	})
}

func (c *commandContext) binaries(cfg *config.Config) deps.Binaries {
	return deps.Binaries{
		FFmpeg:  cfg.Tools.FFmpeg,
		FFprobe: cfg.Tools.FFprobe,
		MP3splt: cfg.Tools.MP3splt,
	}
}

// openHistory opens the configured history database. A blank path disables
// history entirely; an open failure is reported so callers can degrade to a
// warning.
func (c *commandContext) openHistory(cfg *config.Config) (*history.Store, error) {
	if strings.TrimSpace(cfg.Paths.HistoryDB) == "" {
		return nil, nil
	}
	return history.Open(cfg.Paths.HistoryDB)
}

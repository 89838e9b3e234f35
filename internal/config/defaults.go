package config

const (
	defaultOutputDir = "Audiobooks"
	defaultHistoryDB = "~/.local/share/aax2mp3/history.db"
	defaultFormat    = "mp3"
	defaultProcesses = 1
	defaultFFmpeg    = "ffmpeg"
	defaultFFprobe   = "ffprobe"
	defaultMP3splt   = "mp3splt"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			HistoryDB: defaultHistoryDB,
		},
		Audio: Audio{
			Format:    defaultFormat,
			Processes: defaultProcesses,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
			MP3splt: defaultMP3splt,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

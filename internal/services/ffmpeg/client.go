package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"aax2mp3/internal/media/book"
)

var commandContext = exec.CommandContext

// TranscodeRequest describes the decrypt+transcode stage producing the
// intermediate file.
type TranscodeRequest struct {
	Authcode   string
	InputPath  string
	OutputPath string
	Codec      string
	BitRate    int64
	Channels   int
	Meta       book.Metadata
}

// CoverRequest describes cover art extraction.
type CoverRequest struct {
	Authcode   string
	InputPath  string
	OutputPath string
}

// SplitChapterRequest describes cutting one chapter out of the intermediate
// file.
type SplitChapterRequest struct {
	InputPath  string
	OutputPath string
	Codec      string
	Chapter    book.Chapter
	TrackTotal int
	CoverPath  string // embedded when non-empty
	Meta       book.Metadata
}

// Client defines the ffmpeg operations the conversion driver needs.
type Client interface {
	Transcode(ctx context.Context, req TranscodeRequest) error
	ExtractCover(ctx context.Context, req CoverRequest) error
	SplitChapter(ctx context.Context, req SplitChapterRequest) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithStats enables ffmpeg's encoding statistics line on stderr. Only useful
// on an interactive terminal.
func WithStats(enabled bool) Option {
	return func(c *CLI) {
		c.stats = enabled
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary string
	stats  bool
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// TranscodeArgs returns the argument list for a transcode invocation.
// Exposed so test mode can print the exact command without running it.
func (c *CLI) TranscodeArgs(req TranscodeRequest) []string {
	args := []string{"-loglevel", "error"}
	if c.stats {
		args = append(args, "-stats")
	}
	args = append(args,
		"-activation_bytes", req.Authcode,
		"-n",
		"-i", req.InputPath,
		"-vn",
		"-codec:a", req.Codec,
		"-ab", strconv.FormatInt(req.BitRate, 10),
		"-ac", strconv.Itoa(req.Channels),
		"-map_metadata", "-1",
	)
	args = append(args, metadataArgs(req.Meta)...)
	args = append(args, "-metadata", "track=1/1", req.OutputPath)
	return args
}

// Transcode decrypts and transcodes the AAX input into the intermediate file.
func (c *CLI) Transcode(ctx context.Context, req TranscodeRequest) error {
	if err := validatePaths(req.InputPath, req.OutputPath); err != nil {
		return err
	}
	if strings.TrimSpace(req.Authcode) == "" {
		return errors.New("authcode required")
	}
	return c.run(ctx, c.TranscodeArgs(req))
}

// CoverArgs returns the argument list for a cover extraction invocation.
func (c *CLI) CoverArgs(req CoverRequest) []string {
	return []string{
		"-loglevel", "error",
		"-activation_bytes", req.Authcode,
		"-n",
		"-i", req.InputPath,
		"-an",
		"-codec:v", "copy",
		req.OutputPath,
	}
}

// ExtractCover copies the embedded cover image out of the container.
func (c *CLI) ExtractCover(ctx context.Context, req CoverRequest) error {
	if err := validatePaths(req.InputPath, req.OutputPath); err != nil {
		return err
	}
	if strings.TrimSpace(req.Authcode) == "" {
		return errors.New("authcode required")
	}
	return c.run(ctx, c.CoverArgs(req))
}

// SplitChapterArgs returns the argument list for one chapter cut.
// Seek options come before -i so they apply to the audio input only and keep
// seeking fast; the cover input must not be seeked.
func (c *CLI) SplitChapterArgs(req SplitChapterRequest) []string {
	args := []string{
		"-loglevel", "error",
		"-ss", formatSeconds(req.Chapter.Start),
		"-t", formatSeconds(req.Chapter.Duration()),
		"-i", req.InputPath,
	}
	if req.CoverPath != "" {
		args = append(args,
			"-i", req.CoverPath,
			"-map", "0:a",
			"-map", "1:v",
			"-c:v", "copy",
			"-disposition:v:0", "attached_pic",
		)
	}
	args = append(args,
		"-c:a", req.Codec,
		"-map_metadata", "-1",
		"-metadata", "title="+req.Chapter.Title,
		"-metadata", "artist="+req.Meta.Author,
		"-metadata", "album="+req.Meta.Title,
		"-metadata", "album_artist="+req.Meta.AlbumArtist,
		"-metadata", "date="+req.Meta.Date,
		"-metadata", "genre="+req.Meta.Genre,
		"-metadata", fmt.Sprintf("track=%d/%d", req.Chapter.Index, req.TrackTotal),
		req.OutputPath,
	)
	return args
}

// SplitChapter cuts a single chapter from the intermediate file.
func (c *CLI) SplitChapter(ctx context.Context, req SplitChapterRequest) error {
	if err := validatePaths(req.InputPath, req.OutputPath); err != nil {
		return err
	}
	return c.run(ctx, c.SplitChapterArgs(req))
}

func (c *CLI) run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}

func metadataArgs(meta book.Metadata) []string {
	var args []string
	appendTag := func(key, value string) {
		if value != "" {
			args = append(args, "-metadata", key+"="+value)
		}
	}
	appendTag("title", meta.Title)
	appendTag("artist", meta.Author)
	appendTag("album_artist", meta.AlbumArtist)
	appendTag("album", meta.Title)
	appendTag("date", meta.Date)
	appendTag("genre", meta.Genre)
	appendTag("copyright", meta.Copyright)
	return args
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func validatePaths(input, output string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(output) == "" {
		return errors.New("output path required")
	}
	return nil
}

var _ Client = (*CLI)(nil)

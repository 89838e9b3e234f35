package mp3splt

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"aax2mp3/internal/media/book"
	"aax2mp3/internal/textutil"
)

var commandContext = exec.CommandContext

// mp3splt genre id for Audiobook.
const genreAudiobook = "183"

// Request describes one chapter-split invocation.
type Request struct {
	InputPath string
	DestDir   string
	Chapters  []book.Chapter
	Meta      book.Metadata
}

// Client defines mp3splt splitting behaviour.
type Client interface {
	Split(ctx context.Context, req Request) error
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

// CLI wraps the mp3splt command-line splitter.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "mp3splt"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Splitpoints formats the chapter boundaries the way mp3splt expects:
// minutes.seconds with centisecond precision, covering every chapter start
// plus the end of the last chapter.
func Splitpoints(chapters []book.Chapter) []string {
	if len(chapters) == 0 {
		return nil
	}
	points := make([]string, 0, len(chapters)+1)
	for _, ch := range chapters {
		points = append(points, formatSplitpoint(ch.Start))
	}
	points = append(points, formatSplitpoint(chapters[len(chapters)-1].End))
	return points
}

func formatSplitpoint(seconds float64) string {
	minutes := int(seconds / 60)
	remainder := seconds - float64(minutes)*60
	return fmt.Sprintf("%d.%.2f", minutes, remainder)
}

// Args returns the full argument list for a split invocation. Exposed so
// test mode can print the exact command without running it.
func (c *CLI) Args(req Request) []string {
	args := []string{
		"-T", "12",
		"-o", "@n2 - @t",
		"-g", tagSpec(req.Meta, req.Chapters),
		"-d", req.DestDir,
		req.InputPath,
	}
	return append(args, Splitpoints(req.Chapters)...)
}

// Split cuts the intermediate mp3 into one file per chapter.
func (c *CLI) Split(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.InputPath) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(req.DestDir) == "" {
		return errors.New("destination directory required")
	}
	if len(req.Chapters) == 0 {
		return errors.New("no chapters to split")
	}

	cmd := commandContext(ctx, c.binary, c.Args(req)...)
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

// tagSpec builds the -g argument: shared tags for every split followed by a
// per-chapter title entry. "r" replaces the source tags, "%" marks defaults.
// The -o pattern names output files from @t, so chapter titles go through the
// same sanitizer that predicts chapter filenames elsewhere.
func tagSpec(meta book.Metadata, chapters []book.Chapter) string {
	var b strings.Builder
	b.WriteString("r%[")
	b.WriteString("@N=1")
	writeTag(&b, "@a", meta.Author)
	writeTag(&b, "@b", meta.Title)
	writeTag(&b, "@y", meta.Date)
	b.WriteString(",@g=" + genreAudiobook)
	b.WriteString("]")
	for _, ch := range chapters {
		b.WriteString("[@t=" + escapeTagValue(textutil.SanitizeTitle(ch.Title)) + "]")
	}
	return b.String()
}

func writeTag(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString("," + key + "=" + escapeTagValue(value))
}

// Commas and brackets delimit entries in mp3splt's tag syntax.
var tagValueReplacer = strings.NewReplacer(
	",", " ",
	"[", "(",
	"]", ")",
	"\"", "",
)

func escapeTagValue(value string) string {
	return strings.TrimSpace(tagValueReplacer.Replace(value))
}

var _ Client = (*CLI)(nil)

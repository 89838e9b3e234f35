package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Audible appends edition markers to titles; nobody wants them in filenames.
var (
	abridgedMarker = regexp.MustCompile(`\s*[(](Una|A)bridged[)]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Chapters []Chapter `json:"chapters"`
	Format   Format    `json:"format"`
	raw      []byte
}

// Chapter describes a single chapter entry in the container.
type Chapter struct {
	ID        int64             `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided AAX path and decodes the JSON
// response. The authcode is required; ffprobe cannot open the container
// without activation bytes.
func Inspect(ctx context.Context, binary, authcode, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}
	if strings.TrimSpace(authcode) == "" {
		return Result{}, errors.New("ffprobe inspect: empty authcode")
	}

	cmd := commandContext(ctx, binary,
		"-v", "error",
		"-activation_bytes", authcode,
		"-i", path,
		"-of", "json",
		"-show_chapters",
		"-show_format",
	)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, detail)
	}

	output = abridgedMarker.ReplaceAll(output, nil)
	output = whitespaceRuns.ReplaceAll(output, []byte(" "))

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// RawJSON returns the cleaned ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate := parseFloat(r.Format.BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return int64(rate)
}

// Tag returns the named format tag, or the empty string when absent.
func (r Result) Tag(name string) string {
	return strings.TrimSpace(r.Format.Tags[name])
}

// StartSeconds returns the chapter start offset in seconds.
func (c Chapter) StartSeconds() float64 {
	return parseFloat(c.StartTime)
}

// EndSeconds returns the chapter end offset in seconds.
func (c Chapter) EndSeconds() float64 {
	return parseFloat(c.EndTime)
}

// Title returns the chapter's title tag, falling back to a numbered default.
func (c Chapter) Title(number int) string {
	if title := strings.TrimSpace(c.Tags["title"]); title != "" {
		return title
	}
	return fmt.Sprintf("Chapter %d", number)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

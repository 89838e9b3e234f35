package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"aax2mp3/internal/deps"
	"aax2mp3/internal/fileutil"
	"aax2mp3/internal/history"
	"aax2mp3/internal/logging"
	"aax2mp3/internal/media/book"
	"aax2mp3/internal/media/ffprobe"
	"aax2mp3/internal/media/format"
	"aax2mp3/internal/services"
	"aax2mp3/internal/services/ffmpeg"
	"aax2mp3/internal/services/mp3splt"
)

// ProbeFunc matches ffprobe.Inspect and is injectable for tests.
type ProbeFunc func(ctx context.Context, binary, authcode, path string) (ffprobe.Result, error)

// DriverConfig assembles the collaborators the driver needs.
type DriverConfig struct {
	Options  Options
	Binaries deps.Binaries
	FFmpeg   ffmpeg.Client
	Splitter mp3splt.Client
	Prober   ProbeFunc
	History  *history.Store
	Logger   *slog.Logger
	// TestOutput receives the command lines test mode would have run.
	TestOutput io.Writer
}

// Driver runs the conversion pipeline for one job at a time. It is safe for
// concurrent use by multiple pool workers.
type Driver struct {
	opts     Options
	binaries deps.Binaries
	ffmpeg   ffmpeg.Client
	splitter mp3splt.Client
	prober   ProbeFunc
	store    *history.Store
	logger   *slog.Logger
	testOut  io.Writer
}

// NewDriver validates the configuration and constructs a Driver.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	if cfg.FFmpeg == nil {
		return nil, errors.New("ffmpeg client required")
	}
	if cfg.Splitter == nil {
		return nil, errors.New("mp3splt client required")
	}
	if strings.TrimSpace(cfg.Options.Authcode) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "authcode", "", "authcode required before any decrypt step", nil)
	}
	prober := cfg.Prober
	if prober == nil {
		prober = ffprobe.Inspect
	}
	testOut := cfg.TestOutput
	if testOut == nil {
		testOut = os.Stdout
	}
	return &Driver{
		opts:     cfg.Options,
		binaries: cfg.Binaries,
		ffmpeg:   cfg.FFmpeg,
		splitter: cfg.Splitter,
		prober:   prober,
		store:    cfg.History,
		logger:   logging.WithComponent(cfg.Logger, "convert"),
		testOut:  testOut,
	}, nil
}

// Run executes the pipeline for one job and reports its result. The returned
// Result always carries the failing stage when Err is set.
func (d *Driver) Run(ctx context.Context, job Job) Result {
	started := time.Now()
	res := Result{Job: job}
	logger := d.logger.With(logging.String("job", job.ID), logging.String("input", job.InputPath))

	res = d.run(ctx, logger, job, res)
	res.Duration = time.Since(started)

	if res.Err != nil {
		logger.Error("conversion failed",
			logging.String("stage", res.Stage),
			logging.Error(res.Err),
		)
	} else {
		logger.Info("conversion finished",
			logging.Int("outputs", len(res.Outputs)),
			logging.Duration("took", res.Duration),
		)
	}
	d.record(ctx, logger, res, started)
	return res
}

func (d *Driver) run(ctx context.Context, logger *slog.Logger, job Job, res Result) Result {
	fail := func(stage string, err error) Result {
		res.Stage = stage
		res.Err = err
		return res
	}

	// Validate.
	if err := checkReadable(job.InputPath); err != nil {
		return fail(StageValidate, services.Wrap(services.ErrInput, StageValidate, "", job.InputPath, err))
	}

	// Probe.
	probed, err := d.prober(ctx, d.binaries.FFprobe, d.opts.Authcode, job.InputPath)
	if err != nil {
		return fail(StageProbe, services.Wrap(services.ErrExternalTool, StageProbe, "ffprobe", job.InputPath, err))
	}
	b, err := book.FromProbe(probed)
	if err != nil {
		return fail(StageProbe, services.Wrap(services.ErrInput, StageProbe, "", job.InputPath, err))
	}
	res.Book = b
	logger.Info("probed book",
		logging.String("title", b.Meta.Title),
		logging.String("author", b.Meta.Author),
		logging.Int("chapters", len(b.Chapters)),
	)

	// Mono renditions live beside the stereo ones, never on top of them.
	destDir := b.OutputDir(d.opts.OutputDir)
	if d.opts.Mono {
		destDir += "-mono"
	}
	res.OutputDir = destDir

	// Test mode prints the commands the run would execute and touches
	// nothing on disk.
	if d.opts.Test {
		d.printCommands(job, b, destDir)
		return res
	}

	// Prepare the per-book output directory.
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fail(StagePrepare, services.Wrap(services.ErrOutput, StagePrepare, "", destDir, err))
	}

	// Two jobs converting the same book must not interleave in one
	// directory.
	lockPath := filepath.Join(destDir, ".aax2mp3.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fail(StagePrepare, services.Wrap(services.ErrOutput, StagePrepare, "lock", destDir, err))
	}
	if !locked {
		return fail(StagePrepare, services.Wrap(services.ErrOutput, StagePrepare, "lock", "another job is writing this book", nil))
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	// Metadata snapshot.
	if err := d.writeMetadata(destDir, b); err != nil {
		return fail(StageMetadata, services.Wrap(services.ErrOutput, StageMetadata, "", destDir, err))
	}
	if d.opts.MetadataOnly {
		res.Outputs = []string{filepath.Join(destDir, "metadata.json")}
		return res
	}

	// Cover art.
	coverPath, coverErr := d.extractCover(ctx, job, destDir)
	if d.opts.CoverOnly {
		if coverErr != nil {
			return fail(StageCover, services.Wrap(services.ErrExternalTool, StageCover, "ffmpeg", job.InputPath, coverErr))
		}
		if coverPath != "" {
			res.Outputs = []string{coverPath}
		}
		return res
	}
	if coverErr != nil {
		// A missing cover never fails a conversion.
		logger.Warn("cover extraction failed", logging.Error(coverErr))
		coverPath = ""
	}

	// Decrypt + transcode to the intermediate file.
	intermediate := filepath.Join(destDir, book.IntermediateFileName(job.InputPath, d.opts.Format.Ext))
	if err := d.transcode(ctx, job, b, intermediate); err != nil {
		return fail(StageTranscode, err)
	}

	// Chapter split.
	if d.opts.Single || len(b.Chapters) == 0 {
		if !d.opts.Single {
			logger.Warn("no chapters found, keeping single file")
		}
		res.Outputs = []string{intermediate}
		return res
	}
	outputs, err := d.split(ctx, b, destDir, intermediate, coverPath)
	if err != nil {
		return fail(StageSplit, err)
	}
	res.Outputs = outputs

	// Cleanup.
	if d.opts.Keep {
		res.Outputs = append(res.Outputs, intermediate)
	} else if err := os.Remove(intermediate); err != nil {
		return fail(StageCleanup, services.Wrap(services.ErrOutput, StageCleanup, "", intermediate, err))
	}
	return res
}

func (d *Driver) transcode(ctx context.Context, job Job, b book.Book, intermediate string) error {
	if err := fileutil.PrepareTarget(intermediate, d.opts.Clobber); err != nil {
		return services.Wrap(services.ErrOutput, StageTranscode, "", intermediate, err)
	}
	if err := d.ffmpeg.Transcode(ctx, d.transcodeRequest(job, b, intermediate)); err != nil {
		return services.Wrap(services.ErrExternalTool, StageTranscode, "ffmpeg", job.InputPath, err)
	}
	return nil
}

func (d *Driver) transcodeRequest(job Job, b book.Book, intermediate string) ffmpeg.TranscodeRequest {
	channels := 2
	bitRate := b.Meta.BitRate
	if d.opts.Mono {
		channels = 1
		bitRate /= 2
	}
	return ffmpeg.TranscodeRequest{
		Authcode:   d.opts.Authcode,
		InputPath:  job.InputPath,
		OutputPath: intermediate,
		Codec:      d.opts.Format.Codec,
		BitRate:    bitRate,
		Channels:   channels,
		Meta:       b.Meta,
	}
}

func (d *Driver) extractCover(ctx context.Context, job Job, destDir string) (string, error) {
	coverPath := filepath.Join(destDir, "cover.jpg")
	if fileutil.Exists(coverPath) && !d.opts.Clobber {
		return coverPath, nil
	}
	req := ffmpeg.CoverRequest{
		Authcode:   d.opts.Authcode,
		InputPath:  job.InputPath,
		OutputPath: coverPath,
	}
	if err := fileutil.PrepareTarget(coverPath, d.opts.Clobber); err != nil {
		return "", err
	}
	if err := d.ffmpeg.ExtractCover(ctx, req); err != nil {
		return "", err
	}
	return coverPath, nil
}

func (d *Driver) split(ctx context.Context, b book.Book, destDir, intermediate, coverPath string) ([]string, error) {
	outputs := make([]string, 0, len(b.Chapters))
	for _, ch := range b.Chapters {
		outputs = append(outputs, filepath.Join(destDir, book.ChapterFileName(ch, d.opts.Format.Ext)))
	}
	for _, out := range outputs {
		if err := fileutil.PrepareTarget(out, d.opts.Clobber); err != nil {
			return nil, services.Wrap(services.ErrOutput, StageSplit, "", out, err)
		}
	}

	if d.opts.Format.Splitter == format.SplitterMP3splt {
		req := mp3splt.Request{
			InputPath: intermediate,
			DestDir:   destDir,
			Chapters:  b.Chapters,
			Meta:      b.Meta,
		}
		if err := d.splitter.Split(ctx, req); err != nil {
			return nil, services.Wrap(services.ErrExternalTool, StageSplit, "mp3splt", intermediate, err)
		}
		return outputs, nil
	}

	embed := ""
	if d.opts.Format.EmbedsCover() && coverPath != "" {
		embed = coverPath
	}
	for i, ch := range b.Chapters {
		req := ffmpeg.SplitChapterRequest{
			InputPath:  intermediate,
			OutputPath: outputs[i],
			Codec:      d.opts.Format.Codec,
			Chapter:    ch,
			TrackTotal: len(b.Chapters),
			CoverPath:  embed,
			Meta:       b.Meta,
		}
		if err := d.ffmpeg.SplitChapter(ctx, req); err != nil {
			return nil, services.Wrap(services.ErrExternalTool, StageSplit, "ffmpeg",
				fmt.Sprintf("chapter %d", ch.Index), err)
		}
	}
	return outputs, nil
}

// printCommands writes the external commands a real run would execute, one
// per line, in pipeline order.
func (d *Driver) printCommands(job Job, b book.Book, destDir string) {
	if d.opts.MetadataOnly {
		return
	}
	ffmpegCLI := ffmpeg.NewCLI(ffmpeg.WithBinary(d.binaries.FFmpeg))
	emit := func(binary string, args []string) {
		fmt.Fprintln(d.testOut, binary+" "+strings.Join(args, " "))
	}

	emit(d.binaries.FFmpeg, ffmpegCLI.CoverArgs(ffmpeg.CoverRequest{
		Authcode:   d.opts.Authcode,
		InputPath:  job.InputPath,
		OutputPath: filepath.Join(destDir, "cover.jpg"),
	}))
	if d.opts.CoverOnly {
		return
	}

	intermediate := filepath.Join(destDir, book.IntermediateFileName(job.InputPath, d.opts.Format.Ext))
	emit(d.binaries.FFmpeg, ffmpegCLI.TranscodeArgs(d.transcodeRequest(job, b, intermediate)))
	if d.opts.Single || len(b.Chapters) == 0 {
		return
	}

	if d.opts.Format.Splitter == format.SplitterMP3splt {
		spltCLI := mp3splt.NewCLI(mp3splt.WithBinary(d.binaries.MP3splt))
		emit(d.binaries.MP3splt, spltCLI.Args(mp3splt.Request{
			InputPath: intermediate,
			DestDir:   destDir,
			Chapters:  b.Chapters,
			Meta:      b.Meta,
		}))
		return
	}
	for _, ch := range b.Chapters {
		emit(d.binaries.FFmpeg, ffmpegCLI.SplitChapterArgs(ffmpeg.SplitChapterRequest{
			InputPath:  intermediate,
			OutputPath: filepath.Join(destDir, book.ChapterFileName(ch, d.opts.Format.Ext)),
			Codec:      d.opts.Format.Codec,
			Chapter:    ch,
			TrackTotal: len(b.Chapters),
			Meta:       b.Meta,
		}))
	}
}

type metadataSnapshot struct {
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	AlbumArtist string         `json:"album_artist,omitempty"`
	Date        string         `json:"date,omitempty"`
	Genre       string         `json:"genre,omitempty"`
	Copyright   string         `json:"copyright,omitempty"`
	Duration    float64        `json:"duration_seconds"`
	BitRate     int64          `json:"bit_rate"`
	Chapters    []chapterEntry `json:"chapters"`
}

type chapterEntry struct {
	Index int     `json:"index"`
	Title string  `json:"title"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (d *Driver) writeMetadata(destDir string, b book.Book) error {
	snapshot := metadataSnapshot{
		Title:       b.Meta.Title,
		Author:      b.Meta.Author,
		AlbumArtist: b.Meta.AlbumArtist,
		Date:        b.Meta.Date,
		Genre:       b.Meta.Genre,
		Copyright:   b.Meta.Copyright,
		Duration:    b.Meta.Duration,
		BitRate:     b.Meta.BitRate,
		Chapters:    make([]chapterEntry, 0, len(b.Chapters)),
	}
	for _, ch := range b.Chapters {
		snapshot.Chapters = append(snapshot.Chapters, chapterEntry{
			Index: ch.Index, Title: ch.Title, Start: ch.Start, End: ch.End,
		})
	}
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(destDir, "metadata.json"), append(data, '\n'), 0o644)
}

func (d *Driver) record(ctx context.Context, logger *slog.Logger, res Result, started time.Time) {
	if d.store == nil || d.opts.Test {
		return
	}
	rec := history.Record{
		ID:         res.Job.ID,
		InputPath:  res.Job.InputPath,
		Title:      res.Book.Meta.Title,
		Author:     res.Book.Meta.Author,
		Format:     d.opts.Format.Name,
		Status:     history.StatusDone,
		Chapters:   len(res.Book.Chapters),
		OutputDir:  res.OutputDir,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if res.Err != nil {
		rec.Status = history.StatusFailed
		rec.Stage = res.Stage
		rec.ErrorKind = services.Kind(res.Err)
		rec.Error = res.Err.Error()
	}
	if err := d.store.Add(ctx, rec); err != nil {
		logger.Warn("history record not written", logging.Error(err))
	}
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	return file.Close()
}

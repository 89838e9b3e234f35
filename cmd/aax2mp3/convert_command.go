package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"aax2mp3/internal/authcode"
	"aax2mp3/internal/config"
	"aax2mp3/internal/convert"
	"aax2mp3/internal/deps"
	"aax2mp3/internal/logging"
	"aax2mp3/internal/media/format"
	"aax2mp3/internal/services/ffmpeg"
	"aax2mp3/internal/services/mp3splt"
)

type convertFlags struct {
	authcode     string
	format       string
	outputDir    string
	processes    int
	clobber      bool
	coverOnly    bool
	mono         bool
	single       bool
	keep         bool
	test         bool
	metadataOnly bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert [flags] <input>...",
		Short: "Convert AAX audiobooks into per-chapter audio files",
		Long: `Decrypts each AAX input with the resolved authcode, transcodes it to the
requested format, and splits the result into one file per chapter. Multiple
inputs are converted in parallel when --processes is greater than one.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.authcode, "authcode", "a", "", "Audible activation bytes (hex)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: "+strings.Join(format.Names(), ", "))
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "Base directory for converted books")
	cmd.Flags().IntVarP(&flags.processes, "processes", "p", 0, "Number of inputs to convert in parallel")
	cmd.Flags().BoolVarP(&flags.clobber, "clobber", "c", false, "Overwrite existing output files")
	cmd.Flags().BoolVarP(&flags.coverOnly, "cover-only", "i", false, "Extract cover art only")
	cmd.Flags().BoolVarP(&flags.mono, "mono", "m", false, "Downmix to mono at half the source bitrate")
	cmd.Flags().BoolVarP(&flags.single, "single", "s", false, "Skip chapter splitting, keep one file per book")
	cmd.Flags().BoolVarP(&flags.keep, "keep", "k", false, "Keep the intermediate transcode output")
	cmd.Flags().BoolVarP(&flags.test, "test", "t", false, "Print the commands that would run, run nothing")
	cmd.Flags().BoolVarP(&flags.metadataOnly, "metadata-only", "x", false, "Write the metadata snapshot only")

	return cmd
}

func runConvert(cmd *cobra.Command, ctx *commandContext, flags convertFlags, inputs []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	opts, processes, err := resolveConvertOptions(cfg, flags)
	if err != nil {
		return err
	}

	logger, err := ctx.logger(cfg)
	if err != nil {
		return err
	}

	binaries := ctx.binaries(cfg)
	if err := checkConvertDeps(binaries, opts); err != nil {
		return err
	}

	store, err := ctx.openHistory(cfg)
	if err != nil {
		logger.Warn("history disabled", logging.String("path", cfg.Paths.HistoryDB), logging.Error(err))
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	driver, err := convert.NewDriver(convert.DriverConfig{
		Options:    opts,
		Binaries:   binaries,
		FFmpeg:     newFFmpegClient(binaries),
		Splitter:   mp3splt.NewCLI(mp3splt.WithBinary(binaries.MP3splt)),
		History:    store,
		Logger:     logger,
		TestOutput: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	results := convert.NewPool(driver, processes).Run(cmd.Context(), inputs)
	printConvertSummary(cmd, results, opts)

	if failed := convert.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
	return nil
}

// resolveConvertOptions folds config defaults under the convert flags and
// resolves the authcode chain.
func resolveConvertOptions(cfg *config.Config, flags convertFlags) (convert.Options, int, error) {
	formatName := flags.format
	if formatName == "" {
		formatName = cfg.Audio.Format
	}
	spec, err := format.Lookup(formatName)
	if err != nil {
		return convert.Options{}, 0, err
	}

	outputDir := flags.outputDir
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	processes := flags.processes
	if processes <= 0 {
		processes = cfg.Audio.Processes
	}

	code, _, err := authcode.Resolve(flags.authcode, cfg.Auth.Authcode)
	if err != nil {
		return convert.Options{}, 0, err
	}

	return convert.Options{
		Authcode:     code,
		Format:       spec,
		OutputDir:    outputDir,
		Clobber:      flags.clobber,
		CoverOnly:    flags.coverOnly,
		MetadataOnly: flags.metadataOnly,
		Mono:         flags.mono || cfg.Audio.Mono,
		Single:       flags.single,
		Keep:         flags.keep || cfg.Audio.KeepIntermediate,
		Test:         flags.test,
	}, processes, nil
}

func checkConvertDeps(binaries deps.Binaries, opts convert.Options) error {
	if opts.Test {
		return nil
	}
	splitting := !opts.Single && !opts.CoverOnly && !opts.MetadataOnly
	statuses := deps.CheckBinaries(deps.ForConversion(binaries, opts.Format.Name, splitting))
	if missing := deps.Missing(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (see `aax2mp3 deps`)", strings.Join(missing, ", "))
	}
	return nil
}

// newFFmpegClient enables the encoder progress line only when stderr is an
// interactive terminal.
func newFFmpegClient(binaries deps.Binaries) ffmpeg.Client {
	stats := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return ffmpeg.NewCLI(ffmpeg.WithBinary(binaries.FFmpeg), ffmpeg.WithStats(stats))
}

func printConvertSummary(cmd *cobra.Command, results []convert.Result, opts convert.Options) {
	if opts.Test {
		return
	}
	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "FAILED  %s (%s): %v\n", res.Job.InputPath, res.Stage, res.Err)
			continue
		}
		title := res.Book.Meta.Title
		if title == "" {
			title = res.Job.InputPath
		}
		fmt.Fprintf(out, "done    %s -> %s (%d files, %s)\n",
			title, res.OutputDir, len(res.Outputs), res.Duration.Round(durationPrecision))
	}
}

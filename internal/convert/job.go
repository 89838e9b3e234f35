package convert

import (
	"time"

	"aax2mp3/internal/media/book"
	"aax2mp3/internal/media/format"
)

// Job pairs one input file with its identifier. The resolved options live on
// the driver; they are shared, immutable, and identical for every job in a
// run.
type Job struct {
	ID        string
	InputPath string
}

// Options is the resolved configuration a conversion run operates under.
type Options struct {
	Authcode     string
	Format       format.Spec
	OutputDir    string
	Clobber      bool
	CoverOnly    bool
	MetadataOnly bool
	Mono         bool
	Single       bool
	Keep         bool
	Test         bool
}

// Pipeline stage names used in error reports and history records.
const (
	StageValidate  = "validate"
	StageProbe     = "probe"
	StagePrepare   = "prepare"
	StageMetadata  = "metadata"
	StageCover     = "cover"
	StageTranscode = "transcode"
	StageSplit     = "split"
	StageCleanup   = "cleanup"
)

// Result reports the outcome of one job.
type Result struct {
	Job       Job
	Book      book.Book
	OutputDir string
	Outputs   []string
	Stage     string
	Err       error
	Duration  time.Duration
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	count := 0
	for _, res := range results {
		if res.Err != nil {
			count++
		}
	}
	return count
}

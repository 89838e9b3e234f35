// Package convert implements the per-file conversion pipeline and the
// bounded worker pool that runs it across multiple inputs.
//
// Each job moves through a short linear pipeline: validate the input, probe
// chapters and tags, prepare the per-book output directory, extract cover
// art, decrypt+transcode to the intermediate file, split into chapters, and
// clean up. Any failing stage aborts that job only; jobs share nothing but
// the output directory.
package convert

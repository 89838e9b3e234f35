// Package mp3splt wraps the mp3splt command line for lossless chapter
// splitting of mp3 intermediates.
//
// Unlike the ffmpeg splitter, mp3splt cuts on frame boundaries without
// re-encoding, so mp3 output keeps the exact bits the transcode produced.
// It needs explicit splitpoints including the end of the final chapter; it
// cannot assume end-of-file.
package mp3splt

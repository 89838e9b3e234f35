// Package ffmpeg wraps the ffmpeg command line for the three jobs the
// pipeline delegates to it: decrypting and transcoding an AAX container into
// the intermediate file, extracting embedded cover art, and cutting
// per-chapter files for every format mp3splt does not handle.
package ffmpeg

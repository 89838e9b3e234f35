// Package ffprobe shells out to ffprobe and decodes its JSON output into
// chapter and tag metadata for an AAX container.
//
// AAX files cannot be opened without the account's activation bytes, so every
// inspection passes the resolved authcode. The decoded Result is the single
// source of truth for chapter boundaries, book tags, duration, and bitrate
// used by the rest of the pipeline.
package ffprobe

// Package book models the audiobook metadata and chapter list extracted from
// a probed AAX container.
package book

import (
	"fmt"
	"path/filepath"

	"aax2mp3/internal/media/ffprobe"
	"aax2mp3/internal/textutil"
)

// Chapter is one entry of the ordered chapter list. Offsets are seconds from
// the start of the container.
type Chapter struct {
	Index int // 1-based
	Title string
	Start float64
	End   float64
}

// Duration returns the chapter length in seconds.
func (c Chapter) Duration() float64 {
	return c.End - c.Start
}

// Metadata is the flat tag mapping applied to every chapter output.
type Metadata struct {
	Title       string
	Author      string
	AlbumArtist string
	Date        string
	Genre       string
	Copyright   string
	Duration    float64
	BitRate     int64
}

// Book pairs the tag metadata with the chapter list for one input file.
type Book struct {
	Meta     Metadata
	Chapters []Chapter
}

// FromProbe builds a Book from prober output. Title and author tags must be
// present; chapter offsets must be non-decreasing.
func FromProbe(result ffprobe.Result) (Book, error) {
	meta := Metadata{
		Title:       result.Tag("title"),
		Author:      result.Tag("artist"),
		AlbumArtist: result.Tag("album_artist"),
		Date:        result.Tag("date"),
		Genre:       result.Tag("genre"),
		Copyright:   result.Tag("copyright"),
		Duration:    result.DurationSeconds(),
		BitRate:     result.BitRate(),
	}
	if meta.Title == "" || meta.Author == "" {
		return Book{}, fmt.Errorf("container is missing title/artist tags")
	}

	chapters := make([]Chapter, 0, len(result.Chapters))
	previousStart := 0.0
	for i, ch := range result.Chapters {
		start := ch.StartSeconds()
		end := ch.EndSeconds()
		if start < previousStart || end < start {
			return Book{}, fmt.Errorf("chapter %d has decreasing offsets (start %.3f, end %.3f)", i+1, start, end)
		}
		previousStart = start
		chapters = append(chapters, Chapter{
			Index: i + 1,
			Title: ch.Title(i + 1),
			Start: start,
			End:   end,
		})
	}

	return Book{Meta: meta, Chapters: chapters}, nil
}

// OutputDir returns the per-book output directory under base:
// <base>/<Author>/<Title>, with both components sanitized.
func (b Book) OutputDir(base string) string {
	return filepath.Join(base,
		textutil.SanitizeFileName(b.Meta.Author),
		textutil.SanitizeFileName(b.Meta.Title),
	)
}

// ChapterFileName returns the output filename for a chapter:
// "NN - <Chapter Title>.<ext>".
func ChapterFileName(ch Chapter, ext string) string {
	return fmt.Sprintf("%02d - %s.%s", ch.Index, textutil.SanitizeTitle(ch.Title), ext)
}

// IntermediateFileName returns the name of the decrypted, not-yet-split
// transcode output for the given source file.
func IntermediateFileName(inputPath, ext string) string {
	base := filepath.Base(inputPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	if stem == "" {
		stem = base
	}
	return stem + "." + ext
}

// Package format defines the supported output formats and the external tool
// responsible for chapter-splitting each of them.
package format

import (
	"fmt"
	"sort"
	"strings"
)

// Splitter identifies which external tool performs the chapter split.
type Splitter int

const (
	// SplitterMP3splt splits losslessly with mp3splt. MP3 only.
	SplitterMP3splt Splitter = iota
	// SplitterFFmpeg re-invokes ffmpeg once per chapter.
	SplitterFFmpeg
)

// Spec describes one output format: the ffmpeg codec used to produce it, the
// file extension of the result, and the tool that splits the intermediate
// into chapters.
type Spec struct {
	Name     string
	Codec    string
	Ext      string
	Splitter Splitter
}

// The AAC family ships as-is out of the AAX container (codec copy); mp3,
// flac, and opus are re-encoded. m4b shares the m4a extension and container.
var specs = map[string]Spec{
	"mp3":  {Name: "mp3", Codec: "libmp3lame", Ext: "mp3", Splitter: SplitterMP3splt},
	"aac":  {Name: "aac", Codec: "copy", Ext: "m4a", Splitter: SplitterFFmpeg},
	"m4a":  {Name: "m4a", Codec: "copy", Ext: "m4a", Splitter: SplitterFFmpeg},
	"m4b":  {Name: "m4b", Codec: "copy", Ext: "m4a", Splitter: SplitterFFmpeg},
	"flac": {Name: "flac", Codec: "flac", Ext: "flac", Splitter: SplitterFFmpeg},
	"opus": {Name: "opus", Codec: "libopus", Ext: "opus", Splitter: SplitterFFmpeg},
}

// Lookup resolves a user-supplied format name.
func Lookup(name string) (Spec, error) {
	spec, ok := specs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Spec{}, fmt.Errorf("unsupported format %q (choose one of %s)", name, strings.Join(Names(), ", "))
	}
	return spec, nil
}

// Names returns the supported format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EmbedsCover reports whether cover art can be attached to chapter files of
// this format during the ffmpeg split.
func (s Spec) EmbedsCover() bool {
	switch s.Name {
	case "aac", "m4a", "m4b":
		return true
	default:
		return false
	}
}

package format_test

import (
	"reflect"
	"testing"

	"aax2mp3/internal/media/format"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		name     string
		codec    string
		ext      string
		splitter format.Splitter
	}{
		{"mp3", "libmp3lame", "mp3", format.SplitterMP3splt},
		{"aac", "copy", "m4a", format.SplitterFFmpeg},
		{"m4a", "copy", "m4a", format.SplitterFFmpeg},
		{"m4b", "copy", "m4a", format.SplitterFFmpeg},
		{"flac", "flac", "flac", format.SplitterFFmpeg},
		{"opus", "libopus", "opus", format.SplitterFFmpeg},
	}
	for _, tc := range cases {
		spec, err := format.Lookup(tc.name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tc.name, err)
		}
		if spec.Codec != tc.codec || spec.Ext != tc.ext || spec.Splitter != tc.splitter {
			t.Errorf("Lookup(%q) = %+v", tc.name, spec)
		}
	}
}

func TestLookupNormalizesCase(t *testing.T) {
	spec, err := format.Lookup(" MP3 ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if spec.Name != "mp3" {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}

func TestLookupRejectsUnknown(t *testing.T) {
	if _, err := format.Lookup("wav"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"aac", "flac", "m4a", "m4b", "mp3", "opus"}
	if got := format.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestEmbedsCover(t *testing.T) {
	for name, want := range map[string]bool{"mp3": false, "m4a": true, "m4b": true, "aac": true, "flac": false, "opus": false} {
		spec, err := format.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if spec.EmbedsCover() != want {
			t.Errorf("EmbedsCover(%s) = %v, want %v", name, !want, want)
		}
	}
}

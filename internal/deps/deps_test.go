package deps_test

import (
	"testing"

	"aax2mp3/internal/deps"
)

func testBinaries() deps.Binaries {
	return deps.Binaries{FFmpeg: "ffmpeg", FFprobe: "ffprobe", MP3splt: "mp3splt"}
}

func TestForConversionMP3RequiresSplitter(t *testing.T) {
	reqs := deps.ForConversion(testBinaries(), "mp3", true)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if reqs[2].Name != "mp3splt" || reqs[2].Optional {
		t.Fatalf("mp3splt should be required when splitting: %+v", reqs[2])
	}
}

func TestForConversionMP3MetadataOnly(t *testing.T) {
	reqs := deps.ForConversion(testBinaries(), "mp3", false)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if !reqs[2].Optional {
		t.Fatal("mp3splt should be optional when not splitting")
	}
}

func TestForConversionNonMP3(t *testing.T) {
	reqs := deps.ForConversion(testBinaries(), "flac", true)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements for flac, got %d", len(reqs))
	}
}

func TestCheckBinaries(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Shell", Command: "sh", Description: "present everywhere"},
		{Name: "Ghost", Command: "definitely-not-a-real-binary-zzz"},
		{Name: "Blank", Command: "  "},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected ghost binary to be missing with detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("expected blank command detail: %+v", statuses[2])
	}
}

func TestMissing(t *testing.T) {
	statuses := []deps.Status{
		{Name: "A", Available: true},
		{Name: "B", Available: false},
		{Name: "C", Available: false, Optional: true},
	}
	missing := deps.Missing(statuses)
	if len(missing) != 1 || missing[0] != "B" {
		t.Fatalf("Missing = %v", missing)
	}
}

package textutil_test

import (
	"testing"

	"aax2mp3/internal/textutil"
)

func TestFoldASCII(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café", "Cafe"},
		{"naïve", "naive"},
		{"plain", "plain"},
		{"日本語", ""},
	}
	for _, tc := range cases {
		if got := textutil.FoldASCII(tc.in); got != tc.want {
			t.Errorf("FoldASCII(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"spaces become underscores", "The Great Book", "The_Great_Book"},
		{"quotes removed", `It's a "Test"`, "Its_a_Test"},
		{"slash collapsed", "Part 1/Part 2", "Part_1_Part_2"},
		{"accents folded", "Émile Zola", "Emile_Zola"},
		{"runs collapsed", "a  --  b", "a_--_b"},
		{"empty falls back", "???", "unknown"},
		{"dots kept", "file.name", "file.name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.SanitizeFileName(tc.in); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeTitle(t *testing.T) {
	if got := textutil.SanitizeTitle("Chapter 1: The Beginning"); got != "Chapter 1 The Beginning" {
		t.Fatalf("unexpected title: %q", got)
	}
}

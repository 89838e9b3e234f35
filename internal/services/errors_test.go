package services_test

import (
	"errors"
	"strings"
	"testing"

	"aax2mp3/internal/services"
)

func TestWrapPreservesMarkerAndDetail(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "transcode", "ffmpeg", "book.aax", base)

	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatal("expected external tool marker")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped base error")
	}
	for _, want := range []string{"transcode", "ffmpeg", "book.aax", "exit status 1"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "split", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatal("nil marker should default to external tool")
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrConfiguration, "authcode", "", "missing", nil), "configuration"},
		{services.Wrap(services.ErrInput, "validate", "", "missing file", nil), "input"},
		{services.Wrap(services.ErrOutput, "transcode", "", "exists", nil), "output"},
		{services.Wrap(services.ErrExternalTool, "probe", "ffprobe", "", errors.New("x")), "external-tool"},
		{errors.New("bare"), "unknown"},
	}
	for _, tc := range cases {
		if got := services.Kind(tc.err); got != tc.want {
			t.Errorf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

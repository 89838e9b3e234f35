package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"aax2mp3/internal/logging"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	child := logging.WithComponent(logger, "transcode")
	child.Info("converting", logging.String("input", "book.aax"), logging.Int("chapters", 12))

	line := buf.String()
	if !strings.Contains(line, "INFO transcode: converting") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "input=book.aax") || !strings.Contains(line, "chapters=12") {
		t.Fatalf("missing attributes: %q", line)
	}
}

func TestNewConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("msg", logging.String("title", "A Fine Story"))
	if !strings.Contains(buf.String(), `title="A Fine Story"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("probing", logging.String("input", "book.aax"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON log line: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "probing" || payload["level"] != "debug" || payload["input"] != "book.aax" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Fatalf("level filtering broken: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &buf}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(nil))
}

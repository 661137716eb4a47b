package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogFiltersByHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlog(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx := context.Background()
	if err := logger.Log(ctx, Info("hidden")); err != nil {
		t.Fatalf("log info: %v", err)
	}
	if err := logger.Log(ctx, Error("login failed", slog.String("email", "x@y.com"))); err != nil {
		t.Fatalf("log error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "login failed") || !strings.Contains(out, "email=x@y.com") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRecorderKeepsOrderAndLevel(t *testing.T) {
	rec := &Recorder{MinLevel: slog.LevelInfo}
	ctx := context.Background()
	_ = rec.Log(ctx, Debug("skip"))
	_ = rec.Log(ctx, Info("one"))
	_ = rec.Log(ctx, Warn("two"))

	entries := rec.Entries()
	if len(entries) != 2 || entries[0].Message != "one" || entries[1].Message != "two" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	rec.Reset()
	if len(rec.Entries()) != 0 {
		t.Fatalf("reset did not clear entries")
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARN")
	if err != nil || level != slog.LevelWarn {
		t.Fatalf("ParseLevel(WARN) = %v, %v", level, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestResolveLoggerDefault(t *testing.T) {
	if ResolveLogger(nil) != slog.Default() {
		t.Fatalf("expected slog.Default fallback")
	}
}

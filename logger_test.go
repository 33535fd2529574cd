package pixring

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestSetLoggerNilInstallsDiscard(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	SetLogger(nil)
	if Logger() != discard {
		t.Error("SetLogger(nil) did not restore the discard logger")
	}
	if err := discard.Handler().Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("discard handler Handle() = %v, want nil", err)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	SetLogger(custom)

	if Logger() != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	// Allocation activity must reach the configured handler.
	a, err := New(Size{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	r, err := a.Allocate(10, 10)
	if err != nil {
		t.Fatalf("Allocate() = %v", err)
	}
	r.Release()

	out := buf.String()
	for _, want := range []string{"region allocated", "region released"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestOutOfSpaceLogsWarning(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	a, err := New(Size{Width: 10, Height: 10}, WithCapacityFactor(1))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if _, err := a.Allocate(10, 10); err != nil {
		t.Fatalf("Allocate() = %v", err)
	}
	if _, err := a.Allocate(1, 1); !errors.Is(err, ErrOutOfSpace) {
		t.Fatalf("Allocate() = %v, want ErrOutOfSpace", err)
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected a WARN record, got:\n%s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set the discard logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 50

	for range goroutines {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if Logger() == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}

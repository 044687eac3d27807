package logx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel)
	log.Debug().Msg("hidden")
	log.Info().Str("move", "d3").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "d3") {
		t.Fatalf("info line missing: %q", out)
	}
	if !strings.Contains(out, "logx_test.go:") {
		t.Fatalf("caller not shortened to the file name: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"INFO":  zerolog.InfoLevel,
		"off":   zerolog.Disabled,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("unknown level accepted")
	}
}

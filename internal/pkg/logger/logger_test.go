package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestConfigureWritesComponentJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: zerolog.InfoLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: zerolog.InfoLevel, Pretty: true}) })

	lgr := WithComponent("recorder")
	lgr.Debug().Msg("hidden")
	lgr.Info().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug line to be filtered, got %q", out)
	}
	if !strings.Contains(out, `"component":"recorder"`) || !strings.Contains(out, `"message":"visible"`) {
		t.Errorf("Expected JSON line tagged with component, got %q", out)
	}
}

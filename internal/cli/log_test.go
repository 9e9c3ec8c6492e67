package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/turkshead/pkg/knot/factory"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{log.InfoLevel, false},
		{log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Debug("search space", "candidates", 3)
			logger.Info("traced", "strands", 1)

			out := buf.String()
			if !strings.Contains(out, "strands=1") {
				t.Errorf("info line missing from %q", out)
			}
			if got := strings.Contains(out, "candidates=3"); got != tt.wantDebug {
				t.Errorf("debug line logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("traced")
	if !regexp.MustCompile(`^\d\d:\d\d:\d\d\.\d\d `).MatchString(buf.String()) {
		t.Errorf("line %q does not start with a centisecond clock", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	layers := factory.Layers{{Count: 3, Height: 2}}
	prog.done("Synthesized knots", "layers", layers, "found", 1)

	out := buf.String()
	for _, want := range []string{"Synthesized knots", "layers=3@2", "found=1", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext did not return the attached logger")
	}
	loggerFromContext(ctx).Info("decomposed", "strands", 2)
	if !strings.Contains(buf.String(), "strands=2") {
		t.Errorf("attached logger wrote %q", buf.String())
	}
}

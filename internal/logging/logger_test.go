package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestFor_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: slog.LevelDebug, Output: &buf})

	For(ComponentLoader).Warn("skipped lines", "count", 3, Err(errors.New("bad json")))

	out := buf.String()
	for _, want := range []string{"component=loader", "count=3", `error="bad json"`, "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelFor(false, true), Output: &buf, JSON: true})

	For(ComponentCLI).Warn("hidden")
	For(ComponentCLI).Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("quiet level let a warning through: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("error missing from %s", out)
	}
}

func TestLevelFor(t *testing.T) {
	if LevelFor(true, true) != slog.LevelDebug {
		t.Error("verbose should win over quiet")
	}
	if LevelFor(false, false) != slog.LevelWarn {
		t.Error("default level should be warn")
	}
}

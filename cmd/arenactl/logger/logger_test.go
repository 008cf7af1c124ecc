package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_TextLevels(t *testing.T) {
	var buf bytes.Buffer
	c, err := Init(Options{Level: "warn", Out: &buf})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	L.Info("hidden")
	L.Warn("shown", "len", 42)
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info record passed a warn logger: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "len=42") {
		t.Errorf("warn record missing: %s", buf.String())
	}
}

func TestInit_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arenactl.log")
	c, err := Init(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatal(err)
	}
	L.Debug("arena extended", "by", 4096)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"by":4096`) {
		t.Errorf("unexpected log contents: %s", data)
	}
}

func TestInit_Disabled(t *testing.T) {
	if _, err := Init(Options{}); err != nil {
		t.Fatal(err)
	}
	if L.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("disabled logger should drop everything")
	}
	if _, err := Init(Options{Level: "loud"}); err == nil {
		t.Error("unknown level should fail")
	}
}

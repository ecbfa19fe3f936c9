package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "warn")
	var buf bytes.Buffer
	l := New(&buf)
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at WARN")
	}
	if !strings.Contains(out, "shown") {
		t.Error("expected warning in output")
	}
}

func TestJSONFormat(t *testing.T) {
	t.Setenv(FormatEnv, "json")
	var buf bytes.Buffer
	New(&buf).With("run", "abc").Info("tick", "n", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if rec["run"] != "abc" || rec["msg"] != "tick" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slosh.log")
	l, c, err := ToFile(path)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	l.Info("hello")
	c.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected message in file, got %q", data)
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("boom")
	err := WrapError(base, "load %s", "cfg.yaml")
	if !errors.Is(err, base) {
		t.Error("wrapped error should match base")
	}
	if err.Error() != "load cfg.yaml: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if WrapError(nil, "x") != nil {
		t.Error("expected nil for nil error")
	}
}

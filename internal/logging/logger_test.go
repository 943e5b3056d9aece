package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:      LevelDebug,
		Output:     &buf,
		JSON:       true,
		AddSource:  false,
		TimeFormat: time.RFC3339,
	}

	logger := New(cfg)
	if logger == nil {
		t.Fatal("New logger should not be nil")
	}

	t.Run("Levels", func(t *testing.T) {
		for _, tc := range []struct {
			log func(string, ...any)
			msg string
		}{
			{logger.Debug, "debug msg"},
			{logger.Info, "info msg"},
			{logger.Warn, "warn msg"},
			{logger.Error, "error msg"},
		} {
			buf.Reset()
			tc.log(tc.msg)
			if !strings.Contains(buf.String(), tc.msg) {
				t.Errorf("%q not logged", tc.msg)
			}
		}
	})

	t.Run("DynamicLevel", func(t *testing.T) {
		logger.SetLevel(LevelError)
		if logger.GetLevel() != LevelError {
			t.Error("SetLevel failed")
		}

		buf.Reset()
		logger.Info("should not appear")
		if buf.Len() > 0 {
			t.Error("Logged info message when level was Error")
		}

		logger.SetLevel(LevelDebug)
	})

	t.Run("WithComponent", func(t *testing.T) {
		buf.Reset()
		logger.WithComponent("executor").Info("msg")
		if !strings.Contains(buf.String(), "executor") {
			t.Error("WithComponent missing component field")
		}
	})

	t.Run("WithFields", func(t *testing.T) {
		buf.Reset()
		logger.WithFields(map[string]any{"run_id": "abc"}).Info("msg")
		if !strings.Contains(buf.String(), "run_id") || !strings.Contains(buf.String(), "abc") {
			t.Error("WithFields missing fields")
		}
	})

	t.Run("Audit", func(t *testing.T) {
		buf.Reset()
		logger.Audit("execute", "/sbin/iptables", map[string]any{"stage": "rule"})
		logStr := buf.String()
		if !strings.Contains(logStr, "AUDIT") {
			t.Error("Audit log missing AUDIT message")
		}
		if !strings.Contains(logStr, "/sbin/iptables") {
			t.Error("Audit log missing resource")
		}
	})
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	l.WithComponent("Orchestrator").Info("applying rule", "rule", "allow ssh", "index", 2)
	line := buf.String()

	if !strings.Contains(line, "icewall[") {
		t.Errorf("missing process prefix: %q", line)
	}
	if !strings.Contains(line, "[info] orchestrator: applying rule") {
		t.Errorf("unexpected header: %q", line)
	}
	if !strings.Contains(line, `rule="allow ssh"`) {
		t.Errorf("values with spaces must be quoted: %q", line)
	}
	if !strings.Contains(line, "index=2") {
		t.Errorf("missing attr: %q", line)
	}
	if strings.Count(line, "component=") != 0 {
		t.Errorf("component should be promoted to the header: %q", line)
	}
}

func TestSetPrefix(t *testing.T) {
	defer SetPrefix(GetPrefix())
	SetPrefix("icewall-exec")

	var buf bytes.Buffer
	New(Config{Output: &buf}).Info("hello")
	if !strings.Contains(buf.String(), "icewall-exec[") {
		t.Errorf("prefix not applied: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDefaultLogger(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default logger is nil")
	}

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	SetDefault(New(cfg))

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	Errorf("error %s", "formatted")
	WithComponent("comp").Info("comp msg")

	if buf.Len() == 0 {
		t.Error("Default logger captured no output")
	}
}

func TestSetDefaultIsReturned(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	l := Discard()
	SetDefault(l)
	if Default() != l {
		t.Error("Default did not return the logger given to SetDefault")
	}

	SetDefault(nil)
	if got := Default(); got == nil || got == l {
		t.Error("Default did not create a fresh logger after SetDefault(nil)")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nobody hears this")
}

func TestJSONLogParsing(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf, JSON: true})

	l.Info("json test", "key", "value")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if data["msg"] != "json test" {
		t.Error("JSON msg field incorrect")
	}
	if data["key"] != "value" {
		t.Error("JSON extra field incorrect")
	}
	if data["level"] != "INFO" {
		t.Error("JSON level incorrect")
	}
}

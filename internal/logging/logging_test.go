package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// testLogger creates a logger that writes to a buffer for testing
func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := bolt.NewJSONHandler(buf)
	logger := bolt.New(handler).SetLevel(bolt.TRACE)
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "console" {
		t.Errorf("Format = %s, want console", config.Format)
	}
	if config.Output != os.Stderr {
		t.Errorf("Output = %v, want os.Stderr", config.Output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"warning", bolt.WARN},
		{"ERROR", bolt.ERROR},
		{"unknown", bolt.INFO},
		{"", bolt.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"trace", "debug", "Info", "warn", "warning", "error"} {
		if !ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "verbose", "fatal"} {
		if ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = true, want false", s)
		}
	}
}

func TestStringFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"ChartKind", ChartKind("bar"), `"kind":"bar"`},
		{"FromKind", FromKind("pie"), `"from_kind":"pie"`},
		{"ToKind", ToKind("line"), `"to_kind":"line"`},
		{"IconID", IconID("gas"), `"icon":"gas"`},
		{"Path", Path("out.png"), `"path":"out.png"`},
		{"Component", Component("export"), `"component":"export"`},
		{"Operation", Operation("ingest"), `"operation":"ingest"`},
		{"Str", Str("custom", "value"), `"custom":"value"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := testLogger()
			if tt.field == nil {
				t.Fatalf("%s() returned nil", tt.name)
			}
			tt.field(logger.Info()).Msg("test")

			if !bytes.Contains(buf.Bytes(), []byte(tt.want)) {
				t.Errorf("expected %s in output: %s", tt.want, buf.String())
			}
		})
	}
}

func TestNumericFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"Rows", Rows(5), `"rows":5`},
		{"Series", Series(3), `"series":3`},
		{"Skipped", Skipped(2), `"skipped":2`},
		{"Generation", Generation(7), `"generation":7`},
		{"Count", Count("icons", 12), `"icons":12`},
		{"Duration", Duration(100 * time.Millisecond), `"duration_ms":100`},
		{"Restored", Restored(true), `"restored":true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := testLogger()
			tt.field(logger.Info()).Msg("test")

			if !bytes.Contains(buf.Bytes(), []byte(tt.want)) {
				t.Errorf("expected %s in output: %s", tt.want, buf.String())
			}
		})
	}
}

func TestParamField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	Param("arc.gap_width", "4")(logger.Info()).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"param":"arc.gap_width"`)) {
		t.Errorf("expected param field in output: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"value":"4"`)) {
		t.Errorf("expected value field in output: %s", buf.String())
	}
}

func TestErrorField(t *testing.T) {
	t.Parallel()

	t.Run("with error", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		ErrorField(errors.New("decode failed"))(logger.Info()).Msg("test")

		if !bytes.Contains(buf.Bytes(), []byte(`"error":"decode failed"`)) {
			t.Errorf("expected error field in output: %s", buf.String())
		}
	})

	t.Run("with nil error", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		ErrorField(nil)(logger.Info()).Msg("test")

		if bytes.Contains(buf.Bytes(), []byte(`"error"`)) {
			t.Errorf("unexpected error field in output: %s", buf.String())
		}
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := New(Config{Level: "warn", Format: "json", Output: buf})

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info event written at warn level: %s", buf.String())
	}

	logger.Warn().Msg("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("expected warn event in output: %s", buf.String())
	}
}

func TestNew_IndependentLoggers(t *testing.T) {
	t.Parallel()

	quiet, loud := &bytes.Buffer{}, &bytes.Buffer{}
	a := New(Config{Level: "error", Format: "json", Output: quiet})
	b := New(Config{Level: "debug", Format: "json", Output: loud})

	a.Debug().Msg("dropped")
	b.Debug().Msg("kept")

	if quiet.Len() != 0 {
		t.Errorf("debug event leaked into error-level logger: %s", quiet.String())
	}
	if !bytes.Contains(loud.Bytes(), []byte("kept")) {
		t.Errorf("expected debug event in output: %s", loud.String())
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	if logger == nil {
		t.Fatal("Discard() returned nil")
	}
	logger.Error().Msg("dropped")
}

func TestLogEvent(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	t.Run("Add chains fields", func(t *testing.T) {
		buf.Reset()
		NewEvent(logger.Info()).Add(ChartKind("donut")).Add(Rows(4)).Msg("test")

		if !bytes.Contains(buf.Bytes(), []byte(`"kind":"donut"`)) {
			t.Errorf("expected kind field in output: %s", buf.String())
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"rows":4`)) {
			t.Errorf("expected rows field in output: %s", buf.String())
		}
	})

	t.Run("Send without message", func(t *testing.T) {
		buf.Reset()
		NewEvent(logger.Info()).Add(IconID("tree")).Send()

		if !bytes.Contains(buf.Bytes(), []byte(`"icon":"tree"`)) {
			t.Errorf("expected icon field in output: %s", buf.String())
		}
	})
}

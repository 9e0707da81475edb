package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("test error")
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("strategy", "manytask"), "strategy", "manytask"},
		{"Int", Int("tasks", 8), "tasks", 8},
		{"Uint64", Uint64("seed", 314), "seed", uint64(314)},
		{"Float64", Float64("sum", 1.95), "sum", 1.95},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.wantValue == nil {
				if tt.field.Value != nil {
					t.Errorf("Value = %v, want nil", tt.field.Value)
				}
				return
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

// TestNewLogger tests the component-tagged constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "orchestration")
	logger.Info("hello")

	output := buf.String()
	for _, want := range []string{"orchestration", "hello", `"level":"info"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestZerologAdapter_Levels checks each level method writes message, level and fields.
func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info with fields",
			log:      func(l Logger) { l.Info("strategy done", String("strategy", "twoway"), Int("runs", 60)) },
			contains: []string{"strategy done", "twoway", "60", "info"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("speedup below target", Float64("speedup", 1.2)) },
			contains: []string{"speedup below target", "1.2", "warn"},
		},
		{
			name:     "error with cause",
			log:      func(l Logger) { l.Error("run failed", errors.New("odd length"), String("strategy", "twoway")) },
			contains: []string{"run failed", "odd length", "twoway", "error"},
		},
		{
			name:     "error with nil cause",
			log:      func(l Logger) { l.Error("warning", nil) },
			contains: []string{"warning", "error"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("%d tasks over %d workers", 16, 4) },
			contains: []string{"16 tasks over 4 workers"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("hello", "world") },
			contains: []string{"hello world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(&buf, "test"))
			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests that debug entries respect the logger level.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))
	logger.Debug("chunk plan", Int("chunks", 4))

	if !strings.Contains(buf.String(), "chunk plan") {
		t.Errorf("Debug output should contain message, got: %s", buf.String())
	}

	buf.Reset()
	quiet := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	quiet.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Debug should be filtered at info level, got: %s", buf.String())
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"duration field", Field{Key: "d", Value: 2 * time.Millisecond}, `"d":2`},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("test", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestStdLoggerAdapter tests the standard library fallback.
func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("user action", String("user", "bob")) }, []string{"[INFO]", "user action", "user=bob"}},
		{"warn", func(l Logger) { l.Warn("slow") }, []string{"[WARN]", "slow"}},
		{"debug", func(l Logger) { l.Debug("trace", Int("line", 42)) }, []string{"[DEBUG]", "trace", "line=42"}},
		{"error", func(l Logger) { l.Error("db failed", errors.New("timeout"), String("db", "x")) }, []string{"[ERROR]", "db failed", "error=timeout", "db=x"}},
		{"printf", func(l Logger) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"println", func(l Logger) { l.Println("a", "b", "c") }, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"nonsense", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestLoggerInterface verifies both adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
}

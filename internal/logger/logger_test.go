package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"verbose", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseLevel(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewBuildsBothEncoders(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		l, err := New("debug", pretty)
		if err != nil {
			t.Fatalf("New(pretty=%v) error = %v", pretty, err)
		}
		l.Named("test").Debug("hello", String("k", "v"), Int("n", 1), Bool("b", true))
	}
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	l.Info("ignored")
	l.Errorf("ignored %d", 1)
	_ = l.Sync()
}

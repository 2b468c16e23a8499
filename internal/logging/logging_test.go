package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"debug", "text", logrus.DebugLevel, false},
		{"warn", "json", logrus.WarnLevel, true},
		{"bogus", "", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		logger := New(tt.level, tt.format)
		if logger.GetLevel() != tt.wantLevel {
			t.Errorf("New(%q): expected level %s, got %s", tt.level, tt.wantLevel, logger.GetLevel())
		}
		_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
		if isJSON != tt.wantJSON {
			t.Errorf("New(%q, %q): json formatter = %v, want %v", tt.level, tt.format, isJSON, tt.wantJSON)
		}
	}
}

package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	tests := []struct {
		env, level string
		wantLevel  logrus.Level
		wantJSON   bool
	}{
		{"dev", "debug", logrus.DebugLevel, false},
		{"prod", "warn", logrus.WarnLevel, true},
		{"staging", "bogus", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			Init(tt.env, tt.level)

			if got := Log.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("json formatter = %v, want %v", isJSON, tt.wantJSON)
			}
		})
	}
}

package models

import (
	"testing"
	"time"
)

func TestOptionsConversions(t *testing.T) {
	tests := []struct {
		name        string
		options     Options
		wantTimeout time.Duration
		wantBytes   int64
	}{
		{
			name:        "Defaults",
			options:     Options{Timeout: 120, MaxUploadMB: 20},
			wantTimeout: 2 * time.Minute,
			wantBytes:   20 * 1024 * 1024,
		},
		{
			name:        "Disabled limits",
			options:     Options{},
			wantTimeout: 0,
			wantBytes:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.options.GenerateTimeout(); got != tt.wantTimeout {
				t.Errorf("GenerateTimeout() = %v, want %v", got, tt.wantTimeout)
			}
			if got := tt.options.MaxUploadBytes(); got != tt.wantBytes {
				t.Errorf("MaxUploadBytes() = %v, want %v", got, tt.wantBytes)
			}
		})
	}
}

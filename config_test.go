package inkwell

import (
	"testing"
	"time"
)

func TestSetDefaultsReplacesNonPositiveLimits(t *testing.T) {
	tests := []struct {
		name      string
		upload    int64
		ttl       time.Duration
		wantBytes int64
		wantTTL   time.Duration
	}{
		{"unset", 0, 0, 10 << 20, 2 * time.Hour},
		{"negative", -1, -5 * time.Minute, 10 << 20, 2 * time.Hour},
		{"explicit", 2048, 30 * time.Minute, 2048, 30 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SiteConfig{MaxUploadSize: tt.upload, SubmissionTTL: tt.ttl}
			cfg.setDefaults()
			if cfg.MaxUploadSize != tt.wantBytes {
				t.Errorf("MaxUploadSize = %d, want %d", cfg.MaxUploadSize, tt.wantBytes)
			}
			if cfg.SubmissionTTL != tt.wantTTL {
				t.Errorf("SubmissionTTL = %v, want %v", cfg.SubmissionTTL, tt.wantTTL)
			}
		})
	}
}

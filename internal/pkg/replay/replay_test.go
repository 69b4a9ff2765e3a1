package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuardAllow(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	guard := NewGuard(30 * time.Second)

	tests := []struct {
		name     string
		lastCode string
		lastAt   time.Time
		code     string
		want     bool
	}{
		{
			name: "no prior acceptance",
			code: "123456",
			want: true,
		},
		{
			name:     "different code inside interval",
			lastCode: "123456",
			lastAt:   now.Add(-10 * time.Second),
			code:     "654321",
			want:     true,
		},
		{
			name:     "same code inside interval",
			lastCode: "123456",
			lastAt:   now.Add(-10 * time.Second),
			code:     "123456",
			want:     false,
		},
		{
			name:     "same code exactly at interval",
			lastCode: "123456",
			lastAt:   now.Add(-30 * time.Second),
			code:     "123456",
			want:     true,
		},
		{
			name:     "same code after interval",
			lastCode: "123456",
			lastAt:   now.Add(-31 * time.Second),
			code:     "123456",
			want:     true,
		},
		{
			name:   "zero last accepted time",
			lastAt: time.Time{},
			code:   "123456",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.Allow(tt.lastCode, tt.lastAt, tt.code, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGuardDefaultsInterval(t *testing.T) {
	assert.Equal(t, 30*time.Second, NewGuard(0).Interval())
	assert.Equal(t, 30*time.Second, NewGuard(-time.Minute).Interval())
	assert.Equal(t, time.Minute, NewGuard(time.Minute).Interval())
}

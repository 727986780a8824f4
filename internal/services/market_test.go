package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketOpen(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{
			name: "weekday morning",
			at:   time.Date(2025, 1, 6, 10, 0, 0, 0, ist), // Monday
			want: true,
		},
		{
			name: "weekday just before cutoff",
			at:   time.Date(2025, 1, 6, 13, 59, 59, 0, ist),
			want: true,
		},
		{
			name: "weekday at cutoff",
			at:   time.Date(2025, 1, 6, 14, 0, 0, 0, ist),
			want: false,
		},
		{
			name: "weekday evening",
			at:   time.Date(2025, 1, 6, 18, 30, 0, 0, ist),
			want: false,
		},
		{
			name: "saturday",
			at:   time.Date(2025, 1, 4, 10, 0, 0, 0, ist),
			want: false,
		},
		{
			name: "sunday",
			at:   time.Date(2025, 1, 5, 10, 0, 0, 0, ist),
			want: false,
		},
		{
			name: "UTC input converts to IST",
			// 09:00 UTC is 14:30 IST, past the cutoff
			at:   time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarketOpen(tt.at))
		})
	}
}

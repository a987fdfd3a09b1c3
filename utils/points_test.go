package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHourlyPolicySettle(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		out  time.Time
		want int
	}{
		{name: "ninety minutes floors to one", out: base.Add(90 * time.Minute), want: 1},
		{name: "just under an hour", out: base.Add(59 * time.Minute), want: 0},
		{name: "exactly one hour", out: base.Add(time.Hour), want: 1},
		{name: "three and a half hours", out: base.Add(210 * time.Minute), want: 3},
		{name: "zero duration", out: base, want: 0},
		{name: "inverted pair yields zero", out: base.Add(-time.Hour), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HourlyPolicy{}.Settle(base, tt.out))
		})
	}
}

func TestHalfHourBlockPolicySettle(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		out  time.Time
		want int
	}{
		{name: "ninety minutes is three blocks", out: base.Add(90 * time.Minute), want: 15},
		{name: "twenty-nine minutes is nothing", out: base.Add(29 * time.Minute), want: 0},
		{name: "thirty minutes is one block", out: base.Add(30 * time.Minute), want: 5},
		{name: "inverted pair yields zero", out: base.Add(-time.Minute), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HalfHourBlockPolicy{}.Settle(base, tt.out))
		})
	}
}

func TestPolicyFromName(t *testing.T) {
	assert.Equal(t, PolicyHourly, PolicyFromName("hourly").Name())
	assert.Equal(t, PolicyHalfHourBlock, PolicyFromName("half_hour_block").Name())
	// Unknown names fall back to the hourly default.
	assert.Equal(t, PolicyHourly, PolicyFromName("").Name())
	assert.Equal(t, PolicyHourly, PolicyFromName("per_session").Name())
}

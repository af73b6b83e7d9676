package xtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddTime(t *testing.T) {
	got := AddTime(Timestamp(1000), Duration(500))
	assert.Equal(t, Timestamp(1500), got)

	got = AddTime(Timestamp(1000), Duration(-400))
	assert.Equal(t, Timestamp(600), got)
}

func TestDiffTimes(t *testing.T) {
	assert.Equal(t, Duration(300), DiffTimes(Timestamp(800), Timestamp(500)))
	assert.Equal(t, Duration(-300), DiffTimes(Timestamp(500), Timestamp(800)))
}

func TestFloorTime(t *testing.T) {
	tests := []struct {
		name     string
		ts       Timestamp
		interval Duration
		want     Timestamp
	}{
		{"exact multiple", 120, 60, 120},
		{"mid bucket", 125, 60, 120},
		{"zero", 0, 60, 0},
		{"just under boundary", 59, 60, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FloorTime(tt.ts, tt.interval))
		})
	}
}

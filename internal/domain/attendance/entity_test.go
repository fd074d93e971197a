package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatWorkDuration(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "0 jam 0 menit"},
		{45, "0 jam 45 menit"},
		{60, "1 jam 0 menit"},
		{480, "8 jam 0 menit"},
		{485, "8 jam 5 menit"},
		{605, "10 jam 5 menit"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatWorkDuration(tt.minutes))
	}
}

func TestIsOpen(t *testing.T) {
	record := AttendanceRecord{TimeIn: time.Now()}
	assert.True(t, record.IsOpen())

	out := time.Now()
	record.TimeOut = &out
	assert.False(t, record.IsOpen())
}

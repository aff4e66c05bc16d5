package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeOfDayBefore(t *testing.T) {
	// Zero-padded HH:MM compares correctly as a plain string.
	assert.True(t, TimeOfDay("08:00").Before("09:00"))
	assert.True(t, TimeOfDay("09:59").Before("10:00"))
	assert.False(t, TimeOfDay("10:00").Before("10:00"))
	assert.False(t, TimeOfDay("14:30").Before("09:15"))
}

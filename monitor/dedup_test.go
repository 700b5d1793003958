package monitor

import (
	"testing"

	"github.com/dnldd/trendwatch/shared"
	"github.com/peterldowns/testy/assert"
)

func TestSignalCache(t *testing.T) {
	cache := NewSignalCache()
	key := "NIFTYBEES-5m"

	// Ensure an unseen pair key always warrants an alert.
	assert.True(t, cache.ShouldAlert(key, shared.BullishCrossover))
	assert.True(t, cache.ShouldAlert(key, shared.BearishCrossover))

	// Ensure a recorded signal suppresses repeat alerts for the same pair.
	cache.RecordAlert(key, shared.BullishCrossover)
	assert.False(t, cache.ShouldAlert(key, shared.BullishCrossover))

	// Ensure a changed signal for the same pair warrants a new alert.
	assert.True(t, cache.ShouldAlert(key, shared.BearishCrossover))

	// Ensure recording the changed signal re-arms the previous one.
	cache.RecordAlert(key, shared.BearishCrossover)
	assert.False(t, cache.ShouldAlert(key, shared.BearishCrossover))
	assert.True(t, cache.ShouldAlert(key, shared.BullishCrossover))

	// Ensure pair keys are tracked independently.
	assert.True(t, cache.ShouldAlert("GOLDBEES-15m", shared.BearishCrossover))
}

package monitor

import (
	"sync"

	"github.com/dnldd/trendwatch/shared"
)

// SignalCache tracks the last alerted crossover per monitored pair to
// suppress repeat alerts for an unchanged signal. It is shared by all
// monitor tasks and safe for concurrent use.
//
// The cache is never persisted. A process restart clears alert history,
// so the first crossover observed after a restart is always alerted.
type SignalCache struct {
	mtx     sync.RWMutex
	signals map[string]shared.Crossover
}

// NewSignalCache initializes a new signal cache.
func NewSignalCache() *SignalCache {
	return &SignalCache{
		signals: make(map[string]shared.Crossover),
	}
}

// ShouldAlert checks whether the provided signal for the pair key warrants
// an alert. A signal warrants an alert if none has been recorded for the
// key yet or the recorded signal differs.
func (c *SignalCache) ShouldAlert(key string, signal shared.Crossover) bool {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	last, ok := c.signals[key]
	return !ok || last != signal
}

// RecordAlert records the provided signal as alerted for the pair key.
// Callers must only record after the notifier confirms delivery.
func (c *SignalCache) RecordAlert(key string, signal shared.Crossover) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.signals[key] = signal
}

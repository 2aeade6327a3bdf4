package game

import "time"

// Ticker delivers the one-second game clock. Slow readers miss ticks rather
// than queueing them.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory starts a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.Ticker.C
}

// NewTimeTicker is the production TickerFactory.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

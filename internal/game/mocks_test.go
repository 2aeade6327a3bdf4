package game

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hakimalhazi/Skiblo/internal/engine"
)

// --- WordSource ---

type MockWords struct {
	mock.Mock
}

func (m *MockWords) Draw(k int) []string {
	args := m.Called(k)
	return args.Get(0).([]string)
}

func (m *MockWords) Perm(n int) []int {
	m.Called(n)
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (m *MockWords) Intn(n int) int {
	args := m.Called(n)
	return args.Int(0)
}

func newMockWords() *MockWords {
	w := &MockWords{}
	w.On("Draw", mock.Anything).Return([]string{"Fiets", "Kaas", "Molen"})
	w.On("Perm", mock.Anything)
	w.On("Intn", mock.Anything).Return(0)
	return w
}

// --- Ticker ---

// manualTicker only fires when the test says so. The channel is unbuffered
// so a fire returns once the hub took the tick.
type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

type tickerFactory struct {
	mu       sync.Mutex
	tickers  []*manualTicker
	interval time.Duration
}

func (f *tickerFactory) New(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	f.interval = d
	return t
}

func (f *tickerFactory) lastInterval() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interval
}

func (f *tickerFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func (f *tickerFactory) last(t *testing.T) *manualTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.tickers, "no ticker was started")
	return f.tickers[len(f.tickers)-1]
}

// fire delivers n ticks to the running ticker. The hub swaps tickers when
// the phase changes, so every tick goes to the newest one.
func (f *tickerFactory) fire(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		deadline := time.After(time.Second)
		for sent := false; !sent; {
			select {
			case f.last(t).ch <- time.Now():
				sent = true
			case <-time.After(10 * time.Millisecond):
			case <-deadline:
				t.Fatalf("tick %d was not taken", i+1)
			}
		}
	}
}

// fireEach delivers n ticks to every ticker that was started.
func (f *tickerFactory) fireEach(t *testing.T, n int) {
	t.Helper()
	f.mu.Lock()
	tickers := append([]*manualTicker(nil), f.tickers...)
	f.mu.Unlock()
	for _, ticker := range tickers {
		for i := 0; i < n; i++ {
			select {
			case ticker.ch <- time.Now():
			case <-time.After(time.Second):
				t.Fatalf("tick %d was not taken", i+1)
			}
		}
	}
}

// --- Client messages ---

// drain returns every message queued for c so far.
func drain(t *testing.T, c *Client) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case raw, ok := <-c.send:
			if !ok {
				return out
			}
			var msg Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

// lastState returns the newest state message queued for c.
func lastState(t *testing.T, c *Client) engine.View {
	t.Helper()
	var (
		view  engine.View
		found bool
	)
	for _, msg := range drain(t, c) {
		if msg.Type == TypeState {
			view = engine.View{}
			require.NoError(t, json.Unmarshal(msg.Payload, &view))
			found = true
		}
	}
	require.True(t, found, "no state message queued")
	return view
}

func ofType(msgs []Message, kind string) []Message {
	var out []Message
	for _, m := range msgs {
		if m.Type == kind {
			out = append(out, m)
		}
	}
	return out
}

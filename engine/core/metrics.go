package core

import (
	"sync"
	"time"
)

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling average over the last AVG_COUNT evaluation
// timings, plus lifetime counters.
type Metrics struct {
	mu sync.Mutex

	avgCounter  uint8
	samples     [AVG_COUNT]float64
	filled      uint8
	avgMS       float64
	evaluations uint64
	failures    uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record adds one evaluation that took elapsed and produced failed errors.
func (m *Metrics) Record(elapsed time.Duration, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms := float64(elapsed) / float64(time.Millisecond)
	m.samples[m.avgCounter] = ms
	m.avgCounter = (m.avgCounter + 1) % AVG_COUNT
	if m.filled < AVG_COUNT {
		m.filled++
	}

	sum := 0.0
	for i := uint8(0); i < m.filled; i++ {
		sum += m.samples[i]
	}
	m.avgMS = sum / float64(m.filled)

	m.evaluations++
	if failed > 0 {
		m.failures += uint64(failed)
	}
}

// AverageMS is the mean evaluation time of the recorded window, in milliseconds.
func (m *Metrics) AverageMS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.avgMS
}

func (m *Metrics) Evaluations() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.evaluations
}

func (m *Metrics) Failures() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures
}

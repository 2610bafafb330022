package mocks

import (
	"github.com/mcoot/mafiagame-go/internal/dependencies/random"
)

// MockRandom returns queued results from Intn
type MockRandom struct {
	IntnResults []int
	intnIndex   int
	calls       int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result clamped into [0, n), or 0 once
// the queue is exhausted
func (r *MockRandom) Intn(n int) int {
	r.calls++
	if r.intnIndex >= len(r.IntnResults) || n <= 0 {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if result >= n {
		result = n - 1
	}
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Calls returns how many times Intn has been called
func (r *MockRandom) Calls() int {
	return r.calls
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.calls = 0
}

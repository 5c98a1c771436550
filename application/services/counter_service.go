package services

import "sync/atomic"

// CounterService tracks the number of visits over the process lifetime.
type CounterService struct {
	counter atomic.Int64
}

// NewCounterService creates a counter service
func NewCounterService() *CounterService {
	return &CounterService{}
}

// Increment records one visit.
func (s *CounterService) Increment() {
	s.counter.Add(1)
}

// TotalVisits returns the number of visits recorded so far.
func (s *CounterService) TotalVisits() int64 {
	return s.counter.Load()
}

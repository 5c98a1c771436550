package handlers

import (
	"net/http"

	"bookshop/application/services"
)

// CounterHandler tracks and reports page visits
type CounterHandler struct {
	counter *services.CounterService
}

// NewCounterHandler creates a new counter handler
func NewCounterHandler(counter *services.CounterService) *CounterHandler {
	return &CounterHandler{counter: counter}
}

// Visit handles GET /visit
func (h *CounterHandler) Visit(w http.ResponseWriter, r *http.Request) {
	h.counter.Increment()
	respondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the bookshop"})
}

// Count handles GET /visit/count
func (h *CounterHandler) Count(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int64{"totalVisits": h.counter.TotalVisits()})
}

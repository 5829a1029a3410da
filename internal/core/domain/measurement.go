package domain

import "time"

// Measurement is the outcome of one benchmark scenario.
type Measurement struct {
	Scenario   string    `json:"scenario"`
	Iterations int       `json:"iterations,omitzero"`
	BaselineNs float64   `json:"baseline_ns,omitzero"`
	FastNs     float64   `json:"fast_ns,omitzero"`
	Ratio      float64   `json:"ratio,omitzero"`
	Allocs     uint64    `json:"allocs,omitzero"`
	Copies     uint64    `json:"copies,omitzero"`
	Digest     uint64    `json:"digest,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}

// Sample is one exported metric value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

// Package testutil provides fixture factories that build and persist
// deployment reports (with system fingerprints) and sources (with optional
// options) for tests and development databases.
//
// Each factory offers Build (in memory only), Create (persist) and, for
// reports, CreateBatch.
package testutil

import (
	"math/rand/v2"
	"sync"
)

// IntRange draws an integer from the closed range [lo, hi].
type IntRange interface {
	IntBetween(lo, hi int) int
}

type mathRand struct{}

func (mathRand) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// DefaultRand is the IntRange used when a factory has none configured.
var DefaultRand IntRange = mathRand{}

// RecordingRand returns Value for every draw and records the requested
// ranges.
type RecordingRand struct {
	Value int

	mu    sync.Mutex
	calls [][2]int
}

func (r *RecordingRand) IntBetween(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]int{lo, hi})
	return r.Value
}

// Calls returns the ranges requested so far.
func (r *RecordingRand) Calls() [][2]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][2]int, len(r.calls))
	copy(out, r.calls)
	return out
}

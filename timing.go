// Copyright 2025 The paging Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paging

// Cost constants fixed by the exercise statement.
const (
	// DefaultTLBHitNanos is the TLB lookup time in nanoseconds.
	DefaultTLBHitNanos = 8

	// DefaultMemoryNanos is the main memory access time in
	// nanoseconds.
	DefaultMemoryNanos = 70

	// DefaultTLBHitRate is the fraction of accesses whose
	// translation is found in the TLB.
	DefaultTLBHitRate = 0.9

	// DefaultWalkLevels is the number of page-table levels walked on
	// a TLB miss.
	DefaultWalkLevels = 3
)

// A CostModel estimates the average time to service one memory access
// through a TLB backed by a multi-level page table. The model assumes
// no page faults: every walked entry is in main memory.
type CostModel struct {
	// TLBHitNanos is the cost of a TLB lookup in nanoseconds.
	TLBHitNanos float64

	// MemoryNanos is the cost of one main memory access in
	// nanoseconds.
	MemoryNanos float64

	// TLBHitRate is the fraction of accesses translated by the TLB,
	// between 0 and 1.
	TLBHitRate float64

	// Levels is the number of page-table accesses a TLB miss incurs.
	Levels int
}

// DefaultCostModel returns the cost model fixed by the exercise
// statement: an 8 ns TLB hit, 70 ns memory accesses, a 90% hit rate
// and a three-level walk.
func DefaultCostModel() CostModel {
	return CostModel{
		TLBHitNanos: DefaultTLBHitNanos,
		MemoryNanos: DefaultMemoryNanos,
		TLBHitRate:  DefaultTLBHitRate,
		Levels:      DefaultWalkLevels,
	}
}

// Average returns the expected time of one memory access in
// nanoseconds. A hit pays the TLB lookup; a miss instead walks Levels
// table entries in main memory; every access then pays one final
// memory reference for the data itself.
func (m CostModel) Average() float64 {
	hit := m.TLBHitRate * m.TLBHitNanos
	miss := (1 - m.TLBHitRate) * (float64(m.Levels) * m.MemoryNanos)
	return hit + miss + m.MemoryNanos
}

package paging

import (
	"fmt"
	"math"
	"testing"
)

func TestAverageDefaults(t *testing.T) {
	got := DefaultCostModel().Average()
	const want = 98.2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Average() = %v, want %v", got, want)
	}
	// The formatted value is what the tools print.
	if s := fmt.Sprintf("%.2f", got); s != "98.20" {
		t.Errorf("formatted average = %q, want %q", s, "98.20")
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name  string
		model CostModel
		want  float64
	}{
		{
			name:  "perfect TLB",
			model: CostModel{TLBHitNanos: 8, MemoryNanos: 70, TLBHitRate: 1, Levels: 3},
			want:  78,
		},
		{
			name:  "no TLB hits",
			model: CostModel{TLBHitNanos: 8, MemoryNanos: 70, TLBHitRate: 0, Levels: 3},
			want:  280,
		},
		{
			name:  "four levels",
			model: CostModel{TLBHitNanos: 8, MemoryNanos: 70, TLBHitRate: 0.9, Levels: 4},
			want:  105.2,
		},
		{
			name:  "single level",
			model: CostModel{TLBHitNanos: 8, MemoryNanos: 70, TLBHitRate: 0.9, Levels: 1},
			want:  84.2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.model.Average(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Average() = %v, want %v", got, tt.want)
			}
		})
	}
}

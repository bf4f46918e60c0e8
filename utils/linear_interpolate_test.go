// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestLinearInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		y0, y1 float32
		frac   float64
		want   float32
	}{
		{"start", 0.2, 0.8, 0, 0.2},
		{"midpoint", 0, 1, 0.5, 0.5},
		{"quarter descending", 1, -1, 0.25, 0.5},
		{"flat", -0.3, -0.3, 0.7, -0.3},
		{"end", -1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := LinearInterpolate(tt.y0, tt.y1, tt.frac)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("LinearInterpolate(%v, %v, %v) = %v, want %v",
					tt.y0, tt.y1, tt.frac, got, tt.want)
			}
		})
	}
}

func TestLinearInterpolate_ZeroFracIsExact(t *testing.T) {
	t.Parallel()

	for _, v := range []float32{0.1, -0.7, 0.333333, 1e-7} {
		if got := LinearInterpolate(v, 0.9, 0); got != v {
			t.Errorf("LinearInterpolate(%v, 0.9, 0) = %v, want exact %v", v, got, v)
		}
	}
}

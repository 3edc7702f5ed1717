// Licensed to the Apache Software Foundation (ASF) under one or more
// contributor license agreements.  See the NOTICE file distributed with
// this work for additional information regarding copyright ownership.
// The ASF licenses this file to You under the Apache License, Version 2.0
// (the "License"); you may not use this file except in compliance with
// the License.  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trapezoid

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/integrate"
)

func TestEstimateSingleTrapezoid(t *testing.T) {
	// One trapezoid is just the endpoint average times the width.
	got := Estimate(Square, 2, 4, 1)
	if want := (4.0 + 16.0) / 2 * 2; got != want {
		t.Errorf("Estimate(x², 2, 4, 1) got %v, want %v", got, want)
	}
}

func TestEstimateLinearIsExact(t *testing.T) {
	// The rule is exact for linear integrands at any count.
	got := Estimate(func(x float64) float64 { return 3*x + 1 }, 0, 2, 64)
	if want := 8.0; !scalar.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("Estimate(3x+1, 0, 2, 64) got %v, want %v", got, want)
	}
}

// gonum's integrate.Trapezoidal over the same sample grid is the oracle for
// the composite rule.
func TestEstimateMatchesGonum(t *testing.T) {
	const n = 256
	left, right := -1.5, 2.25
	f := func(x float64) float64 { return math.Exp(-x * x) }

	h := (right - left) / n
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	for i := range xs {
		xs[i] = left + float64(i)*h
		ys[i] = f(xs[i])
	}

	got := Estimate(f, left, right, n)
	want := integrate.Trapezoidal(xs, ys)
	if !scalar.EqualWithinAbs(got, want, 1e-12) {
		t.Errorf("Estimate got %v, gonum trapezoidal gives %v", got, want)
	}
}

func TestSlicePartition(t *testing.T) {
	p := Params{Left: 0, Right: 1, Count: 1024}
	const size = 4

	var (
		prevRight  float64
		totalCount int64
	)
	for rank := 0; rank < size; rank++ {
		left, right, count := p.slice(rank, size)
		if count != 256 {
			t.Errorf("rank %d local count got %v, want 256", rank, count)
		}
		if rank > 0 && left != prevRight {
			t.Errorf("rank %d slice starts at %v, previous ended at %v", rank, left, prevRight)
		}
		prevRight = right
		totalCount += count
	}
	if totalCount != p.Count {
		t.Errorf("slices cover %v trapezoids, want %v", totalCount, p.Count)
	}
	if prevRight != p.Right {
		t.Errorf("last slice ends at %v, want %v", prevRight, p.Right)
	}
}

// A count not divisible by the group size drops the remainder. That's the
// inherited boundary behavior, not an accident.
func TestSliceDropsRemainder(t *testing.T) {
	p := Params{Left: 0, Right: 1, Count: 10}
	_, _, count := p.slice(0, 4)
	if want := int64(2); count != want {
		t.Errorf("local count got %v, want %v", count, want)
	}
}

func TestReadParams(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Params
		wantErr bool
	}{
		{name: "classic", in: "0.0 1.0 1024", want: Params{Left: 0, Right: 1, Count: 1024}},
		{name: "newlines", in: "-2.5\n2.5\n8\n", want: Params{Left: -2.5, Right: 2.5, Count: 8}},
		{name: "empty", in: "", wantErr: true},
		{name: "malformed", in: "zero one many", wantErr: true},
		{name: "truncated", in: "0.0 1.0", wantErr: true},
		{name: "zero count", in: "0.0 1.0 0", wantErr: true},
		{name: "negative count", in: "0.0 1.0 -4", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ReadParams(strings.NewReader(test.in))
			if test.wantErr {
				if err == nil {
					t.Fatalf("ReadParams(%q) succeeded with %+v, want error", test.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadParams(%q) failed: %v", test.in, err)
			}
			if d := cmp.Diff(test.want, got); d != "" {
				t.Errorf("ReadParams(%q) diff (-want, +got):\n%v", test.in, d)
			}
		})
	}
}

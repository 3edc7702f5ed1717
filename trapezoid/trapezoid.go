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

// Package trapezoid estimates definite integrals with the composite
// trapezoidal rule, in parallel across the ranks of an mpi group.
//
// It is the classic teaching arrangement: rank 0 reads the interval bounds
// and trapezoid count, broadcasts them down a binomial tree, every rank
// integrates an equal slice of the interval, and the partial estimates are
// reduced back to rank 0, which reports the total.
package trapezoid

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Integrand is the function being integrated. It must be total over the
// interval: the rule samples it blindly and has no error path.
type Integrand func(x float64) float64

// Square is the canonical example integrand, f(x) = x².
func Square(x float64) float64 { return x * x }

// Params are the integration parameters: the interval [Left, Right] and the
// number of trapezoids to divide it into. Rank 0 owns the authoritative
// copy; after distribution every rank holds an identical one.
type Params struct {
	Left, Right float64
	Count       int64
}

// Width returns the uniform trapezoid base width, identical on every rank.
func (p Params) Width() float64 {
	return (p.Right - p.Left) / float64(p.Count)
}

// slice derives the caller's share of the interval. The count divides
// across ranks by integer division; a non-divisible count silently drops
// the remainder, as the textbook version of this exercise does.
func (p Params) slice(rank, size int) (left, right float64, count int64) {
	h := p.Width()
	count = p.Count / int64(size)
	left = p.Left + float64(rank)*float64(count)*h
	right = left + float64(count)*h
	return left, right, count
}

// ReadParams parses a parameter source: three whitespace-separated values,
// left bound, right bound, trapezoid count, e.g. "0.0 1.0 1024".
//
// The classic exercise leaves input unchecked; here malformed input is an
// error rather than undefined values propagating through the group.
func ReadParams(r io.Reader) (Params, error) {
	var p Params
	if _, err := fmt.Fscan(r, &p.Left, &p.Right, &p.Count); err != nil {
		return Params{}, errors.Wrap(err, "reading integration parameters")
	}
	if p.Count < 1 {
		return Params{}, errors.Errorf("trapezoid count must be positive, got %d", p.Count)
	}
	return p, nil
}

// Estimate computes the composite trapezoidal rule estimate of the integral
// of f over [left, right] with count trapezoids: endpoints at half weight,
// every interior sample at full weight, scaled by the base width.
// Deterministic, O(count), defined for any count >= 1.
func Estimate(f Integrand, left, right float64, count int64) float64 {
	h := (right - left) / float64(count)
	est := (f(left) + f(right)) / 2
	for i := int64(1); i < count; i++ {
		est += f(left + float64(i)*h)
	}
	return est * h
}

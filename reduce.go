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

package mpi

import "context"

// MergeFn folds two partial values into one. It must be commutative and
// associative for the reduction result to be independent of arrival order.
type MergeFn[E Element] func(a, b E) E

// Sum is the stock MergeFn for additive reductions.
func Sum[E Element](a, b E) E { return a + b }

// Max is the stock MergeFn for maximum reductions.
func Max[E Element](a, b E) E {
	if b > a {
		return b
	}
	return a
}

// Reduce folds one value per rank into the root rank and returns the folded
// result there. Every rank must call it with the same root and tag. On
// non-root ranks the return value is the zero Element.
//
// The root gathers with a plain sequential loop of blocking receives in
// ascending rank order. That ordering is just the loop bound: merge is
// required to be commutative, so no protocol depends on it. A logarithmic
// gather tree would be faster at scale; the linear form is kept because it
// is the textbook counterpart to the [Broadcast] tree.
func Reduce[E Element](ctx context.Context, comm *Comm, root, tag int, v E, merge MergeFn[E]) (E, error) {
	if comm.rank != root {
		var zero E
		if err := Send(ctx, comm, root, tag, v); err != nil {
			return zero, err
		}
		return zero, nil
	}
	total := v
	for src := 0; src < comm.Size(); src++ {
		if src == root {
			continue
		}
		part, err := Recv[E](ctx, comm, src, tag)
		if err != nil {
			return total, err
		}
		total = merge(total, part)
	}
	return total, nil
}

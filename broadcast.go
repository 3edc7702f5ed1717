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

import (
	"context"
	"math/bits"
)

// Broadcast delivers root's v to every rank of the group and returns the
// delivered value. Every rank must call it with the same root and tag; on
// non-root ranks the v argument is ignored.
//
// The dissemination is a binomial tree: ceil(log2(P)) rounds, doubling the
// set of holders each round. Round i pairs each holder h with partner
// h+stride/2 (in ranks relative to root); partners beyond the group are
// skipped, so any P >= 1 works, power of two or not. P == 1 performs zero
// rounds.
//
// Each pair communicates at most once per Broadcast, so a single tag is
// safe for the whole collective.
func Broadcast[E Element](ctx context.Context, comm *Comm, root, tag int, v E) (E, error) {
	p := comm.Size()
	if p == 1 {
		return v, nil
	}
	// All tree arithmetic is in ranks relative to root, so any rank may
	// be the source.
	vrank := (comm.rank - root + p) % p
	steps := bits.Len(uint(p - 1)) // ceil(log2(p))
	for stride := 1 << steps; stride > 1; stride /= 2 {
		half := stride / 2
		switch {
		case vrank%stride == 0 && vrank+half < p:
			to := (vrank + half + root) % p
			if err := Send(ctx, comm, to, tag, v); err != nil {
				return v, err
			}
		case vrank%stride == half:
			// Exact-partner match. The broader holder test
			// (vrank%half == 0) would pair some ranks with a
			// sender that never sends when P isn't a power of
			// two.
			from := (vrank - half + root) % p
			var err error
			v, err = Recv[E](ctx, comm, from, tag)
			if err != nil {
				return v, err
			}
		}
	}
	return v, nil
}

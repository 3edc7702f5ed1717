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

package mpi_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"lostluck.dev/mpi-go"
)

// Broadcast must deliver bit-identical copies at every group size, not just
// powers of two. The non-power-of-two sizes are the historically buggy ones
// for stride-based trees.
func TestBroadcast(t *testing.T) {
	for p := 1; p <= 12; p++ {
		t.Run(fmt.Sprintf("size=%d", p), func(t *testing.T) {
			got := make([]float64, p)
			err := mpi.LaunchAndWait(context.Background(), p, func(ctx context.Context, comm *mpi.Comm) error {
				var v float64
				if comm.Rank() == 0 {
					v = math.Pi
				}
				v, err := mpi.Broadcast(ctx, comm, 0, 3, v)
				if err != nil {
					return err
				}
				got[comm.Rank()] = v
				return nil
			}, mpi.Name(t.Name()))
			if err != nil {
				t.Fatalf("launch failed: %v", err)
			}
			want := make([]float64, p)
			for i := range want {
				want[i] = math.Pi
			}
			if d := cmp.Diff(want, got); d != "" {
				t.Errorf("broadcast values diverge, diff (-want, +got):\n%v", d)
			}
		})
	}
}

func TestBroadcastNonZeroRoot(t *testing.T) {
	const (
		p    = 5
		root = 3
	)
	got := make([]int64, p)
	err := mpi.LaunchAndWait(context.Background(), p, func(ctx context.Context, comm *mpi.Comm) error {
		var v int64
		if comm.Rank() == root {
			v = 1 << 40
		}
		v, err := mpi.Broadcast(ctx, comm, root, 0, v)
		if err != nil {
			return err
		}
		got[comm.Rank()] = v
		return nil
	}, mpi.Name(t.Name()))
	if err != nil {
		t.Fatalf("launch failed: %v", err)
	}
	for rank, v := range got {
		if want := int64(1 << 40); v != want {
			t.Errorf("rank %d got %v, want %v", rank, v, want)
		}
	}
}

// A group of one performs zero communication rounds and returns the input.
func TestBroadcastSingleRank(t *testing.T) {
	err := mpi.LaunchAndWait(context.Background(), 1, func(ctx context.Context, comm *mpi.Comm) error {
		v, err := mpi.Broadcast(ctx, comm, 0, 0, 7.25)
		if err != nil {
			return err
		}
		if got, want := v, 7.25; got != want {
			t.Errorf("broadcast got %v, want %v", got, want)
		}
		return nil
	}, mpi.Name(t.Name()))
	if err != nil {
		t.Fatalf("launch failed: %v", err)
	}
}

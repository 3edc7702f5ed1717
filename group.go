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
	"fmt"
	"log/slog"

	"golang.org/x/exp/constraints"
)

// Element constrains the payload types the runtime can transmit.
// Scalars only, matching what the classic MPI datatypes cover for this
// package's purposes.
type Element interface {
	constraints.Integer | constraints.Float
}

// message is the unit of transfer between two ranks. The payload is held
// encoded so receivers always decode a private copy.
type message struct {
	tag  int
	data []byte
}

// group is the static membership of a launch: the size, and one synchronous
// channel per ordered pair of ranks. mesh[from][to] carries messages from
// rank from to rank to; the diagonal is nil, a rank never messages itself.
//
// Membership is fixed at construction. There is no join or leave.
type group struct {
	size int
	mesh [][]chan message
}

func newGroup(size int) *group {
	mesh := make([][]chan message, size)
	for from := range mesh {
		mesh[from] = make([]chan message, size)
		for to := range mesh[from] {
			if from == to {
				continue
			}
			mesh[from][to] = make(chan message)
		}
	}
	return &group{size: size, mesh: mesh}
}

// Comm is a rank's handle on its group, passed to every worker at launch.
// It is valid only for the duration of the launch that created it.
//
// Modelling the group as an explicit value rather than ambient process
// state keeps workers testable at any simulated size.
type Comm struct {
	rank int
	g    *group
	log  *slog.Logger
}

// Rank returns the caller's identity within the group, 0 <= Rank < Size.
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the group.
func (c *Comm) Size() int { return c.g.size }

// Log returns a logger carrying the launch and rank attributes.
func (c *Comm) Log() *slog.Logger { return c.log }

// checkPeer validates the other end of a point-to-point operation.
func (c *Comm) checkPeer(peer int) error {
	switch {
	case peer < 0 || peer >= c.g.size:
		return fmt.Errorf("mpi: rank %d out of range for group of %d", peer, c.g.size)
	case peer == c.rank:
		return fmt.Errorf("mpi: rank %d messaging itself would block forever", c.rank)
	}
	return nil
}

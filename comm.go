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
	"fmt"

	"lostluck.dev/mpi-go/coders"
)

// Send transmits v to the destination rank with the given tag, blocking
// until the destination's matching [Recv], or until ctx is done.
//
// The payload is encoded before handoff, so the receiver always observes a
// copy. The receive must name the same element type and tag; mismatches
// surface as errors on the receiving side.
func Send[E Element](ctx context.Context, comm *Comm, to, tag int, v E) error {
	if err := comm.checkPeer(to); err != nil {
		return err
	}
	enc := coders.NewEncoder()
	coders.MakeCoder[E]().Encode(enc, v)
	select {
	case comm.g.mesh[comm.rank][to] <- message{tag: tag, data: enc.Data()}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mpi: send from %d to %d: %w", comm.rank, to, ctx.Err())
	}
}

// Recv blocks until the source rank sends a message, or until ctx is done,
// and returns the decoded payload.
//
// The message must carry the expected tag and an element of type E. A
// mismatch means the two sides disagree on the protocol, and is returned as
// an error rather than silently mis-decoded.
func Recv[E Element](ctx context.Context, comm *Comm, from, tag int) (E, error) {
	var zero E
	if err := comm.checkPeer(from); err != nil {
		return zero, err
	}
	select {
	case m := <-comm.g.mesh[from][comm.rank]:
		if m.tag != tag {
			return zero, fmt.Errorf("mpi: recv on %d from %d: got tag %d, want %d", comm.rank, from, m.tag, tag)
		}
		v, err := coders.MakeCoder[E]().Decode(coders.NewDecoder(m.data))
		if err != nil {
			return zero, fmt.Errorf("mpi: recv on %d from %d: %w", comm.rank, from, err)
		}
		return v, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("mpi: recv on %d from %d: %w", comm.rank, from, ctx.Err())
	}
}

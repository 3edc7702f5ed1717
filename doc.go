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

// Package mpi is a small message-passing runtime in the style of MPI,
// intended for teaching parallel communication patterns without a cluster,
// a launcher, or cgo.
//
// A fixed group of ranks is launched as goroutines joined by a static mesh
// of synchronous channels. Each rank is handed a [Comm] identifying it
// within the group, and communicates only through point-to-point [Send] and
// [Recv] calls, or through collectives built on top of them ([Broadcast],
// [Reduce]).
//
// All communication is blocking: a send suspends the caller until the
// matching receive occurs on the peer, mirroring MPI's synchronous mode.
// Between a single pair of ranks, messages with the same tag arrive in send
// order. There is no ordering guarantee across pairs.
//
// Payloads are scalars, encoded to bytes on send and decoded on receive, so
// a value never crosses a rank boundary by reference.
//
// Differences from a real MPI:
//   - Ranks share an address space. Nothing stops a worker closure from
//     capturing shared state, but anything sent through the runtime is copied.
//   - A missing peer doesn't hang the program forever. Cancelling the launch
//     context unblocks every pending operation with the context's error.
package mpi

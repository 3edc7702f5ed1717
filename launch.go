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
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"lostluck.dev/mpi-go/internal/commopts"
)

// Worker is the body of a rank. It's invoked once per rank with that rank's
// communicator, and its return is the rank's exit. Communication after a
// peer has returned blocks until the launch context is cancelled.
type Worker func(ctx context.Context, comm *Comm) error

// LaunchAndWait runs worker on every rank of a fresh group of the given
// size, and blocks until all ranks have returned. Returning from the worker
// is the collective shutdown: the call completes only when the whole group
// has exited.
//
// Any size >= 1 is accepted. The size is supplied by the caller, never
// negotiated, matching an external process launcher.
//
// If a worker returns an error, the context passed to the remaining workers
// is cancelled, unblocking any in-flight operations, and the first error is
// returned, annotated with its rank.
func LaunchAndWait(ctx context.Context, size int, worker Worker, opts ...Options) error {
	var opt commopts.Struct
	opt.Join(opts...)

	if size < 1 {
		return fmt.Errorf("mpi: group size must be at least 1, got %d", size)
	}

	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	name := opt.Name
	if name == "" {
		name = "mpi"
	}
	logger = logger.With(
		slog.String("launch", name),
		slog.String("launchID", uuid.NewString()),
		slog.Int("size", size))

	g := newGroup(size)
	eg, egctx := errgroup.WithContext(ctx)
	logger.Debug("launching group")
	for rank := 0; rank < size; rank++ {
		comm := &Comm{rank: rank, g: g, log: logger.With(slog.Int("rank", rank))}
		eg.Go(func() error {
			if err := worker(egctx, comm); err != nil {
				return fmt.Errorf("rank %d: %w", comm.rank, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Debug("group failed", "error", err)
		return err
	}
	logger.Debug("group finished")
	return nil
}

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
	"context"
	"fmt"
	"io"
	"log/slog"

	"lostluck.dev/mpi-go"
)

// The whole protocol runs on a single fixed tag, as the classic exercise
// does. Each ordered rank pair exchanges at most one broadcast message and
// one reduction message, so one tag is unambiguous.
const jobTag = 0

// Job is one parallel integration: where the parameters come from, what to
// integrate, and where rank 0 writes the report.
//
// The zero value of F integrates [Square]. Source is consumed and Output is
// written only by rank 0.
type Job struct {
	// Name labels the launch in log output.
	Name string
	// F is the integrand. Defaults to Square.
	F Integrand
	// Source supplies the integration parameters, read once by rank 0.
	Source io.Reader
	// Output receives rank 0's echo of the inputs and the final report.
	Output io.Writer
	// Log is the base logger for the launch. Defaults to slog.Default.
	Log *slog.Logger
}

// Launch runs the job across procs ranks and blocks until the whole group
// has finished. Identical inputs and procs produce byte-identical output.
func (j *Job) Launch(ctx context.Context, procs int) error {
	opts := []mpi.Options{mpi.Name(j.name())}
	if j.Log != nil {
		opts = append(opts, mpi.Logger(j.Log))
	}
	return mpi.LaunchAndWait(ctx, procs, j.run, opts...)
}

func (j *Job) name() string {
	if j.Name == "" {
		return "trapezoid"
	}
	return j.Name
}

func (j *Job) integrand() Integrand {
	if j.F == nil {
		return Square
	}
	return j.F
}

// run is the per-rank worker.
func (j *Job) run(ctx context.Context, comm *mpi.Comm) error {
	var p Params
	if comm.Rank() == 0 {
		var err error
		if p, err = ReadParams(j.Source); err != nil {
			return err
		}
		fmt.Fprintf(j.Output, "The input values were: a=%f b=%f n=%d\n", p.Left, p.Right, p.Count)
	}

	p, err := distribute(ctx, comm, p)
	if err != nil {
		return err
	}

	left, right, count := p.slice(comm.Rank(), comm.Size())
	var local float64
	if count > 0 {
		// More ranks than trapezoids leaves this rank an empty slice.
		local = Estimate(j.integrand(), left, right, count)
	}
	comm.Log().Debug("local estimate",
		"left", left, "right", right, "count", count, "estimate", local)

	total, err := mpi.Reduce(ctx, comm, 0, jobTag, local, mpi.Sum[float64])
	if err != nil {
		return err
	}

	if comm.Rank() == 0 {
		fmt.Fprintf(j.Output, "With n = %d trapezoids, our estimate\n", p.Count)
		fmt.Fprintf(j.Output, "of the integral from %f to %f = %.15e\n", p.Left, p.Right, total)
	}
	return nil
}

// distribute broadcasts rank 0's parameters to the group, one field per
// collective. The field order is the protocol: left bound, right bound,
// count, the same on every rank.
func distribute(ctx context.Context, comm *mpi.Comm, p Params) (Params, error) {
	var (
		out Params
		err error
	)
	if out.Left, err = mpi.Broadcast(ctx, comm, 0, jobTag, p.Left); err != nil {
		return out, err
	}
	if out.Right, err = mpi.Broadcast(ctx, comm, 0, jobTag, p.Right); err != nil {
		return out, err
	}
	if out.Count, err = mpi.Broadcast(ctx, comm, 0, jobTag, p.Count); err != nil {
		return out, err
	}
	return out, nil
}

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
	"log/slog"

	"lostluck.dev/mpi-go/internal/commopts"
)

// Options configure LaunchAndWait with specific features.
// Each function takes a variadic list of options, where properties
// set in later options override the value of previously set properties.
type Options = commopts.Options

// Name sets the name of the launch, typically to make its log output easier
// to tell apart from other launches in the same process.
func Name(name string) Options {
	return &commopts.Struct{
		Name: name,
	}
}

// Logger sets the logger the launch and its per-rank loggers derive from.
// When unset, [slog.Default] is used.
func Logger(l *slog.Logger) Options {
	return &commopts.Struct{
		Logger: l,
	}
}

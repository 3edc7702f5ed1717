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

// mpitrap launches a parallel trapezoidal-rule integration.
//
// It stands in for an external process launcher: the group size comes from
// the -procs flag, not from the program. The integration parameters are read
// from a plain text file of three whitespace-separated values,
// "left right count", and the estimate is printed on standard output.
//
// A YAML job file may supply the same settings; flags set explicitly on the
// command line win over file values.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/jba/slog/handlers/loghandler"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
	"lostluck.dev/mpi-go/trapezoid"
)

// Config holds the launch settings, whichever source they came from.
type Config struct {
	Name    string `yaml:"name"`
	Procs   int    `yaml:"procs"`
	Input   string `yaml:"input"`
	Verbose bool   `yaml:"verbose"`
}

func initFlags(cfg *Config) {
	flag.IntVar(&cfg.Procs, "procs", runtime.NumCPU(), "number of cooperating ranks to launch")
	flag.StringVar(&cfg.Input, "input", "trapezoid-inputs.txt", "path of the integration parameter file")
	flag.StringVar(&cfg.Name, "name", "", "name of the launch in log output")
	flag.BoolVar(&cfg.Verbose, "v", false, "enable debug logging")
}

var jobFile = flag.String("job", "", "optional YAML job file; explicit flags override its values")

// loadJob overlays the YAML job file onto cfg, keeping any flag the user
// set on the command line.
func loadJob(cfg *Config, path string, set map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading job file")
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.Wrapf(err, "parsing job file %v", path)
	}
	merge(cfg, file, set)
	return nil
}

func merge(cfg *Config, file Config, set map[string]bool) {
	if file.Name != "" && !set["name"] {
		cfg.Name = file.Name
	}
	if file.Procs > 0 && !set["procs"] {
		cfg.Procs = file.Procs
	}
	if file.Input != "" && !set["input"] {
		cfg.Input = file.Input
	}
	if file.Verbose && !set["v"] {
		cfg.Verbose = file.Verbose
	}
}

func main() {
	var cfg Config
	initFlags(&cfg)
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if *jobFile != "" {
		if err := loadJob(&cfg, *jobFile, set); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(loghandler.New(os.Stderr, &slog.HandlerOptions{Level: level}))

	src, err := os.Open(cfg.Input)
	if err != nil {
		logger.Error("opening parameter file", "error", err)
		os.Exit(1)
	}
	defer src.Close()

	job := &trapezoid.Job{
		Name:   cfg.Name,
		Source: src,
		Output: os.Stdout,
		Log:    logger,
	}
	if err := job.Launch(context.Background(), cfg.Procs); err != nil {
		logger.Error("job failed", "error", err)
		os.Exit(1)
	}
}

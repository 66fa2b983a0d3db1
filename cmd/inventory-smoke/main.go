/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/nscaledev/inventory-smoke/pkg/options"
	"github.com/nscaledev/inventory-smoke/pkg/smoke"
)

func main() {
	var options options.Options

	options.AddFlags(pflag.CommandLine)

	pflag.Parse()

	config, err := options.Config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := options.SetupLogging(config.DebugLogging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.V(1).Info("smoke test starting", "baseURL", config.BaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := smoke.NewFromConfig(config, os.Stdout, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Check failures are only reported, the exit code reflects whether the
	// run could be carried out at all.
	if _, err := runner.Run(ctx); err != nil {
		logger.Error(err, "run halted")
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

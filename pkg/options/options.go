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

package options

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nscaledev/inventory-smoke/pkg/api"
)

// Options are command line options.  Flags take precedence over the
// environment, which in turn takes precedence over .env files.
type Options struct {
	flags *pflag.FlagSet

	EnvFiles       []string
	BaseURL        string
	RequestTimeout time.Duration
	NewQuantity    int
	Debug          bool
	LogFormat      string
	ValidateSchema bool
}

// AddFlags registers flags with the provided flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	o.flags = f

	f.StringSliceVar(&o.EnvFiles, "env-file", []string{".env", "test/.env"}, ".env files to load, missing files are ignored")
	f.StringVar(&o.BaseURL, "base-url", api.DefaultBaseURL, "Base URL of the inventory API")
	f.DurationVar(&o.RequestTimeout, "request-timeout", 0, "Timeout for each request, zero means none")
	f.IntVar(&o.NewQuantity, "quantity", api.DefaultNewQuantity, "Quantity written by the update check and expected by the listing check")
	f.BoolVar(&o.Debug, "debug", false, "Enable debug logging")
	f.StringVar(&o.LogFormat, "log-format", "console", "Log format, one of console or json")
	f.BoolVar(&o.ValidateSchema, "validate-schema", false, "Warn when traffic does not match the API schema")
}

func (o *Options) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

// Config loads the environment and applies any flags that were set.
func (o *Options) Config() (*api.Config, error) {
	config, err := api.LoadConfig(o.EnvFiles...)
	if err != nil {
		return nil, err
	}

	if o.changed("base-url") {
		config.BaseURL = o.BaseURL
	}

	if o.changed("request-timeout") {
		config.RequestTimeout = o.RequestTimeout
	}

	if o.changed("quantity") {
		config.NewQuantity = o.NewQuantity
	}

	if o.changed("debug") {
		config.DebugLogging = o.Debug
	}

	if o.changed("validate-schema") {
		config.ValidateSchema = o.ValidateSchema
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SetupLogging creates a logger writing to stderr, leaving stdout for the
// report.
func (o *Options) SetupLogging(debug bool) (logr.Logger, error) {
	var config zap.Config

	switch o.LogFormat {
	case "json":
		config = zap.NewProductionConfig()
	case "console":
		config = zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
	default:
		return logr.Discard(), fmt.Errorf("%w: unknown log format %q", api.ErrInvalidConfig, o.LogFormat)
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building logger: %w", err)
	}

	return zapr.NewLogger(logger), nil
}

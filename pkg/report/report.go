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

// Package report prints smoke test outcomes in a fixed human readable format.
package report

import (
	"fmt"
	"io"
)

// Outcome is the result of a single check.  Optional fields are only printed
// when set, and only for failures, with the exception of Info.
type Outcome struct {
	Name   string
	Passed bool

	// Expected and Actual are printed as a pair, and only when both are set.
	Expected *string
	Actual   *string

	Request      *string
	ResponseBody *string

	// Info qualifies a pass, e.g. an observed value.
	Info *string

	// Message is a free form explanation of a failure.
	Message *string
}

type Reporter struct {
	out io.Writer
}

func New(out io.Writer) *Reporter {
	return &Reporter{
		out: out,
	}
}

// Report prints the outcome.  Write errors are ignored, reporting never fails
// a run.
func (r *Reporter) Report(o Outcome) {
	if o.Passed {
		if o.Info != nil {
			r.printf("%s: PASSED (%s)\n", o.Name, *o.Info)
			return
		}

		r.printf("%s: PASSED\n", o.Name)

		return
	}

	r.printf("%s: FAILED\n", o.Name)

	if o.Request != nil && *o.Request != "" {
		r.printf("  Request: %s\n", *o.Request)
	}

	if o.Expected != nil && o.Actual != nil {
		r.printf("  Expected: %s, Got: %s\n", *o.Expected, *o.Actual)
	}

	if o.ResponseBody != nil && *o.ResponseBody != "" {
		r.printf("  Response Body: %s\n", *o.ResponseBody)
	}

	if o.Message != nil {
		r.printf("  %s\n", *o.Message)
	}
}

// Skip prints a notice that the remaining checks will not run.
func (r *Reporter) Skip(notice string) {
	r.printf("%s\n", notice)
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

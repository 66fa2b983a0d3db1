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

package smoke

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/nscaledev/inventory-smoke/pkg/api"
	"github.com/nscaledev/inventory-smoke/pkg/report"
)

var ErrUnknownStage = errors.New("unknown stage")

// Skip notices, printed when a run stops early.
const (
	NoTokenNotice   = "Login failed. Skipping further tests."
	NoProductNotice = "Product creation failed. Skipping further tests."
)

type Stage string

const (
	StageRegister       Stage = "register"
	StageLogin          Stage = "login"
	StageCreateProduct  Stage = "create-product"
	StageUpdateQuantity Stage = "update-quantity"
	StageListProducts   Stage = "list-products"
)

// State is the terminal state of a run.
type State string

const (
	StateCompleted      State = "completed"
	StateAbortedNoToken State = "aborted-early-no-token"
	StateAbortedNoItem  State = "aborted-early-no-item"
)

// Result records what a run did.  State is empty when the run was halted by
// a transport error.
type Result struct {
	State    State
	Stages   []Stage
	Outcomes []report.Outcome
}

func (r *Result) Passed() int {
	var n int

	for _, o := range r.Outcomes {
		if o.Passed {
			n++
		}
	}

	return n
}

func (r *Result) Failed() int {
	return len(r.Outcomes) - r.Passed()
}

// Runner sequences the checks, threading the token and product ID between
// them.
type Runner struct {
	client      Client
	reporter    *report.Reporter
	logger      logr.Logger
	credentials api.Credentials
	product     api.Product
	newQuantity int
}

// New creates a runner for the given configuration.
func New(client Client, reporter *report.Reporter, config *api.Config, logger logr.Logger) *Runner {
	return &Runner{
		client:      client,
		reporter:    reporter,
		logger:      logger,
		credentials: config.Credentials(),
		product:     api.SampleProduct(),
		newQuantity: config.NewQuantity,
	}
}

// NewFromConfig creates a runner talking to the configured API and reporting
// to out.
func NewFromConfig(config *api.Config, out io.Writer, logger logr.Logger) (*Runner, error) {
	client, err := api.NewAPIClient(config, api.WithLogger(logger.WithName("client")))
	if err != nil {
		return nil, err
	}

	return New(client, report.New(out), config, logger), nil
}

// run holds state derived during a single run.
type run struct {
	token     string
	productID string
	result    *Result
}

// transition is the outcome of executing a stage, either the next stage or
// a terminal state.
type transition struct {
	next     Stage
	terminal State
}

// Run executes the checks.  Check failures are reported and do not produce an
// error, only a failure to reach the API does.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	s := &run{
		result: &Result{},
	}

	stage := StageRegister

	for {
		s.result.Stages = append(s.result.Stages, stage)

		t, err := r.execute(ctx, stage, s)
		if err != nil {
			return s.result, fmt.Errorf("stage %s: %w", stage, err)
		}

		if t.terminal != "" {
			s.result.State = t.terminal

			r.logger.Info("run finished", "state", s.result.State, "passed", s.result.Passed(), "failed", s.result.Failed())

			return s.result, nil
		}

		stage = t.next
	}
}

func (r *Runner) record(s *run, stage Stage, outcome report.Outcome) {
	r.logger.V(1).Info("stage finished", "stage", stage, "check", outcome.Name, "passed", outcome.Passed)

	s.result.Outcomes = append(s.result.Outcomes, outcome)
	r.reporter.Report(outcome)
}

func (r *Runner) abort(state State, notice string) transition {
	r.reporter.Skip(notice)

	return transition{terminal: state}
}

//nolint:cyclop
func (r *Runner) execute(ctx context.Context, stage Stage, s *run) (transition, error) {
	switch stage {
	case StageRegister:
		outcome, err := Register(ctx, r.client, r.credentials)
		if err != nil {
			return transition{}, err
		}

		// Registration never gates, the account may already exist.
		r.record(s, stage, outcome)

		return transition{next: StageLogin}, nil
	case StageLogin:
		outcome, token, err := Login(ctx, r.client, r.credentials)
		if err != nil {
			return transition{}, err
		}

		r.record(s, stage, outcome)

		if token == "" {
			return r.abort(StateAbortedNoToken, NoTokenNotice), nil
		}

		s.token = token

		return transition{next: StageCreateProduct}, nil
	case StageCreateProduct:
		outcome, productID, err := CreateProduct(ctx, r.client, s.token, r.product)
		if err != nil {
			return transition{}, err
		}

		r.record(s, stage, outcome)

		if productID == "" {
			return r.abort(StateAbortedNoItem, NoProductNotice), nil
		}

		s.productID = productID

		return transition{next: StageUpdateQuantity}, nil
	case StageUpdateQuantity:
		outcome, err := UpdateQuantity(ctx, r.client, s.token, s.productID, r.newQuantity)
		if err != nil {
			return transition{}, err
		}

		r.record(s, stage, outcome)

		return transition{next: StageListProducts}, nil
	case StageListProducts:
		// The listing must reflect the quantity just written.
		outcome, err := ListProducts(ctx, r.client, s.token, r.product.Name, r.newQuantity)
		if err != nil {
			return transition{}, err
		}

		r.record(s, stage, outcome)

		return transition{terminal: StateCompleted}, nil
	}

	return transition{}, fmt.Errorf("%w: %s", ErrUnknownStage, stage)
}

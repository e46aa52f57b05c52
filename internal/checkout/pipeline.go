package checkout

import (
	"context"

	"go.uber.org/multierr"

	"github.com/pageturne/storefront-backend/pkg/logger"
	"github.com/pageturne/storefront-backend/pkg/metrics"
)

// StepPolicy declares what a step failure means for the rest of the pipeline.
type StepPolicy int

const (
	// AbortOnFailure stops the pipeline and reports the error to the shopper.
	AbortOnFailure StepPolicy = iota
	// LogAndContinue records the failure and keeps going: once the order row
	// exists, the shopper's checkout is not blocked by follow-up steps. This
	// can leave an order with missing items or un-decremented stock; the
	// asymmetry is intentional and covered by tests.
	LogAndContinue
)

// Step is one fallible stage of the order creation sequence.
type Step struct {
	Name   string
	Policy StepPolicy
	Run    func(ctx context.Context) error
}

// runPipeline executes steps strictly in order. The returned nonFatal error
// aggregates every LogAndContinue failure; a non-nil fatal error means an
// AbortOnFailure step failed and nothing after it ran.
func runPipeline(ctx context.Context, steps []Step, logg *logger.Logger, m *metrics.CheckoutMetrics) (nonFatal error, fatal error) {
	for _, step := range steps {
		err := step.Run(ctx)
		if err == nil {
			continue
		}

		m.IncStepFailure(step.Name)

		if step.Policy == AbortOnFailure {
			return nonFatal, err
		}

		if logg != nil {
			stepCtx := logg.WithField(ctx, "step", step.Name)
			logg.Error(stepCtx, "checkout step failed, continuing", err)
		}
		nonFatal = multierr.Append(nonFatal, err)
	}
	return nonFatal, nil
}

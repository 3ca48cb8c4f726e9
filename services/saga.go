package services

import (
	"context"
	"log"
)

// sagaStep is a single unit of a multi-step workflow. A step that leaves
// durable effects behind supplies a compensating action to undo them; steps
// that only read or that talk to systems which clean up after themselves
// (an unpaid gateway intent simply expires) leave compensate nil.
type sagaStep struct {
	name       string
	execute    func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// runSaga executes steps in order. On the first failure it compensates the
// already-completed steps in reverse and returns that step's error.
func runSaga(ctx context.Context, steps []sagaStep) error {
	var completed []sagaStep

	for _, step := range steps {
		if err := step.execute(ctx); err != nil {
			for i := len(completed) - 1; i >= 0; i-- {
				prev := completed[i]
				if prev.compensate == nil {
					continue
				}
				if cerr := prev.compensate(ctx); cerr != nil {
					log.Printf("failed to compensate step %s: %v", prev.name, cerr)
				}
			}
			return err
		}
		completed = append(completed, step)
	}
	return nil
}

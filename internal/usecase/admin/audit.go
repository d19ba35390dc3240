package admin

import (
	"context"
	"fmt"

	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/infra/audit"
)

// record stores the outcome of an attempted mutation. Recorder failures
// only produce a warning.
func (w Workflow) record(ctx context.Context, session Session, event audit.Event, err error) {
	if w.Recorder == nil {
		return
	}
	event.Time = w.now().UTC()
	event.Operator = session.Operator
	event.Org = w.Org
	event.Outcome = outcomeOf(err)
	if err != nil {
		event.Detail = err.Error()
	}
	if recErr := w.Recorder.Record(ctx, event); recErr != nil {
		w.warn(fmt.Sprintf("Failed to write audit record for %s: %v", event.Action, recErr))
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return audit.OutcomeSucceeded
	case registry.KindOf(err) == registry.KindVerificationUncertain:
		return audit.OutcomeUncertain
	default:
		return audit.OutcomeFailed
	}
}

// Where: internal/infra/audit/audit.go
// What: Mutation audit records and recorder fan-out.
// Why: Leave a trail of every membership and access change an operator makes.
package audit

import (
	"context"
	"errors"
	"time"
)

// Outcome values stored with each event.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeUncertain = "uncertain"
)

// Event describes one attempted mutation.
type Event struct {
	Time     time.Time `json:"time"`
	Operator string    `json:"operator"`
	Org      string    `json:"org"`
	Action   string    `json:"action"`
	Group    string    `json:"group,omitempty"`
	User     string    `json:"user,omitempty"`
	Repo     string    `json:"repo,omitempty"`
	Outcome  string    `json:"outcome"`
	Detail   string    `json:"detail,omitempty"`
}

// Recorder persists events.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }

// Multi records to every recorder and joins their errors.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, event Event) error {
	var errs []error
	for _, recorder := range m {
		if recorder == nil {
			continue
		}
		if err := recorder.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ABOUTME: Submit workflow shared by every form in the TUI
// ABOUTME: Idle -> Submitting -> Succeeded | Failed, with Close resetting to Idle

package modal

import "errors"

// Status is the position of a form in its submit workflow
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy is returned by Begin while a submission is in flight
var ErrBusy = errors.New("submission already in progress")

// Workflow tracks one form's submission. Each Begin is followed by exactly
// one Finish.
type Workflow struct {
	status Status
	err    error
}

// Status returns the current state
func (w *Workflow) Status() Status {
	return w.status
}

// Err returns the error from the last failed submission
func (w *Workflow) Err() error {
	return w.err
}

// Busy reports whether a submission is in flight
func (w *Workflow) Busy() bool {
	return w.status == Submitting
}

// Begin moves to Submitting. It fails with ErrBusy if already submitting.
func (w *Workflow) Begin() error {
	if w.status == Submitting {
		return ErrBusy
	}
	w.status = Submitting
	w.err = nil
	return nil
}

// Finish records the outcome of the call started by Begin. It is ignored
// unless a submission is in flight.
func (w *Workflow) Finish(err error) {
	if w.status != Submitting {
		return
	}
	if err != nil {
		w.status = Failed
		w.err = err
		return
	}
	w.status = Succeeded
}

// Close returns to Idle from any state
func (w *Workflow) Close() {
	w.status = Idle
	w.err = nil
}

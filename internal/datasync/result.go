// ABOUTME: Tagged union for the lifecycle of one remote read
// ABOUTME: Every page renders from a Result instead of loose loading/error flags

package datasync

// State is the phase of a remote read
type State int

const (
	Idle State = iota
	Loading
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "idle"
	}
}

// Result holds exactly one of: nothing, in-flight, data, or an error
type Result[T any] struct {
	State State
	Data  T
	Err   error
}

// Start returns a Loading result with no data
func Start[T any]() Result[T] {
	return Result[T]{State: Loading}
}

// Done returns a Success result carrying data
func Done[T any](data T) Result[T] {
	return Result[T]{State: Success, Data: data}
}

// Fail returns a Failure result. Any previous data is discarded.
func Fail[T any](err error) Result[T] {
	return Result[T]{State: Failure, Err: err}
}

// From builds a Success or Failure result from a call's return values
func From[T any](data T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Done(data)
}

func (r Result[T]) Loading() bool { return r.State == Loading }
func (r Result[T]) Ok() bool      { return r.State == Success }
func (r Result[T]) Failed() bool  { return r.State == Failure }

// Message returns the error text, or "" when not failed
func (r Result[T]) Message() string {
	if r.State != Failure || r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

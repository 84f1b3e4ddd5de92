package eval

import "github.com/robert-mccausland/nash/internal/value"

// returnSignal unwinds execBlock/execStatement back to the enclosing
// function call when a `return` statement runs. Nash has no exceptions
// (spec.md §6: "no user-level try/catch"), so control flow that must
// cross statement boundaries is modeled as a distinguished error type
// rather than a sentinel Value, mirroring how the teacher's visitor
// statements propagate break/continue/return/exit as typed signals
// rather than magic values.
type returnSignal struct {
	value value.Value
}

func (r *returnSignal) Error() string { return "return outside of function" }

// exitSignal unwinds all the way out of Run when an `exit` statement
// runs, carrying the process exit code.
type exitSignal struct {
	code int
}

func (e *exitSignal) Error() string { return "exit outside of program" }

func asReturn(err error) (*returnSignal, bool) {
	r, ok := err.(*returnSignal)
	return r, ok
}

func asExit(err error) (*exitSignal, bool) {
	e, ok := err.(*exitSignal)
	return e, ok
}

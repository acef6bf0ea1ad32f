package passes

import "fmt"

// FatalError reports an invariant violation discovered inside a pass: a
// bug in the core or corrupted input, never a recoverable condition. The
// pipeline aborts unconditionally on the first one.
type FatalError struct {
	Pass string
	Msg  string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("passes: fatal in %s: %s", e.Pass, e.Msg)
}

func fatalf(pass, format string, args ...interface{}) error {
	return &FatalError{Pass: pass, Msg: fmt.Sprintf(format, args...)}
}

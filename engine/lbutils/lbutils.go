package lbutils

import (
	"fmt"

	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/pkg/errors"
)

// RunPanicless calls a function panic-freely
func RunPanicless(f func()) (panicked bool) {
	defer func() {
		err := recover()
		if err != nil {
			lblog.TraceError("%p panic: %v", f, err)
			panicked = true
		}
	}()

	f()
	return
}

// CatchPanic calls f and converts a panic into an error
func CatchPanic(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			lblog.TraceError("%p panic: %v", f, r)
			if perr, ok := r.(error); ok {
				err = errors.Wrap(perr, "panic")
			} else {
				err = errors.New(fmt.Sprintf("panic: %v", r))
			}
		}
	}()

	return f()
}

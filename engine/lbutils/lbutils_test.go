package lbutils

import (
	"fmt"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/pkg/errors"
)

func TestRunPanicless(t *testing.T) {
	assert.T(t, RunPanicless(func() {
		panic(1)
	}))
	assert.T(t, RunPanicless(func() {
		panic(fmt.Errorf("bad"))
	}))
	assert.T(t, !RunPanicless(func() {}))
}

func TestCatchPanic(t *testing.T) {
	err := CatchPanic(func() error {
		panic("boom")
	})
	assert.T(t, err != nil)

	sentinel := errors.New("sentinel")
	err = CatchPanic(func() error {
		panic(sentinel)
	})
	assert.Equal(t, sentinel, errors.Cause(err))

	err = CatchPanic(func() error {
		return sentinel
	})
	assert.Equal(t, sentinel, err)
}

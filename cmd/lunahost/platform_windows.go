//go:build windows
// +build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// windows has no user signals: reload, pause and resume are not reachable from outside
var (
	reloadSignals    []os.Signal
	pauseSignals     []os.Signal
	resumeSignals    []os.Signal
	terminateSignals = []os.Signal{windows.SIGINT, windows.SIGTERM}
)

//go:build !windows
// +build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

var (
	reloadSignals    = []os.Signal{unix.SIGHUP}
	pauseSignals     = []os.Signal{unix.SIGUSR1}
	resumeSignals    = []os.Signal{unix.SIGUSR2}
	terminateSignals = []os.Signal{unix.SIGINT, unix.SIGTERM}
)

//go:build !windows
// +build !windows

package binutil

import (
	"os"

	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/sevlyar/go-daemon"
)

// Daemonize re-runs the process in the background. The parent exits; the child gets the
// daemon context to release on exit.
func Daemonize(pidFile string, logFile string) *daemon.Context {
	context := &daemon.Context{
		PidFileName: pidFile,
		PidFilePerm: 0644,
		LogFileName: logFile,
		LogFilePerm: 0640,
		Umask:       027,
	}
	child, err := context.Reborn()

	if err != nil {
		// daemonize failed
		lblog.Panicf("daemonize failed: %v", err)
	}

	if child != nil {
		lblog.Infof("run in daemon mode, pid %d", child.Pid)
		os.Exit(0)
		return nil
	}
	return context
}

package binutil

import (
	"expvar"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/natefinch/lumberjack"
)

// SetupHTTPServer starts the HTTP server for go tool pprof and /debug/vars
func SetupHTTPServer(ip string, port int) {
	if port == 0 {
		// pprof not enabled
		lblog.Infof("pprof server not enabled")
		return
	}

	httpHost := fmt.Sprintf("%s:%d", ip, port)
	lblog.Infof("http server listening on %s", httpHost)
	lblog.Infof("pprof http://%s/debug/pprof/ ... available commands: ", httpHost)
	lblog.Infof("    go tool pprof http://%s/debug/pprof/heap", httpHost)
	lblog.Infof("    go tool pprof http://%s/debug/pprof/profile", httpHost)
	lblog.Infof("engine vars at http://%s/debug/vars", httpHost)

	go func() {
		if err := http.ListenAndServe(httpHost, nil); err != nil {
			lblog.Errorf("http server on %s stopped: %v", httpHost, err)
		}
	}()
}

// VarsHandler serves the published expvars, for hosts that mount their own mux
func VarsHandler() http.Handler {
	return expvar.Handler()
}

// SetupLBLog sets up the engine log: level, source and outputs
func SetupLBLog(component string, logLevel string, logFile string, logStderr bool) {
	lblog.SetSource(component)
	lblog.Infof("Set log level to %s", logLevel)
	lblog.SetLevel(lblog.ParseLevel(logLevel))

	outputWriters := make([]io.Writer, 0, 2)
	if logFile != "" {
		logFileWriter := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 10,
			MaxAge:     30, //days
			Compress:   true,
		}
		logFileWriter.Rotate() // rotate immediately
		outputWriters = append(outputWriters, logFileWriter)
	}

	if logStderr || len(outputWriters) == 0 {
		outputWriters = append(outputWriters, os.Stderr)
	}

	lblog.SetOutput(outputWriters...)
}

// Command lunahost is a headless host for the engine bridge.
//
// It initializes the engine, drives MainLoop from a ticker and maps process signals to host
// lifecycle callbacks: SIGHUP reloads assets, SIGUSR1 pauses, SIGUSR2 resumes, SIGINT and
// SIGTERM deinitialize and quit.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lunabridge/lunabridge"
	"github.com/lunabridge/lunabridge/engine/binutil"
	"github.com/lunabridge/lunabridge/engine/config"
	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/lunabridge/lunabridge/engine/subsystem"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
)

const (
	rsRunning = iota
	rsTerminating
	rsTerminated
)

const statsInterval = time.Second * 10

var (
	args struct {
		configFile      string
		logLevel        string
		runInDaemonMode bool
		appName         string
		width           int
		height          int
		apkPath         string
		appDir          string
		cacheDir        string
		fps             int
		frames          int
	}
	runState   xnsyncutil.AtomicInt
	terminated = xnsyncutil.NewOneTimeCond()
	signalChan = make(chan os.Signal, 1)
)

func parseArgs() {
	flag.StringVar(&args.configFile, "configfile", "", "set config file path")
	flag.StringVar(&args.logLevel, "log", "", "set log level, will override log level in config")
	flag.BoolVar(&args.runInDaemonMode, "d", false, "run in daemon mode")
	flag.StringVar(&args.appName, "app", "LunaDemo", "set app name")
	flag.IntVar(&args.width, "width", 800, "set screen width")
	flag.IntVar(&args.height, "height", 480, "set screen height")
	flag.StringVar(&args.apkPath, "apk", "", "set apk archive or directory")
	flag.StringVar(&args.appDir, "appdir", ".", "set app folder path")
	flag.StringVar(&args.cacheDir, "cache", "", "set cache path")
	flag.IntVar(&args.fps, "fps", 0, "set frame rate, will override max_fps in config")
	flag.IntVar(&args.frames, "frames", 0, "quit after this many frames, 0 to run until signaled")
	flag.Parse()
}

func main() {
	parseArgs()
	if args.configFile != "" {
		config.SetConfigFile(args.configFile)
	}

	cfg := config.Get()
	logLevel := args.logLevel
	if logLevel == "" {
		logLevel = cfg.Engine.LogLevel
	}
	binutil.SetupLBLog("lunahost", logLevel, cfg.Engine.LogFile, cfg.Engine.LogStderr)
	fmt.Fprintf(os.Stderr, "Read engine config: \n%s\n", config.DumpPretty(cfg))

	if args.runInDaemonMode {
		daemoncontext := binutil.Daemonize(args.appName+".pid", "")
		defer daemoncontext.Release()
	}

	binutil.SetupHTTPServer(cfg.Engine.HTTPIp, cfg.Engine.HTTPPort)

	renderer := newHeadlessRenderer()
	_, err := lunabridge.Setup(lunabridge.Options{
		Config:   cfg,
		Game:     newLoggingGame(),
		Renderer: renderer,
		Subsystems: []subsystem.Subsystem{
			subsystem.NewLibrary("openal", nil, nil),
			subsystem.NewLibrary("luna2d", nil, nil),
		},
		Hooks: lunabridge.Hooks{
			OnInitialized: func(params lifecycle.InitParams) {
				lblog.Infof("Engine initialized: %s %dx%d", params.AppName, params.ScreenWidth, params.ScreenHeight)
			},
		},
	})
	checkErrorOrQuit(err, "setup engine")

	err = lunabridge.Initialize(args.width, args.height, args.appName, args.apkPath, args.appDir, args.cacheDir)
	checkErrorOrQuit(err, "initialize engine")
	showMsg("engine %s initialized, %d subsystems", lunabridge.GameName(), len(lunabridge.Bridge().Subsystems()))

	lunabridge.AddTimer(statsInterval, logStats)
	if consts.OPMON_DUMP_INTERVAL > 0 {
		lunabridge.AddTimer(consts.OPMON_DUMP_INTERVAL, func() {
			lunabridge.Bridge().Monitor().Dump(lblog.GetOutput())
		})
	}
	setupSignals()

	fps := args.fps
	if fps <= 0 {
		fps = cfg.Engine.MaxFPS
	}
	runState.Store(rsRunning)
	go runLoop(fps)

	terminated.Wait()
	lblog.Infof("Host %s terminated gracefully after %d frames.", args.appName, renderer.Rendered())
}

func runLoop(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for range ticker.C {
		if runState.Load() == rsTerminating {
			break
		}
		lunabridge.MainLoop()
		if args.frames > 0 && lunabridge.GetStats().Frames >= uint64(args.frames) {
			lblog.Infof("Reached %d frames, quitting", args.frames)
			terminate()
			break
		}
	}

	runState.Store(rsTerminated)
	terminated.Signal()
}

func terminate() {
	if err := lunabridge.Deinitialize(); err != nil {
		lblog.Errorf("Deinitialize failed: %v", err)
	}
	runState.Store(rsTerminating)
}

func setupSignals() {
	lblog.Infof("Setup signals ...")
	var all []os.Signal
	for _, sigs := range [][]os.Signal{reloadSignals, pauseSignals, resumeSignals, terminateSignals} {
		all = append(all, sigs...)
	}
	signal.Notify(signalChan, all...)

	go func() {
		for {
			sig := <-signalChan
			switch {
			case isOneOf(sig, reloadSignals):
				lblog.Infof("Reloading assets on %s ...", sig)
				if err := lunabridge.ReloadAssets(); err != nil {
					lblog.Errorf("Reload failed: %v", err)
				}
			case isOneOf(sig, pauseSignals):
				lunabridge.OnPause()
			case isOneOf(sig, resumeSignals):
				lunabridge.OnResume()
			case isOneOf(sig, terminateSignals):
				lblog.Infof("Terminating on %s ...", sig)
				terminate()
				return
			default:
				lblog.Errorf("unexpected signal: %s", sig)
			}
		}
	}()
}

func isOneOf(sig os.Signal, sigs []os.Signal) bool {
	for _, s := range sigs {
		if s == sig {
			return true
		}
	}
	return false
}

func logStats() {
	st := lunabridge.GetStats()
	lblog.Infof("%s: state=%s frames=%d fps=%d assets=v%d touches=%d rss=%.1fMB",
		lunabridge.GameName(), st.State, st.Frames, st.FPS, st.ResourceVersion, st.QueuedTouches, float64(st.RSS)/1024/1024)
}

package lunabridge

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lunabridge/lunabridge/engine/assets"
	"github.com/lunabridge/lunabridge/engine/bridge"
	"github.com/lunabridge/lunabridge/engine/config"
	"github.com/lunabridge/lunabridge/engine/input"
	"github.com/lunabridge/lunabridge/engine/lbvar"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/lunabridge/lunabridge/engine/post"
	"github.com/lunabridge/lunabridge/engine/subsystem"
	"github.com/pkg/errors"
	"github.com/xiaonanln/goTimer"
)

type (
	// Options configures the process-wide bridge
	Options = bridge.Options
	// Hooks are optional engine callbacks
	Hooks = bridge.Hooks
	// Game is the game logic driven by MainLoop
	Game = bridge.Game
	// Renderer draws frames
	Renderer = bridge.Renderer
	// Frame is the per-iteration snapshot passed to the game and renderer
	Frame = bridge.Frame
	// Stats is a diagnostics snapshot
	Stats = bridge.Stats
	// InitParams are the parameters of Initialize
	InitParams = lifecycle.InitParams
	// State is the engine lifecycle state
	State = lifecycle.State
	// TouchEvent is a touch delivered to Game.HandleTouch
	TouchEvent = input.TouchEvent
	// Subsystem is a resource acquired by Initialize and released by Deinitialize
	Subsystem = subsystem.Subsystem

	AlreadyInitializedError     = lifecycle.AlreadyInitializedError
	InvalidStateTransitionError = lifecycle.InvalidStateTransitionError
	SubsystemInitError          = subsystem.SubsystemInitError
	ReloadFailedError           = assets.ReloadFailedError
)

// ErrInvalidParams is the cause of Initialize errors for malformed parameters
var ErrInvalidParams = lifecycle.ErrInvalidParams

var (
	bridgeLock sync.Mutex // serializes Setup and lazy creation
	theBridge  atomic.Pointer[bridge.Bridge]
)

// Setup replaces the process-wide bridge. It fails if the current one is initialized.
func Setup(opts Options) (*bridge.Bridge, error) {
	bridgeLock.Lock()
	defer bridgeLock.Unlock()

	if cur := theBridge.Load(); cur != nil && cur.IsInitialized() {
		return nil, errors.Errorf("engine %s is initialized, deinitialize it before setup", cur.GameName())
	}
	b := newBridge(opts)
	theBridge.Store(b)
	return b, nil
}

func newBridge(opts Options) *bridge.Bridge {
	if opts.Config == nil {
		opts.Config = config.Get()
	}
	onInitialized, onDeinitialized := opts.Hooks.OnInitialized, opts.Hooks.OnDeinitialized
	opts.Hooks.OnInitialized = func(params lifecycle.InitParams) {
		lbvar.IsEngineInitialized.Set(true)
		if onInitialized != nil {
			onInitialized(params)
		}
	}
	opts.Hooks.OnDeinitialized = func() {
		lbvar.IsEngineInitialized.Set(false)
		if onDeinitialized != nil {
			onDeinitialized()
		}
	}

	b := bridge.New(opts)
	lbvar.PublishEngine(engineSource{})
	return b
}

// Bridge returns the process-wide bridge, creating one with default options if needed
func Bridge() *bridge.Bridge {
	if b := theBridge.Load(); b != nil {
		return b
	}

	bridgeLock.Lock()
	defer bridgeLock.Unlock()
	if b := theBridge.Load(); b != nil {
		return b
	}
	b := newBridge(Options{})
	theBridge.Store(b)
	return b
}

// engineSource follows whatever bridge is current, so /debug/vars survives Setup
type engineSource struct{}

func (engineSource) State() lifecycle.State { return Bridge().State() }
func (engineSource) Frames() uint64         { return Bridge().Frames() }
func (engineSource) FPS() int               { return Bridge().FPS() }
func (engineSource) GameName() string       { return Bridge().GameName() }
func (engineSource) QueuedTouches() int     { return Bridge().QueuedTouches() }

// IsInitialized reports whether the engine is Running or Paused. It never blocks.
func IsInitialized() bool {
	b := theBridge.Load()
	return b != nil && b.IsInitialized()
}

// Initialize starts the engine with the host screen size, app name and paths
func Initialize(screenWidth, screenHeight int, appName, apkPath, appFolderPath, cachePath string) error {
	return Bridge().Initialize(InitParams{
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
		AppName:       appName,
		ApkPath:       apkPath,
		AppFolderPath: appFolderPath,
		CachePath:     cachePath,
	})
}

// Deinitialize stops the engine after the in-flight frame
func Deinitialize() error {
	return Bridge().Deinitialize()
}

// ReloadAssets reloads all assets, blocking until the new set is active or the reload failed
func ReloadAssets() error {
	return Bridge().ReloadAssets()
}

// ReloadAssetsAsync reloads all assets in the background; cb runs on the frame context
func ReloadAssetsAsync(cb func(err error)) error {
	return Bridge().ReloadAssetsAsync(cb)
}

// MainLoop runs one frame
func MainLoop() {
	Bridge().MainLoop()
}

// OnTouchDown reports a touch-down at (x, y) for contact point touchIndex
func OnTouchDown(x, y float32, touchIndex int) {
	Bridge().OnTouchDown(x, y, touchIndex)
}

// OnTouchMoved reports a touch move
func OnTouchMoved(x, y float32, touchIndex int) {
	Bridge().OnTouchMoved(x, y, touchIndex)
}

// OnTouchUp reports a touch release
func OnTouchUp(x, y float32, touchIndex int) {
	Bridge().OnTouchUp(x, y, touchIndex)
}

// OnPause pauses the engine
func OnPause() {
	Bridge().OnPause()
}

// OnResume resumes the engine
func OnResume() {
	Bridge().OnResume()
}

// IsPaused reports whether the engine is Paused
func IsPaused() bool {
	return Bridge().IsPaused()
}

// FPS returns the frames rendered in the last full second
func FPS() int {
	return Bridge().FPS()
}

// GameName returns the app name passed to Initialize, or ""
func GameName() string {
	return Bridge().GameName()
}

// GetStats returns a diagnostics snapshot
func GetStats() Stats {
	return Bridge().Stats()
}

// Post runs f on the frame context at the next frame
func Post(f post.PostCallback) {
	Bridge().Post(f)
}

// AddCallback calls cb once after d, on a Running frame
func AddCallback(d time.Duration, cb timer.CallbackFunc) {
	Bridge().AddCallback(d, cb)
}

// AddTimer calls cb every d, on Running frames
func AddTimer(d time.Duration, cb timer.CallbackFunc) {
	Bridge().AddTimer(d, cb)
}

// IsAlreadyInitialized reports whether err comes from initializing a live engine
func IsAlreadyInitialized(err error) bool {
	return lifecycle.IsAlreadyInitialized(err)
}

// IsInvalidStateTransition reports whether err comes from an operation the engine state forbids
func IsInvalidStateTransition(err error) bool {
	return lifecycle.IsInvalidStateTransition(err)
}

// IsSubsystemInit reports whether err comes from a subsystem failing to initialize
func IsSubsystemInit(err error) bool {
	return subsystem.IsSubsystemInit(err)
}

// IsReloadFailed reports whether err comes from a failed asset reload
func IsReloadFailed(err error) bool {
	return assets.IsReloadFailed(err)
}

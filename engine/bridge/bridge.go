package bridge

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lunabridge/lunabridge/engine/assets"
	"github.com/lunabridge/lunabridge/engine/async"
	"github.com/lunabridge/lunabridge/engine/config"
	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/frame"
	"github.com/lunabridge/lunabridge/engine/input"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/lunabridge/lunabridge/engine/opmon"
	"github.com/lunabridge/lunabridge/engine/post"
	"github.com/lunabridge/lunabridge/engine/subsystem"
	"github.com/shirou/gopsutil/process"
	"github.com/xiaonanln/goTimer"
)

// Game is the game logic driven by the frame loop
type Game interface {
	// HandleTouch is called once per drained touch, in enqueue order, before Update
	HandleTouch(ev input.TouchEvent, fr *Frame)
	Update(fr *Frame)
}

// Renderer draws one frame after the game has been updated
type Renderer interface {
	Render(fr *Frame)
}

// AssetsReloader is implemented by games that react to a resource set swap
type AssetsReloader interface {
	OnAssetsReloaded(old, new *assets.ResourceSet)
}

// Hooks are optional callbacks fired on the frame context or the initializing goroutine
type Hooks struct {
	OnInitialized   func(params lifecycle.InitParams)
	OnLoopIteration func(fr *Frame)
	OnDeinitialized func()
}

// Options configures a Bridge. Zero values get defaults in New.
type Options struct {
	Config     *config.LunaConfig
	Subsystems []subsystem.Subsystem
	Game       Game
	Renderer   Renderer
	Loader     assets.Loader
	Hooks      Hooks
	Now        func() time.Time
}

type deferredRequest int

const (
	requestPause deferredRequest = iota
	requestDeinitialize
	requestReload
)

// Bridge owns the engine lifecycle, the input queue and the frame loop.
//
// Initialize, Deinitialize, OnPause, OnResume, the swap half of ReloadAssets and every
// MainLoop frame are serialized by one lock. Touch entry points and queries never take it.
type Bridge struct {
	cfg      *config.LunaConfig
	game     Game
	renderer Renderer
	loader   assets.Loader
	hooks    Hooks

	lock     sync.Mutex
	machine  *lifecycle.Machine
	inFrame  atomic.Bool
	touches  *input.Queue
	clock    *frame.Clock
	fps      *frame.FPSCounter
	frames   atomic.Uint64
	params   atomic.Pointer[lifecycle.InitParams]
	session  uint64
	registry *subsystem.Registry
	holder   assets.Holder
	posts    post.Queue
	pool     *async.Pool
	deferred []deferredRequest
	reloads  map[*asyncReload]struct{}
	timers   map[*timer.Timer]struct{}
	fired    post.Queue
	monitor  *opmon.Monitor

	procOnce sync.Once
	proc     *process.Process
}

// New creates a bridge in Uninitialized state
func New(opts Options) *Bridge {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Game == nil {
		opts.Game = nopGame{}
	}
	if opts.Renderer == nil {
		opts.Renderer = nopRenderer{}
	}
	if opts.Loader == nil {
		loader := assets.NewFileSystemLoader()
		loader.Dir = opts.Config.Assets.Dir
		loader.ApkPrefix = opts.Config.Assets.ApkPrefix
		loader.Manifest = opts.Config.Assets.Manifest
		opts.Loader = loader
	}

	b := &Bridge{
		cfg:      opts.Config,
		game:     opts.Game,
		renderer: opts.Renderer,
		loader:   opts.Loader,
		hooks:    opts.Hooks,
		machine:  lifecycle.NewMachine(),
		touches:  input.NewQueue(),
		clock:    frame.NewClock(opts.Now, opts.Config.Engine.MaxFrameDelta),
		fps:      frame.NewFPSCounter(consts.FPS_SAMPLE_INTERVAL),
		reloads:  map[*asyncReload]struct{}{},
		timers:   map[*timer.Timer]struct{}{},
		monitor:  opmon.NewMonitorWithClock(opts.Now),
	}

	b.registry = subsystem.NewRegistry(opts.Subsystems...)
	b.registry.Register(&assetsSubsystem{b: b})
	if s, ok := opts.Renderer.(subsystem.Subsystem); ok {
		b.registry.Register(s)
	}
	if s, ok := opts.Game.(subsystem.Subsystem); ok {
		b.registry.Register(s)
	}
	return b
}

// State returns the current lifecycle state without blocking
func (b *Bridge) State() lifecycle.State {
	return b.machine.State()
}

// IsInitialized reports whether the engine is Running or Paused. It never blocks.
func (b *Bridge) IsInitialized() bool {
	return b.machine.IsInitialized()
}

// IsPaused reports whether the engine is Paused
func (b *Bridge) IsPaused() bool {
	return b.machine.State() == lifecycle.Paused
}

// Params returns the parameters of the current session
func (b *Bridge) Params() (lifecycle.InitParams, bool) {
	p := b.params.Load()
	if p == nil {
		return lifecycle.InitParams{}, false
	}
	return *p, true
}

// GameName returns the app name of the current session, or ""
func (b *Bridge) GameName() string {
	p, _ := b.Params()
	return p.AppName
}

// FPS returns the number of frames rendered in the last full second
func (b *Bridge) FPS() int {
	return b.fps.FPS()
}

// Frames returns the number of Running frames since the last Initialize
func (b *Bridge) Frames() uint64 {
	return b.frames.Load()
}

// Resources returns the active resource set, nil when not initialized
func (b *Bridge) Resources() *assets.ResourceSet {
	return b.holder.Current()
}

// QueuedTouches returns the number of touches waiting for the next Running frame
func (b *Bridge) QueuedTouches() int {
	return b.touches.Len()
}

// Monitor returns the operation monitor recording frame and lifecycle timings
func (b *Bridge) Monitor() *opmon.Monitor {
	return b.monitor
}

// Subsystems returns the names of the acquired subsystems in acquisition order
func (b *Bridge) Subsystems() []string {
	return b.registry.Acquired()
}

// Post schedules f to run on the frame context at the next Running or Paused frame.
// f runs under the bridge lock and must not call lifecycle entry points.
func (b *Bridge) Post(f post.PostCallback) {
	b.posts.Post(f)
}

// Stats is a point-in-time snapshot for diagnostics
type Stats struct {
	State           lifecycle.State
	Frames          uint64
	FPS             int
	ResourceVersion uint64
	QueuedTouches   int
	PendingPosts    int
	RSS             uint64
}

// Stats collects diagnostics without taking the bridge lock
func (b *Bridge) Stats() Stats {
	st := Stats{
		State:         b.State(),
		Frames:        b.Frames(),
		FPS:           b.FPS(),
		QueuedTouches: b.QueuedTouches(),
		PendingPosts:  b.posts.Len(),
	}
	if set := b.holder.Current(); set != nil {
		st.ResourceVersion = set.Version
	}
	if proc := b.process(); proc != nil {
		if mem, err := proc.MemoryInfo(); err == nil {
			st.RSS = mem.RSS
		}
	}
	return st
}

func (b *Bridge) process() *process.Process {
	b.procOnce.Do(func() {
		proc, err := process.NewProcess(int32(os.Getpid()))
		if err == nil {
			b.proc = proc
		}
	})
	return b.proc
}

type nopGame struct{}

func (nopGame) HandleTouch(ev input.TouchEvent, fr *Frame) {}

func (nopGame) Update(fr *Frame) {}

type nopRenderer struct{}

func (nopRenderer) Render(fr *Frame) {}

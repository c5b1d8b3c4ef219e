package bridge

import (
	"github.com/lunabridge/lunabridge/engine/assets"
	"github.com/lunabridge/lunabridge/engine/async"
	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/lunabridge/lunabridge/engine/lbutils"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/lunabridge/lunabridge/engine/subsystem"
	"github.com/pkg/errors"
)

// Initialize acquires all subsystems and loads the initial resource set.
//
// Allowed from Uninitialized and Destroyed. On failure the acquired subsystems are released
// in reverse order and the bridge goes back to Uninitialized, ready for another attempt.
func (b *Bridge) Initialize(params lifecycle.InitParams) error {
	op := b.monitor.StartOperation("initialize")
	defer op.Finish(consts.LIFECYCLE_OP_WARN_THRESHOLD)

	b.lock.Lock()
	defer b.lock.Unlock()

	state := b.machine.State()
	if state == lifecycle.Initializing || state.IsInitialized() {
		err := &lifecycle.AlreadyInitializedError{State: state}
		lblog.Warnf("Initialize %s: %s", params.AppName, err)
		return err
	}
	if err := params.Validate(); err != nil {
		lblog.Warnf("Initialize: %s", err)
		return err
	}

	if err := b.machine.Transition(lifecycle.Initializing); err != nil {
		return err
	}
	if consts.DEBUG_LIFECYCLE {
		lblog.Debugf("Initializing %s (%dx%d) from %s", params.AppName, params.ScreenWidth, params.ScreenHeight, state)
	}

	b.session++
	b.params.Store(&params)
	b.pool = async.NewPool(&b.posts)

	if err := b.registry.Acquire(params); err != nil {
		b.pool.Close()
		b.pool = nil
		b.posts.Clear()
		b.params.Store(nil)
		b.holder.Swap(nil)
		if terr := b.machine.Transition(lifecycle.Uninitialized); terr != nil {
			lblog.Panic(terr)
		}
		lblog.Errorf("Initialize %s failed: %v", params.AppName, err)
		return err
	}

	b.frames.Store(0)
	b.fps.Reset()
	b.clock.Reset()
	b.clock.ResetElapsed()
	if err := b.machine.Transition(lifecycle.Running); err != nil {
		lblog.Panic(err)
	}
	lblog.Infof("Engine %s initialized: %dx%d, subsystems %v", params.AppName, params.ScreenWidth, params.ScreenHeight, b.registry.Acquired())

	if b.hooks.OnInitialized != nil {
		lbutils.RunPanicless(func() {
			b.hooks.OnInitialized(params)
		})
	}
	return nil
}

// Deinitialize waits for the in-flight frame and tears the engine down.
// It is a no-op returning nil when the engine is not initialized.
func (b *Bridge) Deinitialize() error {
	op := b.monitor.StartOperation("deinitialize")
	defer op.Finish(consts.LIFECYCLE_OP_WARN_THRESHOLD)

	b.lock.Lock()
	defer b.lock.Unlock()
	return b.deinitializeLocked()
}

func (b *Bridge) deinitializeLocked() error {
	state := b.machine.State()
	if state == lifecycle.Uninitialized || state == lifecycle.Destroyed {
		lblog.Warnf("Deinitialize: engine is %s, nothing to do", state)
		return nil
	}
	if err := b.machine.Transition(lifecycle.Destroyed); err != nil {
		lblog.Warnf("Deinitialize: %s", err)
		return err
	}

	name := b.GameName()
	b.cancelTimers()
	b.deferred = nil
	if b.pool != nil {
		// loads still running finish in the background; their sets are discarded by the session check
		b.pool.Close()
		b.pool = nil
	}
	b.abortReloads(lifecycle.Destroyed)
	droppedPosts := b.posts.Clear()
	droppedTouches := b.touches.Clear()

	err := b.registry.Release()
	b.holder.Swap(nil)
	b.params.Store(nil)

	lblog.Infof("Engine %s deinitialized after %d frames (dropped %d touches, %d posts)", name, b.frames.Load(), droppedTouches, droppedPosts)
	if b.hooks.OnDeinitialized != nil {
		lbutils.RunPanicless(b.hooks.OnDeinitialized)
	}
	return err
}

// OnPause stops simulation. Redundant calls are no-ops.
func (b *Bridge) OnPause() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.pauseLocked()
}

func (b *Bridge) pauseLocked() {
	state := b.machine.State()
	if state != lifecycle.Running {
		if consts.DEBUG_LIFECYCLE {
			lblog.Debugf("OnPause ignored in state %s", state)
		}
		return
	}
	if err := b.machine.Transition(lifecycle.Paused); err != nil {
		lblog.Panic(err)
	}

	for _, p := range b.pausers() {
		lbutils.RunPanicless(p.OnPause)
	}
	lblog.Infof("Engine %s paused at frame %d", b.GameName(), b.frames.Load())
}

// OnResume restarts simulation. The paused interval is not simulated. Redundant calls are no-ops.
func (b *Bridge) OnResume() {
	b.lock.Lock()
	defer b.lock.Unlock()

	state := b.machine.State()
	if state != lifecycle.Paused {
		if consts.DEBUG_LIFECYCLE {
			lblog.Debugf("OnResume ignored in state %s", state)
		}
		return
	}
	if err := b.machine.Transition(lifecycle.Running); err != nil {
		lblog.Panic(err)
	}

	b.clock.Reset()
	b.fps.Reset()
	pausers := b.pausers()
	for i := len(pausers) - 1; i >= 0; i-- {
		lbutils.RunPanicless(pausers[i].OnResume)
	}
	lblog.Infof("Engine %s resumed", b.GameName())
}

// pausers returns the game and the acquired subsystems that react to pause, game first.
// A game that is also a subsystem is only visited once.
func (b *Bridge) pausers() []subsystem.Pauser {
	var res []subsystem.Pauser
	if _, isSubsystem := b.game.(subsystem.Subsystem); !isSubsystem {
		if p, ok := b.game.(subsystem.Pauser); ok {
			res = append(res, p)
		}
	}
	b.registry.Each(func(s subsystem.Subsystem) {
		if p, ok := s.(subsystem.Pauser); ok {
			res = append(res, p)
		}
	})
	return res
}

// assetsSubsystem loads the initial resource set during Initialize and drops it on teardown
type assetsSubsystem struct {
	b *Bridge
}

func (s *assetsSubsystem) Name() string {
	return "assets"
}

func (s *assetsSubsystem) Init(params lifecycle.InitParams) error {
	set, err := s.b.loadResources(params, s.b.holder.NextVersion())
	if err != nil {
		return err
	}
	s.b.holder.Swap(set)
	lblog.Infof("Loaded %d assets (version %d)", set.Len(), set.Version)
	return nil
}

func (s *assetsSubsystem) Shutdown() error {
	s.b.holder.Swap(nil)
	return nil
}

func (b *Bridge) loadResources(params lifecycle.InitParams, version uint64) (set *assets.ResourceSet, err error) {
	op := b.monitor.StartOperation("loadAssets")
	defer op.Finish(consts.LIFECYCLE_OP_WARN_THRESHOLD)

	err = lbutils.CatchPanic(func() error {
		var lerr error
		set, lerr = b.loader.Load(assets.LoadRequest{Params: params, Version: version})
		return lerr
	})
	if err == nil && set == nil {
		err = errors.Errorf("loader returned no resource set for version %d", version)
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

package bridge

import (
	"time"

	"github.com/lunabridge/lunabridge/engine/assets"
	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/input"
	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/lunabridge/lunabridge/engine/lbutils"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/lunabridge/lunabridge/engine/subsystem"
	"github.com/xiaonanln/goTimer"
)

// Frame is the snapshot handed to the game and the renderer for one iteration.
// It is only valid until the callback it was passed to returns.
type Frame struct {
	Index     uint64
	State     lifecycle.State
	Params    lifecycle.InitParams
	Resources *assets.ResourceSet
	Touches   []input.TouchEvent
	Delta     time.Duration
	Elapsed   time.Duration

	b *Bridge
}

// DeltaSeconds returns Delta in seconds
func (fr *Frame) DeltaSeconds() float64 {
	return fr.Delta.Seconds()
}

// RequestPause pauses the engine once the current frame completes
func (fr *Frame) RequestPause() {
	fr.b.deferred = append(fr.b.deferred, requestPause)
}

// RequestDeinitialize tears the engine down once the current frame completes
func (fr *Frame) RequestDeinitialize() {
	fr.b.deferred = append(fr.b.deferred, requestDeinitialize)
}

// RequestReload starts a background asset reload once the current frame completes.
// The new set becomes visible on a later frame.
func (fr *Frame) RequestReload() {
	fr.b.deferred = append(fr.b.deferred, requestReload)
}

// AddCallback calls cb once after d, on a Running frame of the current session
func (fr *Frame) AddCallback(d time.Duration, cb timer.CallbackFunc) *timer.Timer {
	return fr.b.addTimer(d, cb, false)
}

// AddTimer calls cb every d, on Running frames of the current session
func (fr *Frame) AddTimer(d time.Duration, cb timer.CallbackFunc) *timer.Timer {
	return fr.b.addTimer(d, cb, true)
}

// MainLoop runs one frame. The host calls it once per tick.
//
// Nothing happens unless the engine is Running or Paused. A paused frame only runs posted
// callbacks and housekeeping; it neither drains input nor advances the frame counter.
func (b *Bridge) MainLoop() {
	if !b.inFrame.CompareAndSwap(false, true) {
		lblog.Warnf("MainLoop: called while a frame is in progress, ignored")
		return
	}
	defer b.inFrame.Store(false)

	b.lock.Lock()
	defer b.lock.Unlock()

	switch b.machine.State() {
	case lifecycle.Running:
		b.runFrame()
	case lifecycle.Paused:
		b.housekeep()
	default:
		return
	}
	b.applyDeferred()
}

func (b *Bridge) runFrame() {
	op := b.monitor.StartOperation("frame")
	defer op.Finish(b.cfg.Engine.FrameWarnThreshold)

	b.posts.Tick()
	if b.machine.State() != lifecycle.Running {
		return
	}

	delta := b.clock.Tick()
	params, _ := b.Params()
	fr := &Frame{
		Index:     b.frames.Load() + 1,
		State:     lifecycle.Running,
		Params:    params,
		Resources: b.holder.Current(),
		Touches:   b.touches.Drain(),
		Delta:     delta,
		Elapsed:   b.clock.Elapsed(),
		b:         b,
	}

	for _, ev := range fr.Touches {
		ev := ev
		if consts.DEBUG_TOUCHES {
			lblog.Debugf("Frame %d: %s", fr.Index, ev)
		}
		lbutils.RunPanicless(func() {
			b.game.HandleTouch(ev, fr)
		})
	}

	timer.Tick()
	b.fired.Tick()
	lbutils.RunPanicless(func() {
		b.game.Update(fr)
	})
	lbutils.RunPanicless(func() {
		b.renderer.Render(fr)
	})
	if b.hooks.OnLoopIteration != nil {
		lbutils.RunPanicless(func() {
			b.hooks.OnLoopIteration(fr)
		})
	}

	b.frames.Add(1)
	b.fps.Frame(b.clock.Now())
}

func (b *Bridge) housekeep() {
	b.posts.Tick()
	b.registry.Each(func(s subsystem.Subsystem) {
		if h, ok := s.(subsystem.Housekeeper); ok {
			lbutils.RunPanicless(h.Housekeep)
		}
	})
}

func (b *Bridge) applyDeferred() {
	for len(b.deferred) > 0 {
		req := b.deferred[0]
		b.deferred = b.deferred[1:]

		switch req {
		case requestPause:
			b.pauseLocked()
		case requestDeinitialize:
			if err := b.deinitializeLocked(); err != nil {
				lblog.Errorf("Deferred deinitialize: %v", err)
			}
		case requestReload:
			if err := b.reloadAsyncLocked(nil); err != nil {
				lblog.Warnf("Deferred reload: %v", err)
			}
		}
	}
	b.deferred = nil
}

// addTimer registers cb in the process-wide goTimer heap. Whichever bridge ticks the heap
// fires the timer, so firing only queues cb to b.fired, which b runs in its own frame.
func (b *Bridge) addTimer(d time.Duration, cb timer.CallbackFunc, repeat bool) *timer.Timer {
	session := b.session
	var t *timer.Timer
	run := func() {
		if b.session != session {
			return
		}
		if !repeat {
			delete(b.timers, t)
		}
		cb()
	}
	wrapped := func() {
		b.fired.Post(run)
	}

	if repeat {
		t = timer.AddTimer(d, wrapped)
	} else {
		t = timer.AddCallback(d, wrapped)
	}
	b.timers[t] = struct{}{}
	return t
}

func (b *Bridge) cancelTimers() {
	for t := range b.timers {
		t.Cancel()
	}
	b.timers = map[*timer.Timer]struct{}{}
	b.fired.Clear()
}

// AddCallback registers a one-shot game timer from any goroutine. The timer is created
// on the next frame and fires on a Running frame of the current session.
func (b *Bridge) AddCallback(d time.Duration, cb timer.CallbackFunc) {
	b.posts.Post(func() {
		b.addTimer(d, cb, false)
	})
}

// AddTimer registers a repeating game timer from any goroutine, like AddCallback
func (b *Bridge) AddTimer(d time.Duration, cb timer.CallbackFunc) {
	b.posts.Post(func() {
		b.addTimer(d, cb, true)
	})
}

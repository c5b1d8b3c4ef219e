package main

import (
	"sync/atomic"
	"time"

	"github.com/lunabridge/lunabridge"
	"github.com/lunabridge/lunabridge/engine/assets"
	"github.com/lunabridge/lunabridge/engine/input"
	"github.com/lunabridge/lunabridge/engine/lblog"
)

// headlessRenderer stands in for the GL renderer: it acquires a fake surface of the
// screen size and counts frames
type headlessRenderer struct {
	width, height int
	rendered      atomic.Uint64
}

func newHeadlessRenderer() *headlessRenderer {
	return &headlessRenderer{}
}

func (r *headlessRenderer) Name() string {
	return "renderer"
}

func (r *headlessRenderer) Init(params lunabridge.InitParams) error {
	r.width, r.height = params.ScreenWidth, params.ScreenHeight
	lblog.Infof("Headless surface %dx%d created", r.width, r.height)
	return nil
}

func (r *headlessRenderer) Shutdown() error {
	lblog.Infof("Headless surface %dx%d destroyed after %d frames", r.width, r.height, r.rendered.Load())
	return nil
}

func (r *headlessRenderer) Render(fr *lunabridge.Frame) {
	r.rendered.Add(1)
}

func (r *headlessRenderer) Rendered() uint64 {
	return r.rendered.Load()
}

// loggingGame logs what a real game would react to
type loggingGame struct {
	lastReport time.Duration
	touches    int
}

func newLoggingGame() *loggingGame {
	return &loggingGame{}
}

func (g *loggingGame) HandleTouch(ev input.TouchEvent, fr *lunabridge.Frame) {
	g.touches++
	lblog.Debugf("frame %d: %s", fr.Index, ev)
}

func (g *loggingGame) Update(fr *lunabridge.Frame) {
	if fr.Elapsed-g.lastReport < time.Second {
		return
	}
	g.lastReport = fr.Elapsed
	var textures int
	if fr.Resources != nil {
		textures = len(fr.Resources.Textures)
	}
	lblog.Debugf("frame %d: elapsed %s, %d textures, %d touches so far", fr.Index, fr.Elapsed, textures, g.touches)
}

func (g *loggingGame) OnPause() {
	lblog.Infof("game paused")
}

func (g *loggingGame) OnResume() {
	lblog.Infof("game resumed")
}

func (g *loggingGame) OnAssetsReloaded(old, new *assets.ResourceSet) {
	lblog.Infof("assets reloaded: v%d (%d) -> v%d (%d)", old.Version, old.Len(), new.Version, new.Len())
}

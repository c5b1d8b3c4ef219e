// Package hostmobile drives an engine bridge from golang.org/x/mobile app events.
//
// A typical android or ios main looks like:
//
//	app.Main(func(a app.App) {
//		adapter := hostmobile.New(lunabridge.Bridge(), params, a)
//		for e := range a.Events() {
//			if dead, err := adapter.Handle(a.Filter(e)); dead || err != nil {
//				return
//			}
//		}
//	})
package hostmobile

import (
	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/lblog"
	lc "github.com/lunabridge/lunabridge/engine/lifecycle"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
)

// Engine is the part of the bridge the adapter drives
type Engine interface {
	IsInitialized() bool
	Initialize(params lc.InitParams) error
	Deinitialize() error
	OnPause()
	OnResume()
	MainLoop()
	OnTouchDown(x, y float32, touchIndex int)
	OnTouchMoved(x, y float32, touchIndex int)
	OnTouchUp(x, y float32, touchIndex int)
}

// Sender posts events back into the app event loop. app.App implements it.
type Sender interface {
	Send(event interface{})
}

// Adapter translates app events into bridge calls. It is not safe for concurrent use;
// feed it from the app event loop only.
type Adapter struct {
	engine Engine
	params lc.InitParams
	sender Sender

	hasSize     bool
	visible     bool
	pendingInit bool
	selfDriving bool
}

// New creates an adapter. The screen size of params is taken from size events.
func New(engine Engine, params lc.InitParams, sender Sender) *Adapter {
	return &Adapter{
		engine: engine,
		params: params,
		sender: sender,
	}
}

// Params returns the init params as currently known
func (a *Adapter) Params() lc.InitParams {
	return a.params
}

// Handle processes one event. dead is true once the app reached StageDead and the
// engine has been deinitialized.
func (a *Adapter) Handle(event interface{}) (dead bool, err error) {
	switch e := event.(type) {
	case size.Event:
		a.params.ScreenWidth = e.WidthPx
		a.params.ScreenHeight = e.HeightPx
		a.hasSize = e.WidthPx > 0 && e.HeightPx > 0
		if a.pendingInit && a.hasSize {
			a.pendingInit = false
			return false, a.start()
		}
	case lifecycle.Event:
		if consts.DEBUG_LIFECYCLE {
			lblog.Debugf("hostmobile: %s", e)
		}
		switch e.Crosses(lifecycle.StageVisible) {
		case lifecycle.CrossOn:
			a.visible = true
			if a.engine.IsInitialized() {
				a.engine.OnResume()
				a.kick()
			} else if a.hasSize {
				err = a.start()
			} else {
				a.pendingInit = true
			}
		case lifecycle.CrossOff:
			a.visible = false
			a.selfDriving = false
			a.engine.OnPause()
		}
		if e.To == lifecycle.StageDead {
			return true, a.engine.Deinitialize()
		}
		return false, err
	case touch.Event:
		index := int(e.Sequence)
		switch e.Type {
		case touch.TypeBegin:
			a.engine.OnTouchDown(e.X, e.Y, index)
		case touch.TypeMove:
			a.engine.OnTouchMoved(e.X, e.Y, index)
		case touch.TypeEnd:
			a.engine.OnTouchUp(e.X, e.Y, index)
		}
	case paint.Event:
		if e.External && a.selfDriving {
			return false, nil
		}
		a.engine.MainLoop()
		if a.visible {
			a.selfDriving = true
			a.kick()
		}
	}
	return false, nil
}

func (a *Adapter) start() error {
	if err := a.engine.Initialize(a.params); err != nil {
		lblog.Errorf("hostmobile: initialize %s failed: %v", a.params.AppName, err)
		return err
	}
	a.kick()
	return nil
}

// kick schedules the next frame
func (a *Adapter) kick() {
	if a.sender != nil {
		a.sender.Send(paint.Event{})
	}
}
